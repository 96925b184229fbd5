package constvars

// Order statuses as reported by the payment processor.
const (
	OrderStatusCreated   = "created"
	OrderStatusAttempted = "attempted"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
)

// MinorUnitFactor converts a fee in major currency units to the
// processor's minor unit (e.g. dollars to cents).
const MinorUnitFactor = 100
