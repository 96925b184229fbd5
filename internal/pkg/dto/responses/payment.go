package responses

// PaymentOrder is the processor's order handle, returned to the caller
// unmodified. Amount is in the processor's minor currency unit.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type PaymentStatus struct {
	OrderID       string `json:"order_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Paid          bool   `json:"paid"`
	Status        string `json:"status"`
}
