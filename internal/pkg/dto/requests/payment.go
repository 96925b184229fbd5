package requests

type CreatePaymentOrderRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,uuid"`
}

type VerifyPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// CreateOrderRequest is the body sent to the payment processor's orders API.
// Amount is in the processor's minor currency unit and Receipt carries the
// appointment id so confirmations can be reconciled back to the appointment.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
