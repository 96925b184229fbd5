package constvars

const (
	GetDoctorsSuccessMessage          = "successfully retrieved doctors"
	GetOpenSlotsSuccessMessage        = "successfully retrieved open slots"
	CreateAppointmentSuccessMessage   = "appointment booked successfully"
	GetAppointmentsSuccessMessage     = "successfully retrieved appointments"
	CancelAppointmentSuccessMessage   = "appointment cancelled"
	CompleteAppointmentSuccessMessage = "appointment completed"
	CreatePaymentOrderSuccessMessage  = "payment order created"
	PaymentConfirmedSuccessMessage    = "payment successful"
	PaymentNotCompletedMessage        = "payment not completed"
	GetDashboardSuccessMessage        = "successfully retrieved dashboard data"
)
