package requests

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	SlotDate string `json:"slot_date" validate:"required,slot_date"`
	SlotTime string `json:"slot_time" validate:"required,slot_time"`
}
