package responses

type AppointmentParty struct {
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	Address string `json:"address,omitempty"`
}

type Appointment struct {
	ID          string           `json:"id"`
	PatientID   string           `json:"patient_id"`
	DoctorID    string           `json:"doctor_id"`
	SlotDate    string           `json:"slot_date"`
	SlotTime    string           `json:"slot_time"`
	ScheduledAt int64            `json:"scheduled_at"`
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	Status      string           `json:"status"`
	Paid        bool             `json:"paid"`
	Patient     AppointmentParty `json:"patient"`
	Doctor      AppointmentParty `json:"doctor"`
	DoctorFees  float64          `json:"doctor_fees"`
}
