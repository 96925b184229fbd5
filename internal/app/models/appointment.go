package models

type AppointmentStatus string

const (
	AppointmentStatusActive    AppointmentStatus = "active"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// PatientSnapshot and DoctorSnapshot are captured once at booking time and
// never refreshed, so later profile edits do not rewrite booking history.
type PatientSnapshot struct {
	Name    string  `json:"name" bson:"name"`
	Image   string  `json:"image" bson:"image"`
	Address Address `json:"address" bson:"address"`
}

type DoctorSnapshot struct {
	Name    string  `json:"name" bson:"name"`
	Image   string  `json:"image" bson:"image"`
	Address Address `json:"address" bson:"address"`
	Fees    float64 `json:"fees" bson:"fees"`
}

// Appointment is never physically deleted: cancellation and completion are
// terminal statuses and the record stays behind as audit history. Status and
// the Paid flag only ever move forward (active to a terminal status, unpaid
// to paid), which lets every transition be a conditional set-if-not-set.
type Appointment struct {
	ID              string            `json:"id" bson:"_id"`
	PatientID       string            `json:"patient_id" bson:"patientId"`
	DoctorID        string            `json:"doctor_id" bson:"doctorId"`
	SlotDate        string            `json:"slot_date" bson:"slotDate"`
	SlotTime        string            `json:"slot_time" bson:"slotTime"`
	ScheduledAt     int64             `json:"scheduled_at" bson:"scheduledAt"`
	Amount          float64           `json:"amount" bson:"amount"`
	Currency        string            `json:"currency" bson:"currency"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	Paid            bool              `json:"paid" bson:"paid"`
	PatientSnapshot PatientSnapshot   `json:"patient_snapshot" bson:"patientSnapshot"`
	DoctorSnapshot  DoctorSnapshot    `json:"doctor_snapshot" bson:"doctorSnapshot"`
	TimeModel       `bson:",inline"`
}

func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
