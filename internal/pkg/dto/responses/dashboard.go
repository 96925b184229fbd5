package responses

type Dashboard struct {
	Doctors            int64         `json:"doctors"`
	Patients           int64         `json:"patients"`
	Appointments       int64         `json:"appointments"`
	LatestAppointments []Appointment `json:"latest_appointments"`
}
