package models

import "medibook-service/internal/pkg/constvars"

// Session is the caller identity attached to a request after the bearer
// token has been resolved. How tokens are issued is out of scope here; the
// middleware only needs the identity and role stored for the session.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	PatientID string `json:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
}

func (s *Session) IsPatient() bool {
	return s.Role == constvars.RolePatient
}

func (s *Session) IsNotPatient() bool {
	return !s.IsPatient()
}

func (s *Session) IsDoctor() bool {
	return s.Role == constvars.RoleDoctor
}

func (s *Session) IsAdmin() bool {
	return s.Role == constvars.RoleAdmin
}
