package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	Book(ctx context.Context, session *models.Session, request *requests.CreateAppointmentRequest) (*responses.Appointment, error)
	Cancel(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error)
	Complete(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error)
	FindForCaller(ctx context.Context, session *models.Session) ([]responses.Appointment, error)
	FindAll(ctx context.Context, session *models.Session) ([]responses.Appointment, error)
	Dashboard(ctx context.Context, session *models.Session) (*responses.Dashboard, error)
}

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindLatest(ctx context.Context, limit int64) ([]models.Appointment, error)
	Count(ctx context.Context) (int64, error)

	// The Mark* operations are conditional single-document updates. They
	// report matched=false when the precondition no longer holds (already
	// terminal, already paid, or missing) without touching the document.
	MarkCancelled(ctx context.Context, appointmentID string) (matched bool, err error)
	MarkCompleted(ctx context.Context, appointmentID string) (matched bool, err error)
	MarkPaid(ctx context.Context, appointmentID string) (matched bool, err error)
}
