package contracts

import (
	"context"
	"medibook-service/internal/app/models"
)

type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	Count(ctx context.Context) (int64, error)
}
