package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	FindAll(ctx context.Context) ([]responses.Doctor, error)
}

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindAll(ctx context.Context) ([]models.Doctor, error)
	Count(ctx context.Context) (int64, error)
}
