package contracts

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, session *models.Session, appointmentID string) (*responses.PaymentOrder, error)
	// ConfirmPayment reconciles a processor order against the appointment it
	// pays for. Confirming an already-paid order again is a no-op success;
	// a non-paid processor status is a valid pending/failed outcome, not an
	// error.
	ConfirmPayment(ctx context.Context, orderID string) (*responses.PaymentStatus, error)
}
