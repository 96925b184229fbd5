package contracts

import (
	"context"
	"medibook-service/internal/pkg/dto/responses"
)

type SlotUsecase interface {
	// ListOpenSlots recomputes the bookable labels for each of the next
	// windowDays calendar days starting today; the result depends on the
	// current time and current reservations and is never cached.
	ListOpenSlots(ctx context.Context, doctorID string, windowDays int) ([]responses.DaySlots, error)
}
