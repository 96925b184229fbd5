package contracts

import "context"

// AvailabilityStore owns each doctor's per-date set of reserved time labels.
// Reserve must be one atomic read-modify-write against the store: of two
// concurrent attempts on the same (doctor, date, time) exactly one succeeds
// and the other fails with ErrSlotAlreadyBooked. Release is idempotent.
type AvailabilityStore interface {
	Reserve(ctx context.Context, doctorID, slotDate, slotTime string) error
	Release(ctx context.Context, doctorID, slotDate, slotTime string) error
}
