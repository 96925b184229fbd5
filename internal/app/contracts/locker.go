package contracts

import "context"

// SlotLockService serializes booking attempts on one (doctor, date, time)
// slot. LockSlot hands back a fence value identifying the holder; only the
// matching fence can release the slot again, and the lock expires on its own
// if the holder never does.
type SlotLockService interface {
	LockSlot(ctx context.Context, doctorID, slotDate, slotTime string) (acquired bool, fence string, err error)
	UnlockSlot(ctx context.Context, doctorID, slotDate, slotTime, fence string) error
}
