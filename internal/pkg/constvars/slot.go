package constvars

// Slot date keys are unpadded day_month_year strings (e.g. 3_11_2025) and
// slot time labels use the clock layout below (e.g. "10:30 AM"). Both formats
// must match exactly between the allocation engine and stored appointments,
// otherwise release cannot find the reserved entry.
const (
	SlotTimeLabelLayout   = "3:04 PM"
	SlotGranularityMinute = 30
)

// SlotLockKeyFormat builds the redis lock key for one (doctor, date, time)
// slot: doctor id, date key, time label in that order.
const SlotLockKeyFormat = "slot-lock:%s:%s:%s"
