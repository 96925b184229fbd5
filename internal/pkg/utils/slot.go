package utils

import (
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"strconv"
	"strings"
	"time"
)

// FormatSlotDateKey renders the day_month_year key with unpadded integers,
// e.g. 3 November 2025 becomes "3_11_2025".
func FormatSlotDateKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

func ParseSlotDateKey(key string) (time.Time, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid slot date key %q", key)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in slot date key %q", key)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in slot date key %q", key)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in slot date key %q", key)
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("slot date key %q out of range", key)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

func FormatSlotTimeLabel(t time.Time) string {
	return t.Format(constvars.SlotTimeLabelLayout)
}

func ParseSlotTimeLabel(label string) (time.Time, error) {
	return time.Parse(constvars.SlotTimeLabelLayout, label)
}

// SlotInstant combines a date key and a time label into the slot's start
// instant in the service timezone.
func SlotInstant(dateKey, timeLabel string) (time.Time, error) {
	day, err := ParseSlotDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := ParseSlotTimeLabel(timeLabel)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// CeilToHalfHour rounds t up to the next half-hour boundary on the wall
// clock; an instant already exactly on a boundary is returned unchanged.
// Any seconds past a boundary push the result to the next one.
func CeilToHalfHour(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	step := time.Duration(constvars.SlotGranularityMinute) * time.Minute
	elapsed := t.Sub(midnight)
	rounded := elapsed.Truncate(step)
	if rounded != elapsed {
		rounded += step
	}
	return midnight.Add(rounded)
}
