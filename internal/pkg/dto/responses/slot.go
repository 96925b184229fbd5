package responses

// DaySlots lists the still-bookable time labels for a single calendar day of
// the rolling window. Date is the day_month_year key shared with stored
// appointments; Times is empty once the day has no open labels left.
type DaySlots struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}
