package models

type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2,omitempty" bson:"line2,omitempty"`
}

// Doctor carries the doctor's public profile plus the embedded reserved-slot
// mapping. SlotsBooked maps a day_month_year date key to the set of time
// labels already reserved for that date; it is mutated only through the
// availability store's Reserve and Release operations.
type Doctor struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Speciality  string              `json:"speciality" bson:"speciality"`
	Degree      string              `json:"degree" bson:"degree"`
	Experience  string              `json:"experience" bson:"experience"`
	About       string              `json:"about" bson:"about"`
	Fees        float64             `json:"fees" bson:"fees"`
	Image       string              `json:"image" bson:"image"`
	Address     Address             `json:"address" bson:"address"`
	Available   bool                `json:"available" bson:"available"`
	SlotsBooked map[string][]string `json:"slots_booked" bson:"slotsBooked"`
	TimeModel   `bson:",inline"`
}
