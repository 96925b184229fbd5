package models

type Patient struct {
	ID        string  `json:"id" bson:"_id,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Email     string  `json:"email" bson:"email"`
	Phone     string  `json:"phone" bson:"phone"`
	Gender    string  `json:"gender" bson:"gender"`
	Dob       string  `json:"dob" bson:"dob"`
	Image     string  `json:"image" bson:"image"`
	Address   Address `json:"address" bson:"address"`
	TimeModel `bson:",inline"`
}
