package responses

type Doctor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Image      string  `json:"image"`
	Available  bool    `json:"available"`
}
