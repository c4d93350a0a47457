package models

type Bodyweight struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"-"`
	Date       Date    `json:"date"`
	Time       *string `json:"time"`
	Bodyweight float64 `json:"bodyweight"`
}

// BodyweightInput is lenient about types; the service decides what is valid.
type BodyweightInput struct {
	Date       *Date   `json:"date"`
	Time       *string `json:"time"`
	Bodyweight *Number `json:"bodyweight"`
}
