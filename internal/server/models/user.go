package models

import "time"

// Weight units a profile may prefer. Weights are always stored in kilograms.
const (
	UnitsKilograms = "kg"
	UnitsPounds    = "lb"
)

type User struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Password       []byte     `json:"-"`
	VerifiedEmail  bool       `json:"verified_email"`
	LastActivity   *time.Time `json:"last_activity"`
	PreferredUnits string     `json:"preferred_units"`
}

// PublicUser is what other users get to see.
type PublicUser struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	LastActivity *time.Time `json:"last_activity"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, LastActivity: u.LastActivity}
}

// ProfileUpdate is the allow-list of profile fields a user may change.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	PreferredUnits *string `json:"preferred_units"`
}

func (p ProfileUpdate) ApplyTo(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PreferredUnits != nil {
		u.PreferredUnits = *p.PreferredUnits
	}
}
