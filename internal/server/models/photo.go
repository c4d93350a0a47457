package models

import "time"

type Photo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Date       Date      `json:"date"`
	Time       *string   `json:"time"`
	UploadTime time.Time `json:"upload_time"`
	FileName   string    `json:"file_name"`
	GroupID    *int64    `json:"group_id"`
	FileURL    string    `json:"file_url,omitempty"`
}

// PhotoGroup is a set of photos of one date shared by one food entry.
type PhotoGroup struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"-"`
	Date     Date   `json:"date"`
	ParentID *int64 `json:"parent_id"`
}

type PhotoGroupFilter struct {
	ID       *int64
	ParentID *int64
	Date     *Date
}

type PhotoFilter struct {
	Date    *Date
	GroupID *int64
}

type PhotoUpdate struct {
	Date *Date   `json:"date"`
	Time *string `json:"time"`
}

func (p PhotoUpdate) ApplyTo(ph *Photo) {
	if p.Date != nil {
		ph.Date = *p.Date
	}
	if p.Time != nil {
		ph.Time = p.Time
	}
}
