package models

type Tag struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"-"`
	ParentID    *int64 `json:"parent_id"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
}

// Label marks a region of a photo with a tag.
type Label struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"-"`
	PhotoID         int64   `json:"photo_id"`
	TagID           int64   `json:"tag_id"`
	BoundingBox     RawJSON `json:"bounding_box"`
	BoundingPolygon RawJSON `json:"bounding_polygon"`
}

type LabelUpdate struct {
	TagID           *int64   `json:"tag_id"`
	BoundingBox     *RawJSON `json:"bounding_box"`
	BoundingPolygon *RawJSON `json:"bounding_polygon"`
}

func (u LabelUpdate) ApplyTo(l *Label) {
	if u.TagID != nil {
		l.TagID = *u.TagID
	}
	if u.BoundingBox != nil {
		l.BoundingBox = *u.BoundingBox
	}
	if u.BoundingPolygon != nil {
		l.BoundingPolygon = *u.BoundingPolygon
	}
}
