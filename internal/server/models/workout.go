package models

type Exercise struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ExerciseUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (u ExerciseUpdate) ApplyTo(e *Exercise) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
}

// WorkoutSet is one set of an exercise. Sets may be nested (supersets)
// through ParentID. Duration is in seconds.
type WorkoutSet struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"-"`
	Date       Date    `json:"date"`
	ExerciseID *int64  `json:"exercise_id"`
	ParentID   *int64  `json:"parent_id"`
	Reps       *int64  `json:"reps"`
	Duration   Number  `json:"duration"`
	Tempo      *string `json:"tempo"`
	Order      *int64  `json:"order"`
}

type WorkoutSetUpdate struct {
	Date       *Date   `json:"date"`
	ExerciseID *int64  `json:"exercise_id"`
	ParentID   *int64  `json:"parent_id"`
	Reps       *int64  `json:"reps"`
	Duration   *Number `json:"duration"`
	Tempo      *string `json:"tempo"`
	Order      *int64  `json:"order"`
}

func (u WorkoutSetUpdate) ApplyTo(s *WorkoutSet) {
	if u.Date != nil {
		s.Date = *u.Date
	}
	if u.ExerciseID != nil {
		s.ExerciseID = u.ExerciseID
	}
	if u.ParentID != nil {
		s.ParentID = u.ParentID
	}
	if u.Reps != nil {
		s.Reps = u.Reps
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.Tempo != nil {
		s.Tempo = u.Tempo
	}
	if u.Order != nil {
		s.Order = u.Order
	}
}
