// Package workouts persists exercises and the sets logged against them.
package workouts

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type ExerciseRepository interface {
	Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	Update(ctx context.Context, e *models.Exercise) error
	Get(ctx context.Context, userID, id int64) (*models.Exercise, error)
	List(ctx context.Context, userID int64) ([]*models.Exercise, error)
	Delete(ctx context.Context, userID, id int64) error
}

type SetRepository interface {
	Create(ctx context.Context, s *models.WorkoutSet) (*models.WorkoutSet, error)
	Update(ctx context.Context, s *models.WorkoutSet) error
	Get(ctx context.Context, userID, id int64) (*models.WorkoutSet, error)
	// List returns sets of one date when date is given, else all of them,
	// newest date first and in logged order within a date.
	List(ctx context.Context, userID int64, date *models.Date) ([]*models.WorkoutSet, error)
	Delete(ctx context.Context, userID, id int64) error
}
