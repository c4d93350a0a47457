// Package bodyweights persists body-weight measurements (always kilograms).
package bodyweights

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Bodyweight) (*models.Bodyweight, error)
	Update(ctx context.Context, b *models.Bodyweight) error
	Get(ctx context.Context, userID, id int64) (*models.Bodyweight, error)
	// List returns the newest measurement first.
	List(ctx context.Context, userID int64) ([]*models.Bodyweight, error)
	// ListTimed returns measurements that have a time of day, oldest first.
	ListTimed(ctx context.Context, userID int64) ([]*models.Bodyweight, error)
	Delete(ctx context.Context, userID, id int64) error
}
