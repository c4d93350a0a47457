// Package labels persists tagged regions of photos.
package labels

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.Label) (*models.Label, error)
	Update(ctx context.Context, l *models.Label) error
	Get(ctx context.Context, userID, id int64) (*models.Label, error)
	ListByPhoto(ctx context.Context, userID, photoID int64) ([]*models.Label, error)
	Delete(ctx context.Context, userID, id int64) error
}
