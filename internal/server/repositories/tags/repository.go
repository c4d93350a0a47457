// Package tags persists a user's photo classification tags.
package tags

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Tag) (*models.Tag, error)
	Get(ctx context.Context, userID, id int64) (*models.Tag, error)
	List(ctx context.Context, userID int64) ([]*models.Tag, error)
	Search(ctx context.Context, userID int64, term string, limit int) ([]*models.Tag, error)
}
