// Package photos persists photo metadata. The image bytes live in the blob store.
package photos

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Photo) (*models.Photo, error)
	Update(ctx context.Context, p *models.Photo) error
	Get(ctx context.Context, userID, id int64) (*models.Photo, error)
	// GetMany resolves ids under the owner. Ids that do not resolve are
	// simply absent from the result, which keeps the order of ids.
	GetMany(ctx context.Context, userID int64, ids []int64) ([]*models.Photo, error)
	List(ctx context.Context, userID int64, filter models.PhotoFilter) ([]*models.Photo, error)
	ListByGroup(ctx context.Context, userID, groupID int64) ([]*models.Photo, error)
	SetGroup(ctx context.Context, userID int64, ids []int64, groupID int64) error
	Delete(ctx context.Context, userID, id int64) error
}
