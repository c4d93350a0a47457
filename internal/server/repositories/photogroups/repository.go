// Package photogroups persists photo groups.
package photogroups

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, g *models.PhotoGroup) (*models.PhotoGroup, error)
	Get(ctx context.Context, userID, id int64) (*models.PhotoGroup, error)
	List(ctx context.Context, userID int64, filter models.PhotoGroupFilter) ([]*models.PhotoGroup, error)
}
