// Package foods persists food entries and runs the read-only aggregate
// queries over them.
package foods

import (
	"context"

	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.Food) (*models.Food, error)
	Update(ctx context.Context, f *models.Food) error
	Get(ctx context.Context, userID, id int64) (*models.Food, error)
	Delete(ctx context.Context, userID, id int64) error

	ListByDate(ctx context.Context, userID int64, date models.Date) ([]*models.Food, error)
	ListChildren(ctx context.Context, userID, parentID int64) ([]*models.Food, error)
	// ListDescendants and SetSubtreeDate cover every stored row below rootID,
	// not rootID itself.
	ListDescendants(ctx context.Context, userID, rootID int64) ([]*models.Food, error)
	SetSubtreeDate(ctx context.Context, userID, rootID int64, date models.Date) error
	// ListRootsByPhoto returns top-level entries linked to the photo directly
	// or, when groupID is set, through that photo group.
	ListRootsByPhoto(ctx context.Context, userID, photoID int64, groupID *int64) ([]*models.Food, error)
	ClearPhoto(ctx context.Context, userID, photoID int64) error
	CountByPhoto(ctx context.Context, userID, photoID int64) (int, error)

	SearchFrequent(ctx context.Context, userID int64, term string, limit int) ([]models.FrequentFood, error)
	SearchRecent(ctx context.Context, userID int64, term string, limit int) ([]*models.Food, error)
	SearchPremade(ctx context.Context, userID int64, term string) ([]*models.Food, error)
	SearchByName(ctx context.Context, userID int64, term string) ([]*models.Food, error)

	// DailyCalories sums calories per date in [from, to]. A child row is not
	// counted when its direct parent carries a calorie figure of its own.
	DailyCalories(ctx context.Context, userID int64, from, to models.Date) ([]models.DailyCalories, error)
}
