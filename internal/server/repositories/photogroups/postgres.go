package photogroups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.PhotoGroup) (*models.PhotoGroup, error) {
	query :=
		`INSERT INTO photo_groups (user_id, date, parent_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, g.UserID, g.Date, g.ParentID).Scan(&g.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.PhotoGroup, error) {
	query := `SELECT id, user_id, date, parent_id FROM photo_groups WHERE id = $1 AND user_id = $2`

	g := &models.PhotoGroup{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&g.ID, &g.UserID, &g.Date, &g.ParentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, filter models.PhotoGroupFilter) ([]*models.PhotoGroup, error) {
	query := `SELECT id, user_id, date, parent_id FROM photo_groups WHERE user_id = $1`
	args := []any{userID}
	if filter.ID != nil {
		args = append(args, *filter.ID)
		query += fmt.Sprintf(` AND id = $%d`, len(args))
	}
	if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		query += fmt.Sprintf(` AND parent_id = $%d`, len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(` AND date = $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PhotoGroup
	for rows.Next() {
		g := &models.PhotoGroup{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.Date, &g.ParentID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
