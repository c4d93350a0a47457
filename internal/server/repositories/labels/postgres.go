package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

const selectLabel = `SELECT id, user_id, photo_id, tag_id, bounding_box, bounding_polygon FROM labels`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, l *models.Label) (*models.Label, error) {
	query :=
		`INSERT INTO labels (user_id, photo_id, tag_id, bounding_box, bounding_polygon)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query, l.UserID, l.PhotoID, l.TagID, l.BoundingBox, l.BoundingPolygon).Scan(&l.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Update(ctx context.Context, l *models.Label) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE labels SET tag_id = $3, bounding_box = $4, bounding_polygon = $5
		  WHERE id = $1 AND user_id = $2`,
		l.ID, l.UserID, l.TagID, l.BoundingBox, l.BoundingPolygon)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Label, error) {
	l := &models.Label{}
	err := r.db.QueryRowContext(ctx, selectLabel+` WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&l.ID, &l.UserID, &l.PhotoID, &l.TagID, &l.BoundingBox, &l.BoundingPolygon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) ListByPhoto(ctx context.Context, userID, photoID int64) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx, selectLabel+` WHERE user_id = $1 AND photo_id = $2 ORDER BY id`, userID, photoID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Label
	for rows.Next() {
		l := &models.Label{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.PhotoID, &l.TagID, &l.BoundingBox, &l.BoundingPolygon); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
