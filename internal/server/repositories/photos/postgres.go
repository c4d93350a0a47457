package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

const selectPhoto = `SELECT id, user_id, date, to_char(time, 'HH24:MI:SS'), upload_time, file_name, group_id FROM photos`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPhoto(s scanner) (*models.Photo, error) {
	p := &models.Photo{}
	if err := s.Scan(&p.ID, &p.UserID, &p.Date, &p.Time, &p.UploadTime, &p.FileName, &p.GroupID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) queryPhotos(ctx context.Context, query string, args ...any) ([]*models.Photo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Photo) (*models.Photo, error) {
	query :=
		`INSERT INTO photos (user_id, date, time, file_name, group_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, upload_time`

	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Date, p.Time, p.FileName, p.GroupID).
		Scan(&p.ID, &p.UploadTime)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Photo) error {
	query :=
		`UPDATE photos SET date = $3, time = $4, file_name = $5, group_id = $6
		  WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Date, p.Time, p.FileName, p.GroupID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx, selectPhoto+` WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetMany(ctx context.Context, userID int64, ids []int64) ([]*models.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := r.queryPhotos(ctx, selectPhoto+` WHERE user_id = $1 AND id = ANY($2)`, userID, int64Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Photo, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	result := make([]*models.Photo, 0, len(found))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, filter models.PhotoFilter) ([]*models.Photo, error) {
	query := selectPhoto + ` WHERE user_id = $1`
	args := []any{userID}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(` AND date = $%d`, len(args))
	}
	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		query += fmt.Sprintf(` AND group_id = $%d`, len(args))
	}
	query += ` ORDER BY date DESC, id`
	return r.queryPhotos(ctx, query, args...)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, userID, groupID int64) ([]*models.Photo, error) {
	return r.queryPhotos(ctx, selectPhoto+` WHERE user_id = $1 AND group_id = $2 ORDER BY id`, userID, groupID)
}

func (r *PostgresRepository) SetGroup(ctx context.Context, userID int64, ids []int64, groupID int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE photos SET group_id = $3 WHERE user_id = $1 AND id = ANY($2)`,
		userID, int64Array(ids), groupID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// int64Array renders ids as a PostgreSQL array literal, which the server
// casts to bigint[] for ANY($n).
func int64Array(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
