package bodyweights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

const selectBodyweight = `SELECT id, user_id, date, to_char(time, 'HH24:MI:SS'), bodyweight FROM bodyweight`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Bodyweight) (*models.Bodyweight, error) {
	query :=
		`INSERT INTO bodyweight (user_id, date, time, bodyweight)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, b.UserID, b.Date, b.Time, b.Bodyweight).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b *models.Bodyweight) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bodyweight SET date = $3, time = $4, bodyweight = $5 WHERE id = $1 AND user_id = $2`,
		b.ID, b.UserID, b.Date, b.Time, b.Bodyweight)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Bodyweight, error) {
	b := &models.Bodyweight{}
	err := r.db.QueryRowContext(ctx, selectBodyweight+` WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&b.ID, &b.UserID, &b.Date, &b.Time, &b.Bodyweight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.Bodyweight, error) {
	return r.query(ctx, selectBodyweight+` WHERE user_id = $1 ORDER BY date DESC, time DESC NULLS LAST, id DESC`, userID)
}

func (r *PostgresRepository) ListTimed(ctx context.Context, userID int64) ([]*models.Bodyweight, error) {
	return r.query(ctx, selectBodyweight+` WHERE user_id = $1 AND time IS NOT NULL ORDER BY date, time, id`, userID)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bodyweight WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Bodyweight, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Bodyweight
	for rows.Next() {
		b := &models.Bodyweight{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Date, &b.Time, &b.Bodyweight); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
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
