package tags

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	query :=
		`INSERT INTO tags (user_id, parent_id, tag, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, t.UserID, t.ParentID, t.Tag, t.Description).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, parent_id, tag, description FROM tags WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&t.ID, &t.UserID, &t.ParentID, &t.Tag, &t.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.Tag, error) {
	return r.query(ctx, `SELECT id, user_id, parent_id, tag, description FROM tags WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *PostgresRepository) Search(ctx context.Context, userID int64, term string, limit int) ([]*models.Tag, error) {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return r.query(ctx,
		`SELECT id, user_id, parent_id, tag, description FROM tags
		  WHERE user_id = $1 AND tag ILIKE $2
		  ORDER BY id
		  LIMIT $3`, userID, "%"+esc+"%", limit)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.ParentID, &t.Tag, &t.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
