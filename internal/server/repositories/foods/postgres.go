package foods

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

const selectFood = `SELECT f.id, f.user_id, f.date, to_char(f.time, 'HH24:MI:SS'), f.name, f.quantity,
       f.calories, f.protein, f.parent_id, f.photo_id, f.photo_group_id, f.premade, f.finished
  FROM food f`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFood(s scanner) (*models.Food, error) {
	f := &models.Food{}
	err := s.Scan(&f.ID, &f.UserID, &f.Date, &f.Time, &f.Name, &f.Quantity,
		&f.Calories, &f.Protein, &f.ParentID, &f.PhotoID, &f.PhotoGroupID, &f.Premade, &f.Finished)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PostgresRepository) queryFoods(ctx context.Context, query string, args ...any) ([]*models.Food, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// likePattern builds an ILIKE substring pattern with the wildcards in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Food) (*models.Food, error) {
	query :=
		`INSERT INTO food (user_id, date, time, name, quantity, calories, protein,
		                   parent_id, photo_id, photo_group_id, premade, finished)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		f.UserID, f.Date, f.Time, f.Name, f.Quantity, f.Calories, f.Protein,
		f.ParentID, f.PhotoID, f.PhotoGroupID, f.Premade, f.Finished).Scan(&f.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Update(ctx context.Context, f *models.Food) error {
	query :=
		`UPDATE food
		    SET date = $3, time = $4, name = $5, quantity = $6, calories = $7, protein = $8,
		        parent_id = $9, photo_id = $10, photo_group_id = $11, premade = $12, finished = $13
		  WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, f.ID, f.UserID,
		f.Date, f.Time, f.Name, f.Quantity, f.Calories, f.Protein,
		f.ParentID, f.PhotoID, f.PhotoGroupID, f.Premade, f.Finished)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Food, error) {
	f, err := scanFood(r.db.QueryRowContext(ctx, selectFood+` WHERE f.id = $1 AND f.user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM food WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) ListByDate(ctx context.Context, userID int64, date models.Date) ([]*models.Food, error) {
	return r.queryFoods(ctx, selectFood+` WHERE f.user_id = $1 AND f.date = $2 ORDER BY f.id`, userID, date)
}

func (r *PostgresRepository) ListChildren(ctx context.Context, userID, parentID int64) ([]*models.Food, error) {
	return r.queryFoods(ctx, selectFood+` WHERE f.user_id = $1 AND f.parent_id = $2 ORDER BY f.id`, userID, parentID)
}

const subtreeCTE = `WITH RECURSIVE subtree(id) AS (
    SELECT id FROM food WHERE user_id = $1 AND parent_id = $2
    UNION
    SELECT c.id FROM food c JOIN subtree s ON c.parent_id = s.id WHERE c.user_id = $1
)
`

func (r *PostgresRepository) ListDescendants(ctx context.Context, userID, rootID int64) ([]*models.Food, error) {
	return r.queryFoods(ctx, subtreeCTE+selectFood+` WHERE f.user_id = $1 AND f.id IN (SELECT id FROM subtree) ORDER BY f.id`,
		userID, rootID)
}

func (r *PostgresRepository) SetSubtreeDate(ctx context.Context, userID, rootID int64, date models.Date) error {
	_, err := r.db.ExecContext(ctx, subtreeCTE+`UPDATE food SET date = $3 WHERE user_id = $1 AND id IN (SELECT id FROM subtree)`,
		userID, rootID, date)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListRootsByPhoto(ctx context.Context, userID, photoID int64, groupID *int64) ([]*models.Food, error) {
	query := selectFood + `
	 WHERE f.user_id = $1 AND f.parent_id IS NULL
	   AND (f.photo_id = $2 OR ($3::bigint IS NOT NULL AND f.photo_group_id = $3))
	 ORDER BY f.id`
	return r.queryFoods(ctx, query, userID, photoID, groupID)
}

func (r *PostgresRepository) ClearPhoto(ctx context.Context, userID, photoID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE food SET photo_id = NULL WHERE user_id = $1 AND photo_id = $2`, userID, photoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// CountByPhoto counts the entries linked to photoID directly.
func (r *PostgresRepository) CountByPhoto(ctx context.Context, userID, photoID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM food WHERE user_id = $1 AND photo_id = $2`, userID, photoID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SearchFrequent(ctx context.Context, userID int64, term string, limit int) ([]models.FrequentFood, error) {
	query :=
		`SELECT mode() WITHIN GROUP (ORDER BY name), quantity, calories, protein, count(*)
		   FROM food
		  WHERE user_id = $1 AND name <> '' AND name ILIKE $2
		  GROUP BY lower(name), quantity, calories, protein
		  ORDER BY count(*) DESC, max(date) DESC
		  LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, likePattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.FrequentFood
	for rows.Next() {
		var ff models.FrequentFood
		if err := rows.Scan(&ff.Name, &ff.Quantity, &ff.Calories, &ff.Protein, &ff.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, ff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) SearchRecent(ctx context.Context, userID int64, term string, limit int) ([]*models.Food, error) {
	query := selectFood + `
	 WHERE f.user_id = $1 AND f.name ILIKE $2
	 ORDER BY f.date DESC, f.id DESC
	 LIMIT $3`
	return r.queryFoods(ctx, query, userID, likePattern(term), limit)
}

func (r *PostgresRepository) SearchPremade(ctx context.Context, userID int64, term string) ([]*models.Food, error) {
	query := selectFood + `
	 WHERE f.user_id = $1 AND f.premade AND (f.finished IS NULL OR NOT f.finished) AND f.name ILIKE $2
	 ORDER BY f.date DESC, f.id DESC`
	return r.queryFoods(ctx, query, userID, likePattern(term))
}

func (r *PostgresRepository) SearchByName(ctx context.Context, userID int64, term string) ([]*models.Food, error) {
	query := selectFood + `
	 WHERE f.user_id = $1 AND f.name ILIKE $2
	 ORDER BY f.date DESC, f.id DESC`
	return r.queryFoods(ctx, query, userID, likePattern(term))
}

func (r *PostgresRepository) DailyCalories(ctx context.Context, userID int64, from, to models.Date) ([]models.DailyCalories, error) {
	query :=
		`SELECT f.date, SUM(f.calories)
		   FROM food f
		   LEFT JOIN food p ON p.id = f.parent_id
		  WHERE f.user_id = $1 AND f.date BETWEEN $2 AND $3
		    AND f.calories IS NOT NULL
		    AND (f.parent_id IS NULL OR p.calories IS NULL)
		  GROUP BY f.date
		  ORDER BY f.date`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.DailyCalories
	for rows.Next() {
		var d models.DailyCalories
		if err := rows.Scan(&d.Date, &d.Calories); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
