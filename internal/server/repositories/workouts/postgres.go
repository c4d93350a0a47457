package workouts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
)

type PostgresExerciseRepository struct {
	db dbx.DBTX
}

func NewPostgresExerciseRepository(db dbx.DBTX) *PostgresExerciseRepository {
	return &PostgresExerciseRepository{db: db}
}

func (r *PostgresExerciseRepository) Create(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO exercises (user_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		e.UserID, e.Name, e.Description).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresExerciseRepository) Update(ctx context.Context, e *models.Exercise) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE exercises SET name = $3, description = $4 WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Name, e.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *PostgresExerciseRepository) Get(ctx context.Context, userID, id int64) (*models.Exercise, error) {
	e := &models.Exercise{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, description FROM exercises WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&e.ID, &e.UserID, &e.Name, &e.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresExerciseRepository) List(ctx context.Context, userID int64) ([]*models.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, description FROM exercises WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Exercise
	for rows.Next() {
		e := &models.Exercise{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresExerciseRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

const selectSet = `SELECT id, user_id, date, exercise_id, parent_id, reps, duration, tempo, "order" FROM workout_sets`

type PostgresSetRepository struct {
	db dbx.DBTX
}

func NewPostgresSetRepository(db dbx.DBTX) *PostgresSetRepository {
	return &PostgresSetRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSet(s scanner) (*models.WorkoutSet, error) {
	ws := &models.WorkoutSet{}
	if err := s.Scan(&ws.ID, &ws.UserID, &ws.Date, &ws.ExerciseID, &ws.ParentID,
		&ws.Reps, &ws.Duration, &ws.Tempo, &ws.Order); err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *PostgresSetRepository) Create(ctx context.Context, s *models.WorkoutSet) (*models.WorkoutSet, error) {
	query :=
		`INSERT INTO workout_sets (user_id, date, exercise_id, parent_id, reps, duration, tempo, "order")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.Date, s.ExerciseID, s.ParentID, s.Reps, s.Duration, s.Tempo, s.Order).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresSetRepository) Update(ctx context.Context, s *models.WorkoutSet) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workout_sets
		    SET date = $3, exercise_id = $4, parent_id = $5, reps = $6, duration = $7, tempo = $8, "order" = $9
		  WHERE id = $1 AND user_id = $2`,
		s.ID, s.UserID, s.Date, s.ExerciseID, s.ParentID, s.Reps, s.Duration, s.Tempo, s.Order)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *PostgresSetRepository) Get(ctx context.Context, userID, id int64) (*models.WorkoutSet, error) {
	ws, err := scanSet(r.db.QueryRowContext(ctx, selectSet+` WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ws, nil
}

func (r *PostgresSetRepository) List(ctx context.Context, userID int64, date *models.Date) ([]*models.WorkoutSet, error) {
	query := selectSet + ` WHERE user_id = $1`
	args := []any{userID}
	if date != nil {
		query += ` AND date = $2`
		args = append(args, *date)
	}
	query += ` ORDER BY date DESC, "order" NULLS LAST, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.WorkoutSet
	for rows.Next() {
		ws, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresSetRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_sets WHERE id = $1 AND user_id = $2`, id, userID)
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
