package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/repomanager"
)

type WorkoutService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorkoutService(db *sql.DB, m repomanager.RepositoryManager) *WorkoutService {
	return &WorkoutService{db: db, repomanager: m}
}

func (s *WorkoutService) ListExercises(ctx context.Context, userID int64) ([]*models.Exercise, error) {
	return s.repomanager.Exercises(s.db).List(ctx, userID)
}

func (s *WorkoutService) CreateExercise(ctx context.Context, userID int64, e models.Exercise) (*models.Exercise, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil, common.Validationf("An exercise needs a name.")
	}
	e.UserID = userID
	return s.repomanager.Exercises(s.db).Create(ctx, &e)
}

func (s *WorkoutService) UpdateExercise(ctx context.Context, userID, id int64, upd models.ExerciseUpdate) (*models.Exercise, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, common.Validationf("An exercise needs a name.")
	}
	var e *models.Exercise
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Exercises(tx)
		var err error
		if e, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		upd.ApplyTo(e)
		return repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *WorkoutService) DeleteExercise(ctx context.Context, userID, id int64) error {
	return s.repomanager.Exercises(s.db).Delete(ctx, userID, id)
}

func (s *WorkoutService) ListSets(ctx context.Context, userID int64, date *models.Date) ([]*models.WorkoutSet, error) {
	return s.repomanager.WorkoutSets(s.db).List(ctx, userID, date)
}

func (s *WorkoutService) CreateSet(ctx context.Context, userID int64, ws models.WorkoutSet) (*models.WorkoutSet, error) {
	if ws.Date.IsZero() {
		return nil, common.Validationf("No valid date provided.")
	}
	ws.UserID = userID
	var created *models.WorkoutSet
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkSetRefs(ctx, tx, userID, ws.ExerciseID, ws.ParentID); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.WorkoutSets(tx).Create(ctx, &ws)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *WorkoutService) UpdateSet(ctx context.Context, userID, id int64, upd models.WorkoutSetUpdate) (*models.WorkoutSet, error) {
	var ws *models.WorkoutSet
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.WorkoutSets(tx)
		var err error
		if ws, err = repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if upd.ParentID != nil && *upd.ParentID == id {
			return common.Validationf("A set cannot be its own parent.")
		}
		if err := s.checkSetRefs(ctx, tx, userID, upd.ExerciseID, upd.ParentID); err != nil {
			return err
		}
		upd.ApplyTo(ws)
		return repo.Update(ctx, ws)
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorkoutService) DeleteSet(ctx context.Context, userID, id int64) error {
	return s.repomanager.WorkoutSets(s.db).Delete(ctx, userID, id)
}

func (s *WorkoutService) checkSetRefs(ctx context.Context, tx dbx.DBTX, userID int64, exerciseID, parentID *int64) error {
	if exerciseID != nil {
		if _, err := s.repomanager.Exercises(tx).Get(ctx, userID, *exerciseID); err != nil {
			return err
		}
	}
	if parentID != nil {
		if _, err := s.repomanager.WorkoutSets(tx).Get(ctx, userID, *parentID); err != nil {
			return err
		}
	}
	return nil
}
