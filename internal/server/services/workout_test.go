package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkout_Exercises(t *testing.T) {
	db, mock := newSQLMock(t)
	m := newMemDB()
	s := NewWorkoutService(db, &fakeRepoManager{m: m})
	ctx := context.Background()

	_, err := s.CreateExercise(ctx, owner, models.Exercise{Name: "  "})
	assert.ErrorIs(t, err, common.ErrorValidation)

	e, err := s.CreateExercise(ctx, owner, models.Exercise{Name: "Squat"})
	require.NoError(t, err)

	expectTx(mock)
	e, err = s.UpdateExercise(ctx, owner, e.ID, models.ExerciseUpdate{Description: ptr("Back squat")})
	require.NoError(t, err)
	assert.Equal(t, "Squat", e.Name)
	assert.Equal(t, "Back squat", e.Description)

	_, err = s.UpdateExercise(ctx, owner, e.ID, models.ExerciseUpdate{Name: ptr("")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err := s.ListExercises(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteExercise(ctx, owner, e.ID))
	assert.ErrorIs(t, s.DeleteExercise(ctx, owner, e.ID), common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkout_Sets(t *testing.T) {
	db, mock := newSQLMock(t)
	m := newMemDB()
	s := NewWorkoutService(db, &fakeRepoManager{m: m})
	ctx := context.Background()

	ex := &models.Exercise{ID: m.id(), UserID: owner, Name: "Press"}
	m.exercises[ex.ID] = ex
	theirs := &models.Exercise{ID: m.id(), UserID: owner + 1, Name: "Row"}
	m.exercises[theirs.ID] = theirs

	_, err := s.CreateSet(ctx, owner, models.WorkoutSet{})
	assert.ErrorIs(t, err, common.ErrorValidation)

	expectRollback(mock)
	_, err = s.CreateSet(ctx, owner, models.WorkoutSet{Date: day("2024-03-01"), ExerciseID: &theirs.ID})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	expectTx(mock)
	parent, err := s.CreateSet(ctx, owner, models.WorkoutSet{Date: day("2024-03-01"), ExerciseID: &ex.ID, Reps: ptr(int64(5))})
	require.NoError(t, err)

	expectTx(mock)
	child, err := s.CreateSet(ctx, owner, models.WorkoutSet{Date: day("2024-03-01"), ParentID: &parent.ID})
	require.NoError(t, err)

	expectRollback(mock)
	_, err = s.UpdateSet(ctx, owner, child.ID, models.WorkoutSetUpdate{ParentID: &child.ID})
	assert.ErrorIs(t, err, common.ErrorValidation)

	expectTx(mock)
	updated, err := s.UpdateSet(ctx, owner, child.ID, models.WorkoutSetUpdate{Tempo: ptr("3-1-1"), Order: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, "3-1-1", *updated.Tempo)
	assert.Equal(t, parent.ID, *updated.ParentID)

	d := day("2024-03-01")
	sets, err := s.ListSets(ctx, owner, &d)
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	other := day("2024-03-02")
	sets, err = s.ListSets(ctx, owner, &other)
	require.NoError(t, err)
	assert.Empty(t, sets)

	require.NoError(t, s.DeleteSet(ctx, owner, child.ID))
	assert.ErrorIs(t, s.DeleteSet(ctx, owner+1, parent.ID), common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
