package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/bodyweights"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/foods"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/labels"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photogroups"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photos"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/tags"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/users"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/workouts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Foods(db dbx.DBTX) foods.Repository
	Photos(db dbx.DBTX) photos.Repository
	PhotoGroups(db dbx.DBTX) photogroups.Repository
	Tags(db dbx.DBTX) tags.Repository
	Labels(db dbx.DBTX) labels.Repository
	Bodyweights(db dbx.DBTX) bodyweights.Repository
	Exercises(db dbx.DBTX) workouts.ExerciseRepository
	WorkoutSets(db dbx.DBTX) workouts.SetRepository
}
