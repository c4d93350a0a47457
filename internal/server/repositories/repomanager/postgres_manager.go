// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fitlog/internal/dbx"
	"github.com/dmitrijs2005/fitlog/internal/server/migrations"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/bodyweights"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/foods"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/labels"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photogroups"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/photos"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/tags"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/users"
	"github.com/dmitrijs2005/fitlog/internal/server/repositories/workouts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to
// either the pool or a transaction.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Foods(db dbx.DBTX) foods.Repository {
	return foods.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Photos(db dbx.DBTX) photos.Repository {
	return photos.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) PhotoGroups(db dbx.DBTX) photogroups.Repository {
	return photogroups.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Tags(db dbx.DBTX) tags.Repository {
	return tags.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Labels(db dbx.DBTX) labels.Repository {
	return labels.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Bodyweights(db dbx.DBTX) bodyweights.Repository {
	return bodyweights.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Exercises(db dbx.DBTX) workouts.ExerciseRepository {
	return workouts.NewPostgresExerciseRepository(db)
}

func (m *PostgresRepositoryManager) WorkoutSets(db dbx.DBTX) workouts.SetRepository {
	return workouts.NewPostgresSetRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
