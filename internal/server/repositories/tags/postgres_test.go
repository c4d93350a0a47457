package tags

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagCols = []string{"id", "user_id", "parent_id", "tag", "description"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^INSERT\s+INTO\s+tags`).
		WithArgs(int64(1), nil, "fruit", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	tag, err := repo.Create(context.Background(), &models.Tag{UserID: 1, Tag: "fruit"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), tag.ID)

	mock.ExpectQuery(`^INSERT\s+INTO\s+tags`).WillReturnError(errors.New("boom"))
	_, err = repo.Create(context.Background(), &models.Tag{UserID: 1, Tag: "x"})
	assert.ErrorContains(t, err, "db error: boom")
}

func TestSearch_LimitAndPattern(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)tag\s+ILIKE\s+\$2.*LIMIT\s+\$3`).
		WithArgs(int64(1), "%fr%", 5).
		WillReturnRows(sqlmock.NewRows(tagCols).AddRow(int64(3), int64(1), nil, "fruit", ""))

	got, err := repo.Search(context.Background(), 1, "fr", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fruit", got[0].Tag)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+tags\s+WHERE\s+id`).WithArgs(int64(3), int64(2)).WillReturnError(sql.ErrNoRows)
	_, err := repo.Get(context.Background(), 2, 3)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
