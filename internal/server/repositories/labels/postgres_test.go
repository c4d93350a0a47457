package labels

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/dmitrijs2005/fitlog/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate_PassesJSONAsText(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^INSERT\s+INTO\s+labels`).
		WithArgs(int64(1), int64(2), int64(3), "[0,0,10,10]", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	l, err := repo.Create(context.Background(), &models.Label{
		UserID: 1, PhotoID: 2, TagID: 3, BoundingBox: models.RawJSON(`[0,0,10,10]`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), l.ID)
}

func TestListByPhoto(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE\s+user_id\s*=\s*\$1\s+AND\s+photo_id\s*=\s*\$2`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "photo_id", "tag_id", "bounding_box", "bounding_polygon"}).
			AddRow(int64(4), int64(1), int64(2), int64(3), []byte(`[0,0,10,10]`), nil))

	got, err := repo.ListByPhoto(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `[0,0,10,10]`, string(got[0].BoundingBox))
	assert.Nil(t, got[0].BoundingPolygon)
}

func TestUpdateDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE\s+labels`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), &models.Label{ID: 1, UserID: 1}), common.ErrorNotFound)

	mock.ExpectExec(`^DELETE\s+FROM\s+labels`).WithArgs(int64(1), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 1, 1))
}
