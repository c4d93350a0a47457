package bodyweights

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

var cols = []string{"id", "user_id", "date", "time", "bodyweight"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := "07:15:00"
	mock.ExpectQuery(`^INSERT\s+INTO\s+bodyweight`).
		WithArgs(int64(1), "2024-02-01", at, 80.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	b, err := repo.Create(context.Background(), &models.Bodyweight{
		UserID: 1, Date: models.NewDate(2024, 2, 1), Time: &at, Bodyweight: 80.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), b.ID)
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER\s+BY\s+date\s+DESC,\s*time\s+DESC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), int64(1), "2024-02-02", "07:00:00", 80.0).
			AddRow(int64(1), int64(1), "2024-02-01", nil, 81.0))

	got, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "07:00:00", *got[0].Time)
	assert.Nil(t, got[1].Time)
}

func TestListTimed(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`time\s+IS\s+NOT\s+NULL\s+ORDER\s+BY\s+date,\s*time`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols))

	_, err := repo.ListTimed(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+bodyweight`).WithArgs(int64(5), int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1, 5), common.ErrorNotFound)
}
