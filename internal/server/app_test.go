package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitlog/internal/logging"
	"github.com/dmitrijs2005/fitlog/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingRunner struct {
	stopped chan struct{}
}

func (r *blockingRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	close(r.stopped)
	return nil
}

type failingRunner struct{ err error }

func (r failingRunner) Run(context.Context) error { return r.err }

func newTestApp(t *testing.T, runners ...runner) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	return &App{
		config:  &config.Config{EndpointAddrHTTP: ":0", EndpointAddrGRPC: ":0"},
		logger:  logging.Nop{},
		db:      db,
		runners: runners,
	}, mock
}

func TestNewApp_OpenDBError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("no driver") }

	app, err := NewApp(context.Background(), &config.Config{LogLevel: "error"})
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "db init error")
}

func TestApp_Run_StopsOnCancel(t *testing.T) {
	a := &blockingRunner{stopped: make(chan struct{})}
	b := &blockingRunner{stopped: make(chan struct{})}
	app, mock := newTestApp(t, a, b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	<-a.stopped
	<-b.stopped
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_Run_FailureStopsOthers(t *testing.T) {
	boom := errors.New("listen: address in use")
	other := &blockingRunner{stopped: make(chan struct{})}
	app, mock := newTestApp(t, failingRunner{err: boom}, other)

	err := app.Run(context.Background())
	require.ErrorIs(t, err, boom)

	<-other.stopped
	assert.NoError(t, mock.ExpectationsWereMet())
}
