package dbx

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitlog/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that mean "try again later" rather than "this request is wrong".
var busyCodes = map[string]struct{}{
	"57014": {}, // query_canceled (statement_timeout)
	"55P03": {}, // lock_not_available
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
}

// IsBusy reports whether err is a transient storage condition.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, common.ErrorBusy) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := busyCodes[pgErr.Code]
		return ok
	}
	return false
}

// Classify wraps transient storage errors with common.ErrorBusy and returns
// every other error unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, common.ErrorBusy) {
		return err
	}
	if IsBusy(err) {
		return fmt.Errorf("%w: %v", common.ErrorBusy, err)
	}
	return err
}
