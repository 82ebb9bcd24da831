package holdapplication

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewTestLogger(t)
	apps := store.NewApplicationStore(&database.PostgresClient{DB: db}, log)
	return NewHandler(LoadConfig(), apps, log), mock
}

func TestExecuteHoldFromReviewed(t *testing.T) {
	handler, mock := newTestHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("reviewed"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status`)).
		WithArgs("hold", "app-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001"})
	require.NoError(t, err)
	assert.Equal(t, "hold", output.DisplayStatus)
	assert.Equal(t, "reviewed", output.PreviousStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteHoldFromPendingRefused(t *testing.T) {
	handler, mock := newTestHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("applied"))
	mock.ExpectRollback()

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeInvalidStatusTransition, stdErr.Code)
}

func TestExecuteHoldFromHoldRefused(t *testing.T) {
	handler, mock := newTestHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("hold"))
	mock.ExpectRollback()

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeInvalidStatusTransition, stdErr.Code)
}
