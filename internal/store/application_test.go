package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/recruitment"
)

func newTestStore(t *testing.T) (*ApplicationStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	client := &database.PostgresClient{DB: db}
	return NewApplicationStore(client, logger.NewTestLogger(t)), mock
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "job_id", "title", "seeker_id", "name", "nationality",
		"visa_type", "korean_level", "status", "applied_at", "updated_at",
	})
}

var fixedTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func TestGetByID(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectQuery(`SELECT .+ FROM applications a`).
		WithArgs("app-001").
		WillReturnRows(applicationRows().AddRow(
			"app-001", "job-1", "주방 보조", "seeker-1", "Nguyen Van A", "Vietnam",
			"E-9", "TOPIK 3", "applied", fixedTime, fixedTime,
		))

	app, err := store.GetByID(context.Background(), "app-001")
	require.NoError(t, err)
	assert.Equal(t, "app-001", app.ID)
	assert.Equal(t, "주방 보조", app.JobTitle)
	assert.Equal(t, recruitment.ServerApplied, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectQuery(`SELECT .+ FROM applications a`).
		WithArgs("missing").
		WillReturnRows(applicationRows())

	_, err := store.GetByID(context.Background(), "missing")
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeApplicationNotFound, stdErr.Code)
}

func TestListByJob(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectQuery(`SELECT .+ FROM applications a .+ WHERE a\.job_id`).
		WithArgs("job-1").
		WillReturnRows(applicationRows().
			AddRow("app-002", "job-1", "주방 보조", "seeker-2", "Maria Santos", "Philippines",
				"H-2", "TOPIK 4", "reviewed", fixedTime, fixedTime).
			AddRow("app-001", "job-1", "주방 보조", "seeker-1", "Nguyen Van A", "Vietnam",
				"E-9", "TOPIK 3", "applied", fixedTime, fixedTime))

	apps, err := store.ListByJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "app-002", apps[0].ID)
	assert.Equal(t, recruitment.ServerReviewed, apps[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByJobEmpty(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectQuery(`SELECT .+ FROM applications a`).
		WithArgs("job-9").
		WillReturnRows(applicationRows())

	apps, err := store.ListByJob(context.Background(), "job-9")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestInsert(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO applications`)).
		WithArgs("app-003", "job-1", "seeker-3", "applied").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Insert(context.Background(), "app-003", "job-1", "seeker-3"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDuplicate(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO applications`)).
		WithArgs("app-003", "job-1", "seeker-3", "applied").
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.Insert(context.Background(), "app-003", "job-1", "seeker-3")
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestUpdateStatus(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("applied"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs("reviewed", "app-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	from, err := store.UpdateStatus(context.Background(), "app-001", recruitment.StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusPending, from)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusMapsToServerVocabulary(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("reviewed"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs("hired", "app-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	from, err := store.UpdateStatus(context.Background(), "app-001", recruitment.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusReviewed, from)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIllegalTransition(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))
	mock.ExpectRollback()

	_, err := store.UpdateStatus(context.Background(), "app-001", recruitment.StatusAccepted)
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeInvalidStatusTransition, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err := store.UpdateStatus(context.Background(), "missing", recruitment.StatusReviewed)
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeApplicationNotFound, stdErr.Code)
}

func TestUpdateStatusRollsBackOnUpdateFailure(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs("app-001").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("applied"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status`)).
		WithArgs("reviewed", "app-001").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := store.UpdateStatus(context.Background(), "app-001", recruitment.StatusReviewed)
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeStatusUpdateFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectWithSnapshot(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM applications a .+ FOR UPDATE OF a`).
		WithArgs("app-001").
		WillReturnRows(applicationRows().AddRow(
			"app-001", "job-1", "주방 보조", "seeker-1", "Nguyen Van A", "Vietnam",
			"E-9", "TOPIK 3", "reviewed", fixedTime, fixedTime,
		))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO rejected_candidates`)).
		WithArgs("app-001", "job-1", "seeker-1", "Nguyen Van A", "Vietnam", "E-9", "TOPIK 3", "position filled").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status`)).
		WithArgs("rejected", "app-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	from, err := store.RejectWithSnapshot(context.Background(), "app-001", "position filled")
	require.NoError(t, err)
	assert.Equal(t, recruitment.StatusReviewed, from)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectWithSnapshotFromPendingRejected(t *testing.T) {
	store, mock := newTestStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM applications a .+ FOR UPDATE OF a`).
		WithArgs("app-001").
		WillReturnRows(applicationRows().AddRow(
			"app-001", "job-1", "주방 보조", "seeker-1", "Nguyen Van A", "Vietnam",
			"E-9", "TOPIK 3", "applied", fixedTime, fixedTime,
		))
	mock.ExpectRollback()

	_, err := store.RejectWithSnapshot(context.Background(), "app-001", "")
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeInvalidStatusTransition, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
