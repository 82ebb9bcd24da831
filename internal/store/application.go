// internal/store/application.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/recruitment"
)

// Application is one row of the applications table joined with job and seeker
// display fields.
type Application struct {
	ID          string
	JobID       string
	JobTitle    string
	SeekerID    string
	SeekerName  string
	Nationality string
	VisaType    string
	KoreanLevel string
	Status      recruitment.ServerStatus
	AppliedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationStore persists applications in PostgreSQL, the source of truth
// for recruitment status.
type ApplicationStore struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewApplicationStore(db *database.PostgresClient, log logger.Logger) *ApplicationStore {
	return &ApplicationStore{db: db, logger: log}
}

const applicationColumns = `
	a.id, a.job_id, j.title, a.seeker_id, s.name, s.nationality,
	s.visa_type, s.korean_level, a.status, a.applied_at, a.updated_at`

const selectApplication = `
	SELECT` + applicationColumns + `
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN seekers s ON s.id = a.seeker_id`

func scanApplication(row interface {
	Scan(dest ...interface{}) error
}) (*Application, error) {
	var app Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.JobTitle, &app.SeekerID, &app.SeekerName,
		&app.Nationality, &app.VisaType, &app.KoreanLevel, &app.Status,
		&app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByID loads one application with its job and seeker fields.
func (s *ApplicationStore) GetByID(ctx context.Context, id string) (*Application, error) {
	row := s.db.QueryRow(ctx, selectApplication+` WHERE a.id = $1`, id)
	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, commonerrors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("get_application", err)
	}
	return app, nil
}

// ListByJob returns every application for one job posting, newest first.
func (s *ApplicationStore) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	rows, err := s.db.Query(ctx, selectApplication+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`, jobID)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_applications", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, commonerrors.NewQueryExecutionFailedError("scan_application", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_applications", err)
	}
	return apps, nil
}

// Insert creates a new application row as applied, the server-side spelling
// of the pending display status. A second application by
// the same seeker for the same job violates the unique index and surfaces as
// a duplicate error.
func (s *ApplicationStore) Insert(ctx context.Context, id, jobID, seekerID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, seeker_id, status, applied_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW())`,
		id, jobID, seekerID, recruitment.ServerApplied,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return commonerrors.NewDuplicateApplicationError(seekerID, jobID)
		}
		return commonerrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// InsertAuditEntry records one audit_log row for an application event. Audit
// writes are best-effort; callers log the error and continue.
func (s *ApplicationStore) InsertAuditEntry(ctx context.Context, eventType, applicationID string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		 VALUES ($1, $2, $3, $4, NOW())`,
		eventType, "application", applicationID, payload,
	)
	if err != nil {
		return commonerrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// UpdateStatus moves the application along the transition graph. The current
// status is locked and re-checked inside the transaction so concurrent
// updates cannot race past an illegal edge.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id string, to recruitment.Status) (recruitment.Status, error) {
	var from recruitment.Status
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var current recruitment.ServerStatus
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM applications WHERE id = $1 FOR UPDATE`, id,
		).Scan(&current)
		if err == sql.ErrNoRows {
			return commonerrors.NewApplicationNotFoundError(id)
		}
		if err != nil {
			return commonerrors.NewQueryExecutionFailedError("lock_application", err)
		}

		from = recruitment.FromServerStatus(current)
		if !recruitment.CanTransition(from, to) {
			return commonerrors.NewInvalidStatusTransitionError(string(from), string(to))
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
			recruitment.ToServerStatus(to), id,
		)
		if err != nil {
			return commonerrors.NewStatusUpdateFailedError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	s.logger.Info("application status updated", map[string]interface{}{
		"application_id": id,
		"from":           string(from),
		"to":             string(to),
	})
	return from, nil
}

// RejectWithSnapshot transitions the application to rejected and copies the
// candidate's display fields into rejected_candidates inside the same
// transaction. The application row survives so history stays queryable, but
// the live candidate data may be purged later.
func (s *ApplicationStore) RejectWithSnapshot(ctx context.Context, id, reason string) (recruitment.Status, error) {
	var from recruitment.Status
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, selectApplication+` WHERE a.id = $1 FOR UPDATE OF a`, id)
		app, err := scanApplication(row)
		if err == sql.ErrNoRows {
			return commonerrors.NewApplicationNotFoundError(id)
		}
		if err != nil {
			return commonerrors.NewQueryExecutionFailedError("lock_application", err)
		}

		from = recruitment.FromServerStatus(app.Status)
		if !recruitment.CanTransition(from, recruitment.StatusRejected) {
			return commonerrors.NewInvalidStatusTransitionError(string(from), string(recruitment.StatusRejected))
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO rejected_candidates
			 (application_id, job_id, seeker_id, seeker_name, nationality, visa_type, korean_level, reason, rejected_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
			app.ID, app.JobID, app.SeekerID, app.SeekerName,
			app.Nationality, app.VisaType, app.KoreanLevel, reason,
		)
		if err != nil {
			return commonerrors.NewDatabaseInsertFailedError(err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
			recruitment.ServerRejected, id,
		)
		if err != nil {
			return commonerrors.NewStatusUpdateFailedError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(recruitment.StatusRejected)).Inc()
	return from, nil
}
