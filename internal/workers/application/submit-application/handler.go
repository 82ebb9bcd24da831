// internal/workers/application/submit-application/handler.go
package submitapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/common/validation"
	"workbridge-workers/internal/recruitment"
	"workbridge-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "submit-application"
)

type Handler struct {
	config *Config
	apps   *store.ApplicationStore
	logger logger.Logger
	errs   *commonerrors.ErrorHandler
}

func NewHandler(config *Config, apps *store.ApplicationStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		apps:   apps,
		logger: scoped,
		errs:   commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
	start := time.Now()

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}
	if result := validation.ValidateInput(variables, GetInputSchema()); !result.Valid {
		h.failJob(client, job, string(commonerrors.ErrCodeApplicationInvalid),
			fmt.Sprintf("validation errors: %v", result.GetErrorMessages()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errs.HandleJobError(ctx, client, job, err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode(err)).Inc()
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.JobID == "" || input.SeekerID == "" {
		return nil, commonerrors.NewApplicationValidationFailedError(
			fmt.Sprintf("jobId and seekerId are required, got jobId=%q seekerId=%q", input.JobID, input.SeekerID))
	}

	appID := uuid.New().String()
	if err := h.apps.Insert(ctx, appID, input.JobID, input.SeekerID); err != nil {
		return nil, err
	}

	// Audit is best-effort; a failed insert must not undo the submission.
	if err := h.apps.InsertAuditEntry(ctx, "application_submitted", appID, map[string]interface{}{
		"jobId":    input.JobID,
		"seekerId": input.SeekerID,
	}); err != nil {
		h.logger.WithError(err).Warn("audit log insert failed", map[string]interface{}{
			"applicationId": appID,
		})
	}

	h.logger.Info("application submitted", map[string]interface{}{
		"applicationId": appID,
		"jobId":         input.JobID,
		"seekerId":      input.SeekerID,
	})

	return &Output{
		ApplicationID: appID,
		Status:        string(recruitment.StatusPending),
		AppliedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func errorCode(err error) string {
	if stdErr, ok := err.(*commonerrors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "INTERNAL_ERROR"
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
