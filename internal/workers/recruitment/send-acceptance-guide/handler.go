// internal/workers/recruitment/send-acceptance-guide/handler.go
package sendacceptanceguide

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/overlay"
	"workbridge-workers/internal/recruitment"
	"workbridge-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-acceptance-guide"
)

type Handler struct {
	config  *Config
	apps    *store.ApplicationStore
	overlay overlay.Store
	logger  logger.Logger
	errs    *commonerrors.ErrorHandler
	now     func() time.Time
}

func NewHandler(config *Config, apps *store.ApplicationStore, ov overlay.Store, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		apps:    apps,
		overlay: ov,
		logger:  scoped,
		errs:    commonerrors.NewErrorHandler(scoped),
		now:     time.Now,
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
	documents := input.Documents
	if len(documents) == 0 {
		documents = h.config.DefaultDocuments
	}

	now := h.now().UTC()
	guide := &recruitment.AcceptanceGuide{
		ApplicationID:       input.ApplicationID,
		Documents:           documents,
		WorkAttire:          input.WorkAttire,
		WorkNotes:           input.WorkNotes,
		FirstWorkDate:       input.FirstWorkDate,
		FirstWorkTime:       input.FirstWorkTime,
		CoordinationMessage: input.CoordinationMessage,
		IsHired:             true,
		SentAt:              now,
	}
	if err := guide.Validate(); err != nil {
		return nil, commonerrors.NewGuideValidationFailedError(err.Error())
	}

	app, err := h.apps.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	// The guide is persisted before the status moves so a failed overlay
	// write leaves the row untouched and the job retryable. A row that is
	// already accepted takes a guide re-send without another transition.
	current := recruitment.FromServerStatus(app.Status)
	switch current {
	case recruitment.StatusReviewed, recruitment.StatusHold:
	case recruitment.StatusAccepted:
	default:
		return nil, commonerrors.NewInvalidStatusTransitionError(string(current), string(recruitment.StatusAccepted))
	}

	err = overlay.StoreGuide(ctx, h.overlay, guide)
	if err = h.config.OverlayPolicy.Resolve(err, h.logger, TaskType, overlay.AcceptanceGuideKey(input.ApplicationID)); err != nil {
		return nil, err
	}

	if current != recruitment.StatusAccepted {
		if _, err := h.apps.UpdateStatus(ctx, input.ApplicationID, recruitment.StatusAccepted); err != nil {
			return nil, err
		}
	}

	h.logger.Info("acceptance guide sent", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"documents":     len(documents),
		"firstWorkDate": input.FirstWorkDate,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		DisplayStatus: string(recruitment.StatusAccepted),
		Route:         recruitment.ResultRoute(recruitment.ResultAccepted),
		IsHired:       true,
		Documents:     documents,
		SentAt:        now.Format(time.RFC3339),
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
