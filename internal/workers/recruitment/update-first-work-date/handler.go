// internal/workers/recruitment/update-first-work-date/handler.go
package updatefirstworkdate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/overlay"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-first-work-date"
)

type Handler struct {
	config  *Config
	overlay overlay.Store
	logger  logger.Logger
	errs    *commonerrors.ErrorHandler
	now     func() time.Time
}

func NewHandler(config *Config, ov overlay.Store, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
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
	guide, ok, err := overlay.LoadGuide(ctx, h.overlay, input.ApplicationID)
	if err != nil {
		return nil, commonerrors.NewOverlayReadFailedError(overlay.AcceptanceGuideKey(input.ApplicationID), err)
	}
	if !ok {
		return nil, commonerrors.NewGuideNotFoundError(input.ApplicationID)
	}

	if input.FirstWorkDate != "" {
		guide.FirstWorkDate = input.FirstWorkDate
	}
	if input.FirstWorkTime != "" {
		guide.FirstWorkTime = input.FirstWorkTime
	}
	if input.CoordinationMessage != "" {
		guide.CoordinationMessage = input.CoordinationMessage
	}
	if err := guide.Validate(); err != nil {
		return nil, commonerrors.NewGuideValidationFailedError(err.Error())
	}
	if input.Confirm {
		if err := guide.ConfirmFirstWorkDate(h.now().UTC()); err != nil {
			return nil, commonerrors.NewGuideValidationFailedError(err.Error())
		}
	}

	persisted := true
	writeErr := overlay.StoreGuide(ctx, h.overlay, guide)
	if writeErr != nil {
		persisted = false
		if err := h.config.OverlayPolicy.Resolve(writeErr, h.logger, TaskType, overlay.AcceptanceGuideKey(input.ApplicationID)); err != nil {
			return nil, err
		}
	}
	if input.Confirm && persisted {
		flagErr := overlay.MarkFirstWorkDateConfirmed(ctx, h.overlay, input.ApplicationID)
		if err := h.config.OverlayPolicy.Resolve(flagErr, h.logger, TaskType, overlay.FirstWorkDateConfirmedKey(input.ApplicationID)); err != nil {
			return nil, err
		}
	}

	persistedTo := "overlay"
	if !persisted {
		persistedTo = "none"
	}

	h.logger.Info("first work date updated", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"firstWorkDate": guide.FirstWorkDate,
		"confirmed":     input.Confirm,
		"persistedTo":   persistedTo,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		FirstWorkDate: guide.FirstWorkDate,
		FirstWorkTime: guide.FirstWorkTime,
		Confirmed:     guide.DateConfirmedAt != nil,
		PersistedTo:   persistedTo,
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
