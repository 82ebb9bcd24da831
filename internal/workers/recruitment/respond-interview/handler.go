// internal/workers/recruitment/respond-interview/handler.go
package respondinterview

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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "respond-interview"
)

// The server of record has no proposal table, so the answer lives in the
// overlay alone. Callers read persistedTo to know where it landed.
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
	proposal, ok, err := overlay.LoadProposal(ctx, h.overlay, input.ApplicationID)
	if err != nil {
		return nil, commonerrors.NewOverlayReadFailedError(overlay.InterviewProposalKey(input.ApplicationID), err)
	}
	if !ok {
		return nil, commonerrors.NewProposalNotFoundError(input.ApplicationID)
	}

	now := h.now().UTC()
	if err := proposal.Respond(recruitment.ProposalStatus(input.Response), now); err != nil {
		return nil, commonerrors.NewProposalValidationFailedError(err.Error())
	}

	if err := overlay.StoreProposal(ctx, h.overlay, proposal); err != nil {
		return nil, commonerrors.NewOverlayWriteFailedError(overlay.InterviewProposalKey(input.ApplicationID), err)
	}
	resp := &overlay.Response{
		ApplicationID: input.ApplicationID,
		Status:        proposal.Status,
		RespondedAt:   now,
	}
	if err := overlay.StoreResponse(ctx, h.overlay, resp); err != nil {
		return nil, commonerrors.NewOverlayWriteFailedError(overlay.InterviewResponseKey(input.ApplicationID), err)
	}

	h.logger.Info("interview response recorded", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"response":      string(proposal.Status),
	})

	return &Output{
		ApplicationID:  input.ApplicationID,
		ProposalStatus: string(proposal.Status),
		RespondedAt:    now.Format(time.RFC3339),
		PersistedTo:    "overlay",
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
