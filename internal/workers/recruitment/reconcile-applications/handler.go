// internal/workers/recruitment/reconcile-applications/handler.go
package reconcileapplications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/recruitment"
	"workbridge-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "reconcile-applications"
)

type Handler struct {
	config     *Config
	reconciler *store.Reconciler
	logger     logger.Logger
	errs       *commonerrors.ErrorHandler
}

func NewHandler(config *Config, reconciler *store.Reconciler, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		reconciler: reconciler,
		logger:     scoped,
		errs:       commonerrors.NewErrorHandler(scoped),
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
	views, err := h.reconciler.Reconcile(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	counts := store.Counts(views)

	tab := recruitment.FilterTab(input.Tab)
	if tab == "" {
		tab = recruitment.TabAll
	}
	filtered := store.Filter(views, tab, recruitment.InterviewResult(input.Result))

	summaries := make([]ApplicationSummary, 0, len(filtered))
	for _, v := range filtered {
		summaries = append(summaries, ApplicationSummary{
			ApplicationID:          v.ID,
			SeekerID:               v.SeekerID,
			SeekerName:             v.SeekerName,
			Nationality:            v.Nationality,
			VisaType:               v.VisaType,
			KoreanLevel:            v.KoreanLevel,
			DisplayStatus:          string(v.DisplayStatus),
			Tab:                    string(v.Tab),
			Saved:                  v.Saved,
			HasProposal:            v.HasProposal,
			ProposalStatus:         string(v.ProposalStatus),
			ProposalUnread:         v.ProposalUnread,
			GuideSent:              v.GuideSent,
			FirstWorkDateConfirmed: v.FirstWorkDateConfirmed,
			AppliedAt:              v.AppliedAt.UTC().Format(time.RFC3339),
		})
	}

	countsOut := make(map[string]int, len(counts))
	for k, v := range counts {
		countsOut[string(k)] = v
	}

	h.logger.Info("applications reconciled", map[string]interface{}{
		"jobId": input.JobID,
		"tab":   string(tab),
		"total": len(views),
		"shown": len(summaries),
	})

	return &Output{
		JobID:        input.JobID,
		Applications: summaries,
		Counts:       countsOut,
		Total:        len(views),
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
