// internal/workers/profile/fetch-seeker-profile/handler.go
package fetchseekerprofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"
	"workbridge-workers/internal/common/profileapi"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-seeker-profile"
)

// ProfileService is the slice of the profile client the worker needs.
type ProfileService interface {
	GetSeeker(ctx context.Context, seekerID string) (*profileapi.SeekerProfile, error)
}

type Handler struct {
	config   *Config
	profiles ProfileService
	logger   logger.Logger
	errs     *commonerrors.ErrorHandler
	now      func() time.Time
}

func NewHandler(config *Config, profiles ProfileService, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		logger:   scoped,
		errs:     commonerrors.NewErrorHandler(scoped),
		now:      time.Now,
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
	if input.SeekerID == "" {
		return nil, commonerrors.NewApplicationValidationFailedError("seekerId is required")
	}

	profile, err := h.profiles.GetSeeker(ctx, input.SeekerID)
	if err != nil {
		switch {
		case errors.Is(err, profileapi.ErrNotFound):
			return nil, commonerrors.NewSeekerNotFoundError(input.SeekerID)
		case errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
			return nil, commonerrors.NewProfileFetchTimeoutError(input.SeekerID)
		default:
			return nil, commonerrors.NewProfileFetchFailedError(err)
		}
	}

	h.logger.Info("seeker profile fetched", map[string]interface{}{
		"seekerId":    profile.SeekerID,
		"nationality": profile.Nationality,
	})

	return &Output{
		SeekerID:     profile.SeekerID,
		Name:         profile.Name,
		Email:        profile.Email,
		Phone:        profile.Phone,
		Nationality:  profile.Nationality,
		VisaType:     profile.VisaType,
		KoreanLevel:  profile.KoreanLevel,
		Languages:    profile.Languages,
		Introduction: profile.Introduction,
		RegionCode:   profile.RegionCode,
		FetchedAt:    h.now().UTC().Format(time.RFC3339),
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
