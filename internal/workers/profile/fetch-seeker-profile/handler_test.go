package fetchseekerprofile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/profileapi"
)

type fakeProfiles struct {
	profile *profileapi.SeekerProfile
	err     error
}

func (f *fakeProfiles) GetSeeker(_ context.Context, _ string) (*profileapi.SeekerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newTestHandler(t *testing.T, profiles ProfileService) *Handler {
	t.Helper()
	handler := NewHandler(LoadConfig(), profiles, logger.NewTestLogger(t))
	handler.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return handler
}

func TestExecuteSuccess(t *testing.T) {
	profiles := &fakeProfiles{profile: &profileapi.SeekerProfile{
		SeekerID:    "seeker-1",
		Name:        "Nguyen Van A",
		Email:       "a.nguyen@example.com",
		Nationality: "Vietnam",
		VisaType:    "E-9",
		KoreanLevel: "TOPIK 3",
		Languages:   []string{"Vietnamese", "Korean"},
	}}
	handler := newTestHandler(t, profiles)

	output, err := handler.Execute(context.Background(), &Input{SeekerID: "seeker-1"})
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", output.Name)
	assert.Equal(t, "E-9", output.VisaType)
	assert.Equal(t, []string{"Vietnamese", "Korean"}, output.Languages)
	assert.Equal(t, "2026-03-02T10:00:00Z", output.FetchedAt)
}

func TestExecuteNotFound(t *testing.T) {
	profiles := &fakeProfiles{err: fmt.Errorf("%w: seekerId seeker-404", profileapi.ErrNotFound)}
	handler := newTestHandler(t, profiles)

	_, err := handler.Execute(context.Background(), &Input{SeekerID: "seeker-404"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeSeekerNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecuteTimeout(t *testing.T) {
	profiles := &fakeProfiles{err: fmt.Errorf("request: %w", context.DeadlineExceeded)}
	handler := newTestHandler(t, profiles)

	_, err := handler.Execute(context.Background(), &Input{SeekerID: "seeker-1"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeProfileFetchTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecuteServiceError(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("profile fetch failed (status 502): bad gateway")}
	handler := newTestHandler(t, profiles)

	_, err := handler.Execute(context.Background(), &Input{SeekerID: "seeker-1"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeProfileFetchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecuteMissingSeekerID(t *testing.T) {
	handler := newTestHandler(t, &fakeProfiles{})

	_, err := handler.Execute(context.Background(), &Input{})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeApplicationInvalid, stdErr.Code)
}
