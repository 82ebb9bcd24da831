package reconcileapplications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/overlay"
	"workbridge-workers/internal/recruitment"
	"workbridge-workers/internal/store"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fakeLister struct {
	apps []store.Application
	err  error
}

func (f *fakeLister) ListByJob(_ context.Context, _ string) ([]store.Application, error) {
	return f.apps, f.err
}

func testApp(id, seekerID string, status recruitment.ServerStatus) store.Application {
	return store.Application{
		ID:       id,
		JobID:    "job-1",
		JobTitle: "주방 보조",
		SeekerID: seekerID, SeekerName: "Applicant " + seekerID,
		Status: status, AppliedAt: testNow, UpdatedAt: testNow,
	}
}

func newTestHandler(t *testing.T, lister store.ApplicationLister, ov overlay.Store) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(), store.NewReconciler(lister, ov, log), log)
}

func TestExecuteAllTab(t *testing.T) {
	ov := overlay.NewMemoryStore()
	ctx := context.Background()
	lister := &fakeLister{apps: []store.Application{
		testApp("app-1", "seeker-1", recruitment.ServerApplied),
		testApp("app-2", "seeker-2", recruitment.ServerReviewed),
		testApp("app-3", "seeker-3", recruitment.ServerHired),
	}}
	_, err := overlay.SetSavedApplicant(ctx, ov, "seeker-1", true)
	require.NoError(t, err)

	handler := newTestHandler(t, lister, ov)
	output, err := handler.Execute(ctx, &Input{JobID: "job-1"})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Total)
	assert.Len(t, output.Applications, 3)
	assert.Equal(t, 3, output.Counts["all"])
	assert.Equal(t, 1, output.Counts["new"])
	assert.Equal(t, 1, output.Counts["in_progress"])
	assert.Equal(t, 1, output.Counts["interview_result"])
	assert.Equal(t, 1, output.Counts["saved"])

	first := output.Applications[0]
	assert.Equal(t, "app-1", first.ApplicationID)
	assert.Equal(t, "pending", first.DisplayStatus)
	assert.Equal(t, "new", first.Tab)
	assert.True(t, first.Saved)
}

func TestExecuteInterviewResultFilter(t *testing.T) {
	ov := overlay.NewMemoryStore()
	lister := &fakeLister{apps: []store.Application{
		testApp("app-1", "seeker-1", recruitment.ServerHired),
		testApp("app-2", "seeker-2", recruitment.ServerHold),
		testApp("app-3", "seeker-3", recruitment.ServerRejected),
		testApp("app-4", "seeker-4", recruitment.ServerApplied),
	}}

	handler := newTestHandler(t, lister, ov)
	output, err := handler.Execute(context.Background(), &Input{JobID: "job-1", Tab: "interview_result", Result: "hold"})
	require.NoError(t, err)

	require.Len(t, output.Applications, 1)
	assert.Equal(t, "app-2", output.Applications[0].ApplicationID)
	assert.Equal(t, "hold", output.Applications[0].DisplayStatus)
	assert.Equal(t, 4, output.Total, "total reflects the whole list, not the filtered slice")
}

func TestExecuteOverlayProposalPromotesTab(t *testing.T) {
	ov := overlay.NewMemoryStore()
	ctx := context.Background()
	lister := &fakeLister{apps: []store.Application{
		testApp("app-1", "seeker-1", recruitment.ServerApplied),
	}}
	require.NoError(t, overlay.StoreProposal(ctx, ov, &recruitment.InterviewProposal{
		ApplicationID: "app-1",
		Dates:         []string{"2026-03-05"},
		Time:          "14:00",
		Duration:      30,
		Status:        recruitment.ProposalPending,
	}))

	handler := newTestHandler(t, lister, ov)
	output, err := handler.Execute(ctx, &Input{JobID: "job-1", Tab: "in_progress"})
	require.NoError(t, err)

	require.Len(t, output.Applications, 1)
	assert.Equal(t, "reviewed", output.Applications[0].DisplayStatus)
	assert.True(t, output.Applications[0].HasProposal)
	assert.Equal(t, 0, output.Counts["new"])
	assert.Equal(t, 1, output.Counts["in_progress"])
}

func TestExecuteListFailureRendersEmptyView(t *testing.T) {
	lister := &fakeLister{err: commonerrors.NewQueryExecutionFailedError("list_applications", assert.AnError)}
	handler := newTestHandler(t, lister, overlay.NewMemoryStore())

	output, err := handler.Execute(context.Background(), &Input{JobID: "job-1"})
	require.NoError(t, err)
	assert.Empty(t, output.Applications)
	assert.Equal(t, 0, output.Counts["all"])
}
