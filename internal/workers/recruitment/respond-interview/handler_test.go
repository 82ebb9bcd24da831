package respondinterview

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
)

var testNow = time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *overlay.MemoryStore) {
	t.Helper()
	ov := overlay.NewMemoryStore()
	handler := NewHandler(LoadConfig(), ov, logger.NewTestLogger(t))
	handler.now = func() time.Time { return testNow }
	return handler, ov
}

func seedProposal(t *testing.T, ov *overlay.MemoryStore) {
	t.Helper()
	require.NoError(t, overlay.StoreProposal(context.Background(), ov, &recruitment.InterviewProposal{
		ApplicationID: "app-001",
		Dates:         []string{"2026-03-05"},
		Time:          "14:00",
		Duration:      30,
		Status:        recruitment.ProposalPending,
		ProposedAt:    testNow.Add(-24 * time.Hour),
	}))
}

func TestExecuteAccept(t *testing.T) {
	handler, ov := newTestHandler(t)
	seedProposal(t, ov)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", output.ProposalStatus)
	assert.Equal(t, "overlay", output.PersistedTo)

	proposal, ok, err := overlay.LoadProposal(context.Background(), ov, "app-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, recruitment.ProposalAccepted, proposal.Status)
	assert.True(t, proposal.IsRead)
	require.NotNil(t, proposal.RespondedAt)

	resp, ok, err := overlay.LoadResponse(context.Background(), ov, "app-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, recruitment.ProposalAccepted, resp.Status)
	assert.Equal(t, testNow, resp.RespondedAt)
}

func TestExecuteReject(t *testing.T) {
	handler, ov := newTestHandler(t)
	seedProposal(t, ov)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", output.ProposalStatus)
}

func TestExecuteHold(t *testing.T) {
	handler, ov := newTestHandler(t)
	seedProposal(t, ov)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "hold"})
	require.NoError(t, err)
	assert.Equal(t, "hold", output.ProposalStatus)

	resp, ok, err := overlay.LoadResponse(context.Background(), ov, "app-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, recruitment.ProposalHold, resp.Status)
}

func TestExecuteProposalMissing(t *testing.T) {
	handler, _ := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-404", Response: "accepted"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeProposalNotFound, stdErr.Code)
}

func TestExecuteDoubleResponse(t *testing.T) {
	handler, ov := newTestHandler(t)
	seedProposal(t, ov)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "accepted"})
	require.NoError(t, err)

	_, err = handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "rejected"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeProposalValidationFailed, stdErr.Code)

	proposal, _, err := overlay.LoadProposal(context.Background(), ov, "app-001")
	require.NoError(t, err)
	assert.Equal(t, recruitment.ProposalAccepted, proposal.Status, "the first answer survives")
}

func TestExecuteInvalidResponseValue(t *testing.T) {
	handler, ov := newTestHandler(t)
	seedProposal(t, ov)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Response: "maybe"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeProposalValidationFailed, stdErr.Code)

	_, ok, err := overlay.LoadResponse(context.Background(), ov, "app-001")
	require.NoError(t, err)
	assert.False(t, ok, "no response document is written for an invalid answer")
}
