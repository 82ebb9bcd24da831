package saveapplicant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/overlay"
)

func newTestHandler(t *testing.T) (*Handler, *overlay.MemoryStore) {
	t.Helper()
	ov := overlay.NewMemoryStore()
	handler := NewHandler(LoadConfig(), ov, logger.NewTestLogger(t))
	handler.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return handler, ov
}

func TestExecuteSaveAndUnsave(t *testing.T) {
	handler, ov := newTestHandler(t)
	ctx := context.Background()

	output, err := handler.Execute(ctx, &Input{SeekerID: "seeker-1", Saved: true})
	require.NoError(t, err)
	assert.True(t, output.Saved)

	set, err := overlay.LoadSavedApplicants(ctx, ov)
	require.NoError(t, err)
	assert.True(t, set["seeker-1"])

	output, err = handler.Execute(ctx, &Input{SeekerID: "seeker-1", Saved: false})
	require.NoError(t, err)
	assert.False(t, output.Saved)

	set, err = overlay.LoadSavedApplicants(ctx, ov)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestExecuteSaveIsIdempotent(t *testing.T) {
	handler, ov := newTestHandler(t)
	ctx := context.Background()

	_, err := handler.Execute(ctx, &Input{SeekerID: "seeker-1", Saved: true})
	require.NoError(t, err)
	_, err = handler.Execute(ctx, &Input{SeekerID: "seeker-1", Saved: true})
	require.NoError(t, err)

	set, err := overlay.LoadSavedApplicants(ctx, ov)
	require.NoError(t, err)
	assert.Len(t, set, 1)
}

func TestExecuteMissingSeekerID(t *testing.T) {
	handler, _ := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{Saved: true})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeApplicationInvalid, stdErr.Code)
}
