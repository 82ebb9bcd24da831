package updatefirstworkdate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "workbridge-workers/internal/common/errors"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/overlay"
	"workbridge-workers/internal/recruitment"
)

var testNow = time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC)

type failingWrites struct {
	*overlay.MemoryStore
}

func (f *failingWrites) Set(_ context.Context, _, _ string) error {
	return errors.New("connection refused")
}

func newTestHandler(t *testing.T, ov overlay.Store) *Handler {
	t.Helper()
	handler := NewHandler(LoadConfig(), ov, logger.NewTestLogger(t))
	handler.now = func() time.Time { return testNow }
	return handler
}

func seedGuide(t *testing.T, ov overlay.Store) {
	t.Helper()
	require.NoError(t, overlay.StoreGuide(context.Background(), ov, &recruitment.AcceptanceGuide{
		ApplicationID: "app-001",
		Documents:     []string{"통장 사본"},
		FirstWorkDate: "2026-03-09",
		SentAt:        testNow.Add(-48 * time.Hour),
	}))
}

func TestExecuteUpdateDate(t *testing.T) {
	ov := overlay.NewMemoryStore()
	seedGuide(t, ov)
	handler := newTestHandler(t, ov)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicationID:       "app-001",
		FirstWorkDate:       "2026-03-16",
		FirstWorkTime:       "10:00",
		CoordinationMessage: "첫 출근일이 변경되었습니다",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-16", output.FirstWorkDate)
	assert.Equal(t, "10:00", output.FirstWorkTime)
	assert.False(t, output.Confirmed)
	assert.Equal(t, "overlay", output.PersistedTo)

	guide, ok, err := overlay.LoadGuide(context.Background(), ov, "app-001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-03-16", guide.FirstWorkDate)
	assert.Equal(t, "첫 출근일이 변경되었습니다", guide.CoordinationMessage)
}

func TestExecuteConfirm(t *testing.T) {
	ov := overlay.NewMemoryStore()
	seedGuide(t, ov)
	handler := newTestHandler(t, ov)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Confirm: true})
	require.NoError(t, err)
	assert.True(t, output.Confirmed)

	confirmed, err := overlay.IsFirstWorkDateConfirmed(context.Background(), ov, "app-001")
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestExecuteConfirmTwiceRefused(t *testing.T) {
	ov := overlay.NewMemoryStore()
	seedGuide(t, ov)
	handler := newTestHandler(t, ov)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Confirm: true})
	require.NoError(t, err)

	_, err = handler.Execute(context.Background(), &Input{ApplicationID: "app-001", Confirm: true})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeGuideValidationFailed, stdErr.Code)
}

func TestExecuteGuideMissing(t *testing.T) {
	handler := newTestHandler(t, overlay.NewMemoryStore())

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-404", FirstWorkDate: "2026-03-16"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeGuideNotFound, stdErr.Code)
}

func TestExecuteInvalidDate(t *testing.T) {
	ov := overlay.NewMemoryStore()
	seedGuide(t, ov)
	handler := newTestHandler(t, ov)

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", FirstWorkDate: "next monday"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeGuideValidationFailed, stdErr.Code)
}

func TestExecuteFailOpenOnWriteFailure(t *testing.T) {
	inner := overlay.NewMemoryStore()
	seedGuide(t, inner)
	ov := &failingWrites{MemoryStore: inner}
	handler := newTestHandler(t, ov)

	output, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", FirstWorkDate: "2026-03-16"})
	require.NoError(t, err, "fail-open reports success despite the lost write")
	assert.Equal(t, "none", output.PersistedTo)

	guide, _, err := overlay.LoadGuide(context.Background(), inner, "app-001")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", guide.FirstWorkDate, "stored guide is unchanged")
}

func TestExecuteFailClosedOnWriteFailure(t *testing.T) {
	inner := overlay.NewMemoryStore()
	seedGuide(t, inner)
	ov := &failingWrites{MemoryStore: inner}
	handler := newTestHandler(t, ov)
	handler.config.OverlayPolicy = overlay.FailClosed

	_, err := handler.Execute(context.Background(), &Input{ApplicationID: "app-001", FirstWorkDate: "2026-03-16"})
	var stdErr *commonerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, commonerrors.ErrCodeOverlayWriteFailed, stdErr.Code)
}
