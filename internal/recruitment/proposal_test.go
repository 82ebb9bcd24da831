package recruitment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
}

func validProposal() *InterviewProposal {
	return &InterviewProposal{
		ApplicationID: "app-001",
		Dates:         []string{"2026-03-05", "2026-03-06"},
		Time:          "14:00",
		Duration:      30,
		Status:        ProposalPending,
		ProposedAt:    fixedNow(),
	}
}

func TestProposalValidateOK(t *testing.T) {
	assert.NoError(t, validProposal().Validate(fixedNow(), 14))
}

func TestProposalValidateFreeTextTimeAllowed(t *testing.T) {
	p := validProposal()
	p.Time = "점심시간 이후 아무때나"
	assert.NoError(t, p.Validate(fixedNow(), 14))
}

func TestProposalValidateNoDates(t *testing.T) {
	p := validProposal()
	p.Dates = nil
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one interview date")
}

func TestProposalValidateMalformedDate(t *testing.T) {
	p := validProposal()
	p.Dates = []string{"03/05/2026"}
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestProposalValidatePastDate(t *testing.T) {
	p := validProposal()
	p.Dates = []string{"2026-03-01"}
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in the past")
}

func TestProposalValidateTodayAllowed(t *testing.T) {
	p := validProposal()
	p.Dates = []string{"2026-03-02"}
	assert.NoError(t, p.Validate(fixedNow(), 14))
}

func TestProposalValidateWindowEdge(t *testing.T) {
	p := validProposal()
	p.Dates = []string{"2026-03-16"}
	assert.NoError(t, p.Validate(fixedNow(), 14), "window end itself is selectable")

	p.Dates = []string{"2026-03-17"}
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selection window")
}

func TestProposalValidateOrderDatesBeforeTime(t *testing.T) {
	p := validProposal()
	p.Dates = nil
	p.Time = ""
	p.Duration = 0
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interview date", "dates are reported before time and duration")
}

func TestProposalValidateOrderTimeBeforeDuration(t *testing.T) {
	p := validProposal()
	p.Time = ""
	p.Duration = 0
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interview time")
}

func TestProposalValidateDurationFloor(t *testing.T) {
	p := validProposal()
	p.Duration = 5
	err := p.Validate(fixedNow(), 14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 10 minutes")

	p.Duration = 10
	assert.NoError(t, p.Validate(fixedNow(), 14))

	p.Duration = 45
	assert.NoError(t, p.Validate(fixedNow(), 14), "non-preset durations above the floor are valid")
}

func TestGridTimes(t *testing.T) {
	slots := GridTimes()
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "20:00", slots[len(slots)-1])
	assert.Len(t, slots, 23)
	assert.True(t, IsGridTime("14:30"))
	assert.False(t, IsGridTime("20:30"))
	assert.False(t, IsGridTime("08:30"))
	assert.False(t, IsGridTime("오후 2시"))
}

func TestDurationPresets(t *testing.T) {
	presets := DurationPresets()
	assert.Equal(t, 10, presets[0])
	assert.Equal(t, 120, presets[len(presets)-1])
	assert.Len(t, presets, 12)
}

func TestProposalRespond(t *testing.T) {
	p := validProposal()
	at := fixedNow().Add(time.Hour)
	require.NoError(t, p.Respond(ProposalAccepted, at))
	assert.Equal(t, ProposalAccepted, p.Status)
	assert.True(t, p.IsRead, "answering a proposal marks it read")
	require.NotNil(t, p.RespondedAt)
	assert.Equal(t, at, *p.RespondedAt)
}

func TestProposalRespondHold(t *testing.T) {
	p := validProposal()
	require.NoError(t, p.Respond(ProposalHold, fixedNow()))
	assert.Equal(t, ProposalHold, p.Status)
	assert.True(t, p.IsRead)
}

func TestProposalRespondTwiceRejected(t *testing.T) {
	p := validProposal()
	require.NoError(t, p.Respond(ProposalRejected, fixedNow()))
	err := p.Respond(ProposalAccepted, fixedNow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already answered")
	assert.Equal(t, ProposalRejected, p.Status, "second answer must not overwrite the first")
}

func TestProposalRespondInvalidStatus(t *testing.T) {
	p := validProposal()
	err := p.Respond(ProposalPending, fixedNow())
	require.Error(t, err)
	assert.Equal(t, ProposalPending, p.Status)
}
