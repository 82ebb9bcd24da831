// internal/recruitment/proposal.go
package recruitment

import (
	"fmt"
	"time"
)

// ProposalStatus tracks the seeker's answer to an interview proposal.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalHold     ProposalStatus = "hold"
)

const (
	// DateLayout is the wire format for proposal dates.
	DateLayout = "2006-01-02"

	// MinInterviewDuration is the floor for interview length in minutes.
	MinInterviewDuration = 10

	// MaxPresetDuration is the top of the duration preset ladder.
	MaxPresetDuration = 120
)

// InterviewProposal is an employer's interview offer for one application.
// Dates are calendar days the seeker may pick from; Time is either a grid slot
// between 09:00 and 20:00 on the half hour or free text typed by the employer.
type InterviewProposal struct {
	ApplicationID string         `json:"applicationId"`
	Dates         []string       `json:"dates"`
	Time          string         `json:"time"`
	Duration      int            `json:"duration"`
	Message       string         `json:"message,omitempty"`
	Status        ProposalStatus `json:"status"`
	IsRead        bool           `json:"isRead"`
	ProposedAt    time.Time      `json:"proposedAt"`
	RespondedAt   *time.Time     `json:"respondedAt,omitempty"`
}

// GridTimes returns the selectable half-hour slots from 09:00 through 20:00.
func GridTimes() []string {
	slots := make([]string, 0, 23)
	for h := 9; h <= 20; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < 20 {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}

// IsGridTime reports whether s is one of the selectable grid slots. Free text
// is also accepted as a time, so a false return is not a validation failure.
func IsGridTime(s string) bool {
	for _, slot := range GridTimes() {
		if s == slot {
			return true
		}
	}
	return false
}

// DurationPresets returns the preset durations in minutes.
func DurationPresets() []int {
	presets := make([]int, 0, 12)
	for d := MinInterviewDuration; d <= MaxPresetDuration; d += 10 {
		presets = append(presets, d)
	}
	return presets
}

// Validate checks the proposal against the selection window ending windowDays
// after now. Checks run in fixed order so the first failure reported is always
// the dates, then the time, then the duration.
func (p *InterviewProposal) Validate(now time.Time, windowDays int) error {
	if len(p.Dates) == 0 {
		return fmt.Errorf("at least one interview date must be selected")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := today.AddDate(0, 0, windowDays)
	for _, d := range p.Dates {
		day, err := time.ParseInLocation(DateLayout, d, now.Location())
		if err != nil {
			return fmt.Errorf("invalid interview date %q: expected YYYY-MM-DD", d)
		}
		if day.Before(today) {
			return fmt.Errorf("interview date %s is in the past", d)
		}
		if day.After(windowEnd) {
			return fmt.Errorf("interview date %s is beyond the %d-day selection window", d, windowDays)
		}
	}
	if p.Time == "" {
		return fmt.Errorf("interview time must be set")
	}
	if p.Duration < MinInterviewDuration {
		return fmt.Errorf("interview duration must be at least %d minutes", MinInterviewDuration)
	}
	return nil
}

// Respond records the seeker's answer and marks the proposal read. Responding
// twice is rejected so a duplicate job delivery cannot flip an answer.
func (p *InterviewProposal) Respond(status ProposalStatus, at time.Time) error {
	switch status {
	case ProposalAccepted, ProposalRejected, ProposalHold:
	default:
		return fmt.Errorf("proposal response must be accepted, rejected or hold, got %q", status)
	}
	if p.Status != ProposalPending {
		return fmt.Errorf("proposal already answered as %s", p.Status)
	}
	p.Status = status
	p.IsRead = true
	p.RespondedAt = &at
	return nil
}
