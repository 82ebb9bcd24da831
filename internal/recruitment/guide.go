// internal/recruitment/guide.go
package recruitment

import (
	"fmt"
	"time"
)

// AcceptanceGuide is the onboarding packet sent when an application is
// accepted. Documents is the only hard requirement; everything else is
// coordination detail the employer may fill in later.
type AcceptanceGuide struct {
	ApplicationID       string     `json:"applicationId"`
	Documents           []string   `json:"documents"`
	WorkAttire          string     `json:"workAttire,omitempty"`
	WorkNotes           string     `json:"workNotes,omitempty"`
	FirstWorkDate       string     `json:"firstWorkDate,omitempty"`
	FirstWorkTime       string     `json:"firstWorkTime,omitempty"`
	CoordinationMessage string     `json:"coordinationMessage,omitempty"`
	IsHired             bool       `json:"isHired"`
	SentAt              time.Time  `json:"sentAt"`
	DateConfirmedAt     *time.Time `json:"dateConfirmedAt,omitempty"`
}

// Validate enforces the guide preconditions. A first work time without a date
// is meaningless, so the pair is checked together.
func (g *AcceptanceGuide) Validate() error {
	if len(g.Documents) == 0 {
		return fmt.Errorf("acceptance guide must list at least one required document")
	}
	for i, doc := range g.Documents {
		if doc == "" {
			return fmt.Errorf("document %d is empty", i)
		}
	}
	if g.FirstWorkDate != "" {
		if _, err := time.Parse(DateLayout, g.FirstWorkDate); err != nil {
			return fmt.Errorf("invalid first work date %q: expected YYYY-MM-DD", g.FirstWorkDate)
		}
	}
	if g.FirstWorkTime != "" && g.FirstWorkDate == "" {
		return fmt.Errorf("first work time requires a first work date")
	}
	return nil
}

// ConfirmFirstWorkDate marks the scheduled date as agreed by both sides. The
// guide must carry a date before it can be confirmed, and confirmation is
// one-way.
func (g *AcceptanceGuide) ConfirmFirstWorkDate(at time.Time) error {
	if g.FirstWorkDate == "" {
		return fmt.Errorf("cannot confirm first work date: none has been proposed")
	}
	if g.DateConfirmedAt != nil {
		return fmt.Errorf("first work date already confirmed")
	}
	g.DateConfirmedAt = &at
	return nil
}
