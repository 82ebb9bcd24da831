// internal/overlay/documents.go
package overlay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workbridge-workers/internal/recruitment"
)

// Response is the seeker's answer to an interview proposal, stored under
// interview_response_<applicationID> until the server of record learns about
// proposal responses.
type Response struct {
	ApplicationID string                     `json:"applicationId"`
	Status        recruitment.ProposalStatus `json:"status"`
	RespondedAt   time.Time                  `json:"respondedAt"`
}

func StoreProposal(ctx context.Context, s Store, p *recruitment.InterviewProposal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode proposal: %w", err)
	}
	return s.Set(ctx, InterviewProposalKey(p.ApplicationID), string(payload))
}

func LoadProposal(ctx context.Context, s Store, applicationID string) (*recruitment.InterviewProposal, bool, error) {
	raw, ok, err := s.Get(ctx, InterviewProposalKey(applicationID))
	if err != nil || !ok {
		return nil, false, err
	}
	var p recruitment.InterviewProposal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false, fmt.Errorf("decode proposal for %s: %w", applicationID, err)
	}
	return &p, true, nil
}

func StoreResponse(ctx context.Context, s Store, r *Response) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return s.Set(ctx, InterviewResponseKey(r.ApplicationID), string(payload))
}

func LoadResponse(ctx context.Context, s Store, applicationID string) (*Response, bool, error) {
	raw, ok, err := s.Get(ctx, InterviewResponseKey(applicationID))
	if err != nil || !ok {
		return nil, false, err
	}
	var r Response
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, false, fmt.Errorf("decode response for %s: %w", applicationID, err)
	}
	return &r, true, nil
}

func StoreGuide(ctx context.Context, s Store, g *recruitment.AcceptanceGuide) error {
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode guide: %w", err)
	}
	return s.Set(ctx, AcceptanceGuideKey(g.ApplicationID), string(payload))
}

func LoadGuide(ctx context.Context, s Store, applicationID string) (*recruitment.AcceptanceGuide, bool, error) {
	raw, ok, err := s.Get(ctx, AcceptanceGuideKey(applicationID))
	if err != nil || !ok {
		return nil, false, err
	}
	var g recruitment.AcceptanceGuide
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, false, fmt.Errorf("decode guide for %s: %w", applicationID, err)
	}
	return &g, true, nil
}

func MarkFirstWorkDateConfirmed(ctx context.Context, s Store, applicationID string) error {
	return s.Set(ctx, FirstWorkDateConfirmedKey(applicationID), "true")
}

func IsFirstWorkDateConfirmed(ctx context.Context, s Store, applicationID string) (bool, error) {
	raw, ok, err := s.Get(ctx, FirstWorkDateConfirmedKey(applicationID))
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

// LoadSavedApplicants returns the saved-applicant set. A missing key is an
// empty set.
func LoadSavedApplicants(ctx context.Context, s Store) (map[string]bool, error) {
	raw, ok, err := s.Get(ctx, SavedApplicantsKey)
	if err != nil {
		return nil, err
	}
	saved := make(map[string]bool)
	if !ok {
		return saved, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode saved applicants: %w", err)
	}
	for _, id := range ids {
		saved[id] = true
	}
	return saved, nil
}

// SetSavedApplicant adds or removes one seeker from the saved set and writes
// the whole set back. Returns the resulting saved state for the seeker.
func SetSavedApplicant(ctx context.Context, s Store, seekerID string, saved bool) (bool, error) {
	set, err := LoadSavedApplicants(ctx, s)
	if err != nil {
		return false, err
	}
	if saved {
		set[seekerID] = true
	} else {
		delete(set, seekerID)
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return false, fmt.Errorf("encode saved applicants: %w", err)
	}
	if err := s.Set(ctx, SavedApplicantsKey, string(payload)); err != nil {
		return false, err
	}
	return saved, nil
}

// DeleteApplicationEntries removes every overlay key tied to one application.
// Used when an application is rejected and its workflow state is discarded.
func DeleteApplicationEntries(ctx context.Context, s Store, applicationID string) error {
	return s.Delete(ctx,
		InterviewProposalKey(applicationID),
		InterviewResponseKey(applicationID),
		AcceptanceGuideKey(applicationID),
		FirstWorkDateConfirmedKey(applicationID),
	)
}
