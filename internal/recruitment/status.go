// internal/recruitment/status.go
package recruitment

// Status is the client-facing application status vocabulary.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusHold     Status = "hold"
)

// ServerStatus is the persisted vocabulary. It matches Status 1:1 except
// pending⇄applied and accepted⇄hired.
type ServerStatus string

const (
	ServerApplied  ServerStatus = "applied"
	ServerReviewed ServerStatus = "reviewed"
	ServerHired    ServerStatus = "hired"
	ServerRejected ServerStatus = "rejected"
	ServerHold     ServerStatus = "hold"
)

// ToServerStatus maps a client status to the persisted vocabulary.
func ToServerStatus(s Status) ServerStatus {
	switch s {
	case StatusPending:
		return ServerApplied
	case StatusAccepted:
		return ServerHired
	case StatusReviewed:
		return ServerReviewed
	case StatusRejected:
		return ServerRejected
	case StatusHold:
		return ServerHold
	}
	return ServerApplied
}

// FromServerStatus maps a persisted status back to the client vocabulary.
// Unknown values default to pending rather than failing the list render.
func FromServerStatus(s ServerStatus) Status {
	switch s {
	case ServerApplied:
		return StatusPending
	case ServerReviewed:
		return StatusReviewed
	case ServerHired:
		return StatusAccepted
	case ServerRejected:
		return StatusRejected
	case ServerHold:
		return StatusHold
	}
	return StatusPending
}

// legalTransitions is the employer-driven status graph. Accepted and rejected
// are terminal; the first-work-date confirmation is a flag on the guide, not
// an edge here.
var legalTransitions = map[Status][]Status{
	StatusPending:  {StatusReviewed},
	StatusReviewed: {StatusAccepted, StatusRejected, StatusHold},
	StatusHold:     {StatusAccepted, StatusRejected},
}

// CanTransition reports whether from→to is a legal edge.
func CanTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeriveDisplayStatus computes the status shown in list views from the
// persisted status plus the presence of an overlay interview proposal. A
// proposal persisted only to the overlay means the employer already moved the
// application forward even though the server still says applied.
func DeriveDisplayStatus(server ServerStatus, hasLocalProposal bool) Status {
	switch server {
	case ServerApplied:
		if hasLocalProposal {
			return StatusReviewed
		}
		return StatusPending
	case ServerHired:
		return StatusAccepted
	case ServerRejected:
		return StatusRejected
	case ServerHold:
		return StatusHold
	case ServerReviewed:
		return StatusReviewed
	}
	return StatusPending
}

// FilterTab identifies the list buckets shown to the employer.
type FilterTab string

const (
	TabAll             FilterTab = "all"
	TabNew             FilterTab = "new"
	TabInProgress      FilterTab = "in_progress"
	TabInterviewResult FilterTab = "interview_result"
	TabSaved           FilterTab = "saved"
)

// InterviewResult identifies the sub-filter under interview_result.
type InterviewResult string

const (
	ResultAccepted InterviewResult = "accepted"
	ResultHold     InterviewResult = "hold"
	ResultRejected InterviewResult = "rejected"
)

// TabFor buckets a display status into its filter tab. Saved is an overlay
// flag, not a status, and is handled by the caller.
func TabFor(display Status) FilterTab {
	switch display {
	case StatusPending:
		return TabNew
	case StatusReviewed:
		return TabInProgress
	case StatusAccepted, StatusHold, StatusRejected:
		return TabInterviewResult
	}
	return TabNew
}

// ResultRoute is the client route for the interview_result tab filtered to
// one result, e.g. "interview_result?result=accepted".
func ResultRoute(result InterviewResult) string {
	return "interview_result?result=" + string(result)
}

// ResultFor returns the interview_result sub-filter for a display status, and
// whether the status belongs under that tab at all.
func ResultFor(display Status) (InterviewResult, bool) {
	switch display {
	case StatusAccepted:
		return ResultAccepted, true
	case StatusHold:
		return ResultHold, true
	case StatusRejected:
		return ResultRejected, true
	}
	return "", false
}
