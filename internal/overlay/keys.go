// internal/overlay/keys.go
package overlay

import "fmt"

// EventsChannel is the pub/sub channel every overlay write is announced on.
const EventsChannel = "overlay:events"

// SavedApplicantsKey holds the employer's saved-applicant set as a JSON array
// of seeker IDs.
const SavedApplicantsKey = "saved_applicants"

func InterviewProposalKey(applicationID string) string {
	return fmt.Sprintf("interview_proposal_%s", applicationID)
}

func InterviewResponseKey(applicationID string) string {
	return fmt.Sprintf("interview_response_%s", applicationID)
}

func AcceptanceGuideKey(applicationID string) string {
	return fmt.Sprintf("acceptance_guide_%s", applicationID)
}

func FirstWorkDateConfirmedKey(applicationID string) string {
	return fmt.Sprintf("first_work_date_confirmed_%s", applicationID)
}
