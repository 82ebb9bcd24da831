// internal/workers/recruitment/reject-application/models.go
package rejectapplication

type Input struct {
	ApplicationID string `json:"applicationId"`
	Reason        string `json:"reason,omitempty"`
}

type Output struct {
	ApplicationID  string `json:"applicationId"`
	DisplayStatus  string `json:"displayStatus"`
	Route          string `json:"route"`
	PreviousStatus string `json:"previousStatus"`
	RejectedAt     string `json:"rejectedAt"` // ISO 8601
}
