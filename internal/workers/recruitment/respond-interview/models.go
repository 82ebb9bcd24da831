// internal/workers/recruitment/respond-interview/models.go
package respondinterview

type Input struct {
	ApplicationID string `json:"applicationId"`
	Response      string `json:"response"` // accepted | rejected | hold
}

type Output struct {
	ApplicationID  string `json:"applicationId"`
	ProposalStatus string `json:"proposalStatus"`
	RespondedAt    string `json:"respondedAt"` // ISO 8601
	PersistedTo    string `json:"persistedTo"`
}
