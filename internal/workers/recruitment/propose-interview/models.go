// internal/workers/recruitment/propose-interview/models.go
package proposeinterview

type Input struct {
	ApplicationID string   `json:"applicationId"`
	Dates         []string `json:"dates"`
	Time          string   `json:"time"`
	Duration      int      `json:"duration"`
	Message       string   `json:"message,omitempty"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	DisplayStatus string `json:"displayStatus"`
	ProposedAt    string `json:"proposedAt"` // ISO 8601
	PersistedTo   string `json:"persistedTo"`
}
