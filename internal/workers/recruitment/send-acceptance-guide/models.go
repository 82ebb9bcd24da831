// internal/workers/recruitment/send-acceptance-guide/models.go
package sendacceptanceguide

type Input struct {
	ApplicationID       string   `json:"applicationId"`
	Documents           []string `json:"documents,omitempty"`
	WorkAttire          string   `json:"workAttire,omitempty"`
	WorkNotes           string   `json:"workNotes,omitempty"`
	FirstWorkDate       string   `json:"firstWorkDate,omitempty"`
	FirstWorkTime       string   `json:"firstWorkTime,omitempty"`
	CoordinationMessage string   `json:"coordinationMessage,omitempty"`
}

type Output struct {
	ApplicationID string   `json:"applicationId"`
	DisplayStatus string   `json:"displayStatus"`
	Route         string   `json:"route"`
	IsHired       bool     `json:"isHired"`
	Documents     []string `json:"documents"`
	SentAt        string   `json:"sentAt"` // ISO 8601
}
