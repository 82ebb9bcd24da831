// internal/workers/recruitment/update-first-work-date/models.go
package updatefirstworkdate

type Input struct {
	ApplicationID       string `json:"applicationId"`
	FirstWorkDate       string `json:"firstWorkDate,omitempty"`
	FirstWorkTime       string `json:"firstWorkTime,omitempty"`
	CoordinationMessage string `json:"coordinationMessage,omitempty"`
	Confirm             bool   `json:"confirm,omitempty"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	FirstWorkDate string `json:"firstWorkDate"`
	FirstWorkTime string `json:"firstWorkTime,omitempty"`
	Confirmed     bool   `json:"confirmed"`
	PersistedTo   string `json:"persistedTo"` // overlay | none
}
