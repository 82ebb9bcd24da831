// internal/workers/recruitment/hold-application/models.go
package holdapplication

type Input struct {
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	ApplicationID  string `json:"applicationId"`
	DisplayStatus  string `json:"displayStatus"`
	PreviousStatus string `json:"previousStatus"`
	HeldAt         string `json:"heldAt"` // ISO 8601
}
