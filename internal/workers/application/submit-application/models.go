// internal/workers/application/submit-application/models.go
package submitapplication

type Input struct {
	JobID    string `json:"jobId"`
	SeekerID string `json:"seekerId"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	AppliedAt     string `json:"appliedAt"` // ISO 8601
}
