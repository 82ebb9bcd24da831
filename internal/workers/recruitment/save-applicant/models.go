// internal/workers/recruitment/save-applicant/models.go
package saveapplicant

type Input struct {
	SeekerID string `json:"seekerId"`
	Saved    bool   `json:"saved"`
}

type Output struct {
	SeekerID  string `json:"seekerId"`
	Saved     bool   `json:"saved"`
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}
