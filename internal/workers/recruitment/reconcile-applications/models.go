// internal/workers/recruitment/reconcile-applications/models.go
package reconcileapplications

type Input struct {
	JobID  string `json:"jobId"`
	Tab    string `json:"tab,omitempty"`    // all | new | in_progress | interview_result | saved
	Result string `json:"result,omitempty"` // accepted | hold | rejected
}

type ApplicationSummary struct {
	ApplicationID          string `json:"applicationId"`
	SeekerID               string `json:"seekerId"`
	SeekerName             string `json:"seekerName"`
	Nationality            string `json:"nationality"`
	VisaType               string `json:"visaType"`
	KoreanLevel            string `json:"koreanLevel"`
	DisplayStatus          string `json:"displayStatus"`
	Tab                    string `json:"tab"`
	Saved                  bool   `json:"saved"`
	HasProposal            bool   `json:"hasProposal"`
	ProposalStatus         string `json:"proposalStatus,omitempty"`
	ProposalUnread         bool   `json:"proposalUnread,omitempty"`
	GuideSent              bool   `json:"guideSent"`
	FirstWorkDateConfirmed bool   `json:"firstWorkDateConfirmed"`
	AppliedAt              string `json:"appliedAt"` // ISO 8601
}

type Output struct {
	JobID        string               `json:"jobId"`
	Applications []ApplicationSummary `json:"applications"`
	Counts       map[string]int       `json:"counts"`
	Total        int                  `json:"total"`
}
