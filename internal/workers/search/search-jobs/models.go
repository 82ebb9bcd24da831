// internal/workers/search/search-jobs/models.go
package searchjobs

type Input struct {
	QueryType  string `json:"queryType"` // job_search | similar_jobs
	Keywords   string `json:"keywords,omitempty"`
	RegionCode string `json:"regionCode,omitempty"`
	VisaType   string `json:"visaType,omitempty"`
	Industry   string `json:"industry,omitempty"`
	JobID      string `json:"jobId,omitempty"` // similar_jobs only
	Page       int    `json:"page,omitempty"`
	PerPage    int    `json:"perPage,omitempty"`
}

type Output struct {
	Jobs      []map[string]interface{} `json:"jobs"`
	TotalHits int64                    `json:"totalHits"`
	Page      int                      `json:"page"`
	PerPage   int                      `json:"perPage"`
	Took      int64                    `json:"took"` // milliseconds
}
