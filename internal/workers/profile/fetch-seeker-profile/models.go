// internal/workers/profile/fetch-seeker-profile/models.go
package fetchseekerprofile

type Input struct {
	SeekerID string `json:"seekerId"`
}

type Output struct {
	SeekerID     string   `json:"seekerId"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	Nationality  string   `json:"nationality,omitempty"`
	VisaType     string   `json:"visaType,omitempty"`
	KoreanLevel  string   `json:"koreanLevel,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Introduction string   `json:"introduction,omitempty"`
	RegionCode   string   `json:"regionCode,omitempty"`
	FetchedAt    string   `json:"fetchedAt"` // ISO 8601
}
