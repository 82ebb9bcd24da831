// internal/common/profileapi/client.go
package profileapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"workbridge-workers/internal/common/config"
	commonhttp "workbridge-workers/internal/common/http"
)

// ErrNotFound marks a 404 from the profile service. Callers distinguish a
// missing seeker (redirect away, no retry) from transient service failures.
var ErrNotFound = errors.New("profile not found")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *commonhttp.Client
}

// SeekerProfile is the subset of the profile service response the recruitment
// workflow depends on.
type SeekerProfile struct {
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
}

func NewClient(cfg config.ProfileAPIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
	}
}

// GetSeeker fetches one seeker profile by id. Returns ErrNotFound on 404.
func (c *Client) GetSeeker(ctx context.Context, seekerID string) (*SeekerProfile, error) {
	url := fmt.Sprintf("%s/v1/seekers/%s", c.baseURL, seekerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: seekerId %s", ErrNotFound, seekerID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed (status %d): %s", resp.StatusCode, string(body))
	}

	var profile SeekerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}
