// internal/workers/recruitment/save-applicant/config.go
package saveapplicant

import (
	"time"

	"workbridge-workers/internal/overlay"
)

type Config struct {
	Timeout       time.Duration
	OverlayPolicy overlay.FallbackPolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		OverlayPolicy: overlay.FailClosed,
	}
}
