// internal/workers/recruitment/update-first-work-date/config.go
package updatefirstworkdate

import (
	"time"

	"workbridge-workers/internal/overlay"
)

// OverlayPolicy defaults to fail-open: the date is coordination detail on top
// of an already accepted application, so losing the overlay write is preferable
// to failing the employer's edit.
type Config struct {
	Timeout       time.Duration
	OverlayPolicy overlay.FallbackPolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		OverlayPolicy: overlay.FailOpen,
	}
}
