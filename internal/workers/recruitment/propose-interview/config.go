// internal/workers/recruitment/propose-interview/config.go
package proposeinterview

import (
	"time"

	"workbridge-workers/internal/overlay"
)

type Config struct {
	Timeout       time.Duration
	WindowDays    int
	OverlayPolicy overlay.FallbackPolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		WindowDays:    14,
		OverlayPolicy: overlay.FailClosed,
	}
}
