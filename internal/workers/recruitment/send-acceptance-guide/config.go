// internal/workers/recruitment/send-acceptance-guide/config.go
package sendacceptanceguide

import (
	"time"

	"workbridge-workers/internal/overlay"
)

type Config struct {
	Timeout          time.Duration
	DefaultDocuments []string
	OverlayPolicy    overlay.FallbackPolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		DefaultDocuments: []string{"통장 사본", "신분증 사본", "외국인등록증 사본"},
		OverlayPolicy:    overlay.FailClosed,
	}
}
