// internal/workers/recruitment/reconcile-applications/config.go
package reconcileapplications

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
