// internal/workers/recruitment/respond-interview/config.go
package respondinterview

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
