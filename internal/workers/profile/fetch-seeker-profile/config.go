// internal/workers/profile/fetch-seeker-profile/config.go
package fetchseekerprofile

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 8 * time.Second,
	}
}
