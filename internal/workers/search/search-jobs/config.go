// internal/workers/search/search-jobs/config.go
package searchjobs

import "time"

type Config struct {
	Timeout        time.Duration
	JobIndex       string
	DefaultPerPage int
	MaxPerPage     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		JobIndex:       "jobs",
		DefaultPerPage: 20,
		MaxPerPage:     100,
	}
}
