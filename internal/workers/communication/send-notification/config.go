// internal/workers/communication/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	EmailEnabled     bool
	SMSEnabled       bool
	FromEmail        string
	AWSRegion        string
	TemplateRegistry string
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "no-reply@workbridge.kr",
		AWSRegion:    "ap-northeast-2",
		Timeout:      30 * time.Second,
	}
}
