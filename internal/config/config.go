// Package config loads typed configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the service. The rate-limit and message
// bounds are deliberately deployment-configurable; observed deployments
// disagree on the exact values, so nothing here is hard-coded.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	SiteOrigin string `mapstructure:"SITE_ORIGIN"`
	WebDir     string `mapstructure:"WEB_DIR"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	TrustedProxyCount int `mapstructure:"TRUSTED_PROXY_COUNT"`

	RateLimitMaxRequests   int           `mapstructure:"RATE_LIMIT_MAX_REQUESTS"`
	RateLimitWindow        time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitSweepInterval time.Duration `mapstructure:"RATE_LIMIT_SWEEP_INTERVAL"`
	RateLimitRedisAddr     string        `mapstructure:"RATE_LIMIT_REDIS_ADDR"`

	MessageMinLength int `mapstructure:"MESSAGE_MIN_LENGTH"`
	MessageMaxLength int `mapstructure:"MESSAGE_MAX_LENGTH"`

	// ContactDelivery forces a strategy: "smtp" or "forms". Empty selects
	// automatically from which credentials are present.
	ContactDelivery string `mapstructure:"CONTACT_DELIVERY"`

	EmailUser        string `mapstructure:"EMAIL_USER"`
	EmailPass        string `mapstructure:"EMAIL_PASS"`
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         string `mapstructure:"SMTP_PORT"`
	ContactRecipient string `mapstructure:"CONTACT_RECIPIENT"`

	FormsEndpoint  string `mapstructure:"FORMS_ENDPOINT"`
	FormsAccessKey string `mapstructure:"FORMS_ACCESS_KEY"`
}

// Load reads configuration from the environment. Every key is registered
// with a default so AutomaticEnv picks up overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SITE_ORIGIN", "http://localhost:8080")
	v.SetDefault("WEB_DIR", "./web")
	v.SetDefault("LOG_LEVEL", "INFO")

	v.SetDefault("TRUSTED_PROXY_COUNT", 1)

	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 3)
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
	v.SetDefault("RATE_LIMIT_SWEEP_INTERVAL", "5m")
	v.SetDefault("RATE_LIMIT_REDIS_ADDR", "")

	v.SetDefault("MESSAGE_MIN_LENGTH", 10)
	v.SetDefault("MESSAGE_MAX_LENGTH", 2000)

	v.SetDefault("CONTACT_DELIVERY", "")
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASS", "")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("CONTACT_RECIPIENT", "")

	v.SetDefault("FORMS_ENDPOINT", "https://api.web3forms.com/submit")
	v.SetDefault("FORMS_ACCESS_KEY", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimitMaxRequests < 1 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be at least 1, got %d", c.RateLimitMaxRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.RateLimitSweepInterval <= 0 {
		return fmt.Errorf("RATE_LIMIT_SWEEP_INTERVAL must be positive, got %s", c.RateLimitSweepInterval)
	}
	if c.MessageMinLength < 1 || c.MessageMaxLength <= c.MessageMinLength {
		return fmt.Errorf("message length bounds invalid: min %d, max %d", c.MessageMinLength, c.MessageMaxLength)
	}
	switch c.ContactDelivery {
	case "", "smtp", "forms":
	default:
		return fmt.Errorf("CONTACT_DELIVERY must be \"smtp\" or \"forms\", got %q", c.ContactDelivery)
	}
	if c.TrustedProxyCount < 0 {
		return fmt.Errorf("TRUSTED_PROXY_COUNT must not be negative, got %d", c.TrustedProxyCount)
	}
	return nil
}
