package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: want 8080, got %q", cfg.ServerPort)
	}
	if cfg.RateLimitMaxRequests != 3 {
		t.Errorf("RateLimitMaxRequests: want 3, got %d", cfg.RateLimitMaxRequests)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Errorf("RateLimitWindow: want 60s, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitSweepInterval != 5*time.Minute {
		t.Errorf("RateLimitSweepInterval: want 5m, got %s", cfg.RateLimitSweepInterval)
	}
	if cfg.MessageMinLength != 10 || cfg.MessageMaxLength != 2000 {
		t.Errorf("message bounds: want 10..2000, got %d..%d", cfg.MessageMinLength, cfg.MessageMaxLength)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != "587" {
		t.Errorf("SMTP defaults wrong: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MESSAGE_MAX_LENGTH", "1000")
	t.Setenv("CONTACT_DELIVERY", "forms")
	t.Setenv("FORMS_ACCESS_KEY", "key-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.RateLimitMaxRequests != 10 {
		t.Errorf("RateLimitMaxRequests: want 10, got %d", cfg.RateLimitMaxRequests)
	}
	if cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow: want 30s, got %s", cfg.RateLimitWindow)
	}
	if cfg.MessageMaxLength != 1000 {
		t.Errorf("MessageMaxLength: want 1000, got %d", cfg.MessageMaxLength)
	}
	if cfg.ContactDelivery != "forms" {
		t.Errorf("ContactDelivery: want forms, got %q", cfg.ContactDelivery)
	}
	if cfg.FormsAccessKey != "key-123" {
		t.Errorf("FormsAccessKey: want key-123, got %q", cfg.FormsAccessKey)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero limit", "RATE_LIMIT_MAX_REQUESTS", "0"},
		{"negative window", "RATE_LIMIT_WINDOW", "-1s"},
		{"max below min", "MESSAGE_MAX_LENGTH", "5"},
		{"unknown strategy", "CONTACT_DELIVERY", "carrier-pigeon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected Load to reject %s=%s", tt.key, tt.value)
			}
		})
	}
}
