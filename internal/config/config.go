package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment configuration. Every upstream credential
// is required so a misconfigured process fails at startup instead of
// silently dropping orders.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	WebhookSecret string `envconfig:"SHOPIFY_WEBHOOK_SECRET" required:"true"`

	PrintavoBaseURL    string `envconfig:"PRINTAVO_BASE_URL" default:"https://www.printavo.com/api/v1"`
	PrintavoEmail      string `envconfig:"PRINTAVO_EMAIL" required:"true"`
	PrintavoToken      string `envconfig:"PRINTAVO_TOKEN" required:"true"`
	PrintavoUserID     string `envconfig:"PRINTAVO_USER_ID" required:"true"`
	PrintavoCustomerID string `envconfig:"PRINTAVO_CUSTOMER_ID" required:"true"`

	// Exact origins allowed to call the browser-facing endpoints.
	// Empty means wildcard.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	// envconfig's required tag accepts a present-but-empty variable
	// (VAR= in an env file); credentials must also be non-empty
	required := []struct {
		name  string
		value string
	}{
		{"REDIS_ADDR", cfg.RedisAddr},
		{"SHOPIFY_WEBHOOK_SECRET", cfg.WebhookSecret},
		{"PRINTAVO_EMAIL", cfg.PrintavoEmail},
		{"PRINTAVO_TOKEN", cfg.PrintavoToken},
		{"PRINTAVO_USER_ID", cfg.PrintavoUserID},
		{"PRINTAVO_CUSTOMER_ID", cfg.PrintavoCustomerID},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("required configuration %s is empty", r.name)
		}
	}

	return &cfg, nil
}
