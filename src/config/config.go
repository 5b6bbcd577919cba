package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"audio-briefing/src/services"
)

// Dispatch modes for the submission gateway
const (
	DispatchDirect   = "direct"
	DispatchTemporal = "temporal"
)

// RelayConfig holds the email relay account and templates
type RelayConfig struct {
	Endpoint               string        `env:"ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID              string        `env:"SERVICE_ID"`
	TemplateID             string        `env:"TEMPLATE_ID"`
	ConfirmationTemplateID string        `env:"CONFIRMATION_TEMPLATE_ID"` // falls back to TemplateID
	PublicKey              string        `env:"PUBLIC_KEY"`
	PrivateKey             string        `env:"PRIVATE_KEY"`
	Timeout                time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// OperatorConfig identifies the service operator receiving notifications
type OperatorConfig struct {
	Email string `env:"EMAIL"`
	Name  string `env:"NAME" envDefault:"Rik de Wit Audio"`
}

// TemporalConfig holds the Temporal client settings
type TemporalConfig struct {
	HostPort        string        `env:"HOST_PORT" envDefault:"localhost:7233"`
	Namespace       string        `env:"NAMESPACE" envDefault:"default"`
	APIKey          string        `env:"API_KEY"`
	TaskQueue       string        `env:"TASK_QUEUE" envDefault:"briefing-task-queue"`
	ActivityTimeout time.Duration `env:"ACTIVITY_TIMEOUT" envDefault:"30s"`
}

// Config is the process configuration shared by cmd/server, cmd/worker and cmd/client
type Config struct {
	HTTPAddr        string         `env:"BRIEFING_HTTP_ADDR" envDefault:":8081"`
	Locale          string         `env:"BRIEFING_LOCALE" envDefault:"nl"`
	Dispatch        string         `env:"BRIEFING_DISPATCH" envDefault:"direct"`
	TransitionDelay time.Duration  `env:"BRIEFING_TRANSITION_DELAY" envDefault:"300ms"`
	SessionTTL      time.Duration  `env:"BRIEFING_SESSION_TTL" envDefault:"2h"`
	LogLevel        string         `env:"BRIEFING_LOG_LEVEL" envDefault:"info"`
	Relay           RelayConfig    `envPrefix:"EMAIL_RELAY_"`
	Operator        OperatorConfig `envPrefix:"OPERATOR_"`
	Temporal        TemporalConfig `envPrefix:"TEMPORAL_"`
}

// envPaths are tried in order; the first .env found wins
var envPaths = []string{
	".env",                            // Current directory
	"../.env",                         // One level up (from cmd/worker or cmd/server)
	"../../.env",                      // Two levels up
	filepath.Join("..", "..", ".env"), // Alternative path format
}

// LoadDotEnv loads the first .env file found. The file is optional.
func LoadDotEnv() {
	for _, envPath := range envPaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded .env file from: %s", envPath)
			return
		}
	}
	log.Println("No .env file found, using environment variables or defaults")
}

// Load reads .env (if any) and parses the environment into a Config
func Load() (Config, error) {
	LoadDotEnv()
	return Parse(env.Options{})
}

// Parse parses configuration with explicit env options (tests pass Environment)
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Dispatch = strings.ToLower(strings.TrimSpace(cfg.Dispatch))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have no safe default
func (c Config) Validate() error {
	switch c.Dispatch {
	case DispatchDirect, DispatchTemporal:
	default:
		return fmt.Errorf("invalid BRIEFING_DISPATCH %q: want %q or %q", c.Dispatch, DispatchDirect, DispatchTemporal)
	}
	if c.TransitionDelay < 0 {
		return fmt.Errorf("BRIEFING_TRANSITION_DELAY must not be negative")
	}
	return nil
}

// ConfirmationTemplate returns the template used for the customer confirmation
func (r RelayConfig) ConfirmationTemplate() string {
	if r.ConfirmationTemplateID != "" {
		return r.ConfirmationTemplateID
	}
	return r.TemplateID
}

// Configured reports whether enough relay settings are present to send
func (r RelayConfig) Configured() bool {
	return r.ServiceID != "" && r.TemplateID != "" && r.PublicKey != ""
}

// RelayOptions converts the relay settings for services.NewEmailRelay
func (r RelayConfig) RelayOptions() services.RelayOptions {
	return services.RelayOptions{
		Endpoint:   r.Endpoint,
		PublicKey:  r.PublicKey,
		PrivateKey: r.PrivateKey,
		Timeout:    r.Timeout,
	}
}
