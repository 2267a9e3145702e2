package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the useradmin CLI.
type Config struct {
	APIBaseURL     string        `env:"USERADMIN_API_URL"`
	RequestTimeout time.Duration `env:"USERADMIN_REQUEST_TIMEOUT"`
	ExportDir      string        `env:"USERADMIN_EXPORT_DIR"`
	LogLevel       string        `env:"USERADMIN_LOG_LEVEL"`
	LogFormat      string        `env:"USERADMIN_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.ExportDir = "download"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base url %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api base url %q: missing host", c.APIBaseURL)
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return errors.New("export dir must not be empty")
	}
	return nil
}

// Load builds a Config from defaults, dotenv, JSON, environment and the
// given command-line arguments (without the program name), in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotenv(args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load applied to os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
