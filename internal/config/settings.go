package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Settings holds process-level configuration read from the environment.
type Settings struct {
	CatalogPath  string `env:"MARGIN_CATALOG"`
	LogLevel     string `env:"MARGIN_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"MARGIN_LOG_FORMAT" envDefault:"console"`
	HTTPAddr     string `env:"MARGIN_HTTP_ADDR" envDefault:":8080"`
	OutputFormat string `env:"MARGIN_OUTPUT_FORMAT" envDefault:"console"`
	PageSize     int    `env:"MARGIN_PAGE_SIZE" envDefault:"8"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoadSettings reads an optional .env file (the first existing of files, or
// ".env" when none are given) and then parses the environment.
func LoadSettings(files ...string) (*Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// variables already set in the process environment win
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
		break
	}

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings values that env parsing cannot.
func (s *Settings) Validate() error {
	var errs []error
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if !validLogLevels[s.LogLevel] {
		errs = append(errs, fmt.Errorf("MARGIN_LOG_LEVEL: unknown level %q", s.LogLevel))
	}
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	if s.LogFormat != "console" && s.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("MARGIN_LOG_FORMAT: must be console or json, got %q", s.LogFormat))
	}
	if s.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("MARGIN_PAGE_SIZE: must be positive, got %d", s.PageSize))
	}
	if strings.TrimSpace(s.HTTPAddr) == "" {
		errs = append(errs, errors.New("MARGIN_HTTP_ADDR: must not be empty"))
	}
	return errors.Join(errs...)
}
