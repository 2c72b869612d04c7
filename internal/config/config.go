package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFilePrefix = "shiftplan_config"
	defaultHTTPAddr  = ":8080"

	// DatabaseURLEnv overrides databaseURL from the config file
	DatabaseURLEnv = "DATABASE_URL"
)

// ClosedDay marks recurring dates on which no shifts are planned
type ClosedDay struct {
	RRule       string `yaml:"rrule" validate:"required"`
	Description string `yaml:"description,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string      `yaml:"databaseURL" validate:"required"`
	PlanSheetID     string      `yaml:"planSheetID,omitempty"`
	HTTPAddr        string      `yaml:"httpAddr,omitempty"`
	UseRelaxedRules bool        `yaml:"useRelaxedRules,omitempty"`
	ClosedDays      []ClosedDay `yaml:"closedDays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates shiftplan_config.<env>.yaml.
// It looks for the config file in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// A non-empty DATABASE_URL environment variable replaces databaseURL.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, closed := range cfg.ClosedDays {
		if _, err := rrule.StrToRRule(closed.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closedDays[%d]: %w", i, err)
		}
	}

	return nil
}

// ClosedDayMatcher returns a function reporting whether a date falls on a configured closed day
// between from and to (inclusive). It returns nil when no closed days are configured.
func (c *Config) ClosedDayMatcher(from, to time.Time) (func(time.Time) bool, error) {
	if len(c.ClosedDays) == 0 {
		return nil, nil
	}

	closed := make(map[string]bool)
	for i, day := range c.ClosedDays {
		rule, err := rrule.StrToRRule(day.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for closedDays[%d]: %w", i, err)
		}

		// Rules without an explicit DTSTART count from the start of the range
		if !hasDTStart(day.RRule) {
			rule.DTStart(from)
		}

		// Occurrences keep the rule's zone, so the window is padded a day each side
		// and matched on the local calendar date
		for _, occurrence := range rule.Between(from.AddDate(0, 0, -1), to.AddDate(0, 0, 1), true) {
			closed[calendarDate(occurrence)] = true
		}
	}

	return func(date time.Time) bool {
		return closed[calendarDate(date)]
	}, nil
}

func calendarDate(t time.Time) string {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

func hasDTStart(rule string) bool {
	opts, err := rrule.StrToROption(rule)
	return err == nil && !opts.Dtstart.IsZero()
}

// findConfigFile searches for shiftplan_config.<env>.yaml
func findConfigFile(env string) (string, error) {
	configFileName := configFilePrefix + ".yaml"
	if env != "" {
		configFileName = configFilePrefix + "." + env + ".yaml"
	}
	return locateFile(configFileName)
}

// locateFile looks for fileName in the current directory, then in the user's home directory
func locateFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
