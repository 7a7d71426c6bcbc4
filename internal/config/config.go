package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DefaultLookbackDays is the memory horizon over which historical
// completions are scored when no lookback is configured
const DefaultLookbackDays = 90

// RoutineOverride adjusts instance generation for dates matching an rrule,
// e.g. heavier points for weekend routines
type RoutineOverride struct {
	RRule       string   `yaml:"rrule" validate:"required"`
	PointsValue *float64 `yaml:"pointsValue,omitempty" validate:"omitempty,min=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL      string            `yaml:"databaseURL" validate:"required"`
	StableID         string            `yaml:"stableID" validate:"required"`
	LookbackDays     int               `yaml:"lookbackDays,omitempty" validate:"omitempty,min=1"`
	DefaultAlgorithm string            `yaml:"defaultAlgorithm,omitempty" validate:"omitempty,oneof=points_balance quota_based"`
	RoutineOverrides []RoutineOverride `yaml:"routineOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment, looking for stall_<env>_config.yaml in the current directory
// first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = DefaultLookbackDays
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

	// Validate rrule syntax for each override
	for i, override := range cfg.RoutineOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in routineOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the current
// directory and home directory
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("stall_%s_config.yaml", env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
