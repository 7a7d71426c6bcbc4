package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	weekend := 4.0
	cfg := &Config{
		DatabaseURL:      "postgres://localhost/stall",
		StableID:         "stable-1",
		LookbackDays:     90,
		DefaultAlgorithm: "quota_based",
		RoutineOverrides: []RoutineOverride{
			{
				RRule:       "FREQ=WEEKLY;BYDAY=SA,SU",
				PointsValue: &weekend,
			},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/stall",
		StableID:    "stable-1",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/stall",
		// Missing StableID
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_UnknownAlgorithm(t *testing.T) {
	cfg := &Config{
		DatabaseURL:      "postgres://localhost/stall",
		StableID:         "stable-1",
		DefaultAlgorithm: "round_robin",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_InvalidOverrideRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/stall",
		StableID:    "stable-1",
		RoutineOverrides: []RoutineOverride{
			{RRule: "FREQ=NEVERMIND"},
		},
	}

	err := Validate(cfg)
	assert.ErrorContains(t, err, "invalid rrule")
}

func TestLoadFromPath(t *testing.T) {
	content := `databaseURL: postgres://localhost/stall
stableID: stable-1
defaultAlgorithm: points_balance
routineOverrides:
  - rrule: FREQ=WEEKLY;BYDAY=SA,SU
    pointsValue: 4
`
	path := filepath.Join(t.TempDir(), "stall_test_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/stall", cfg.DatabaseURL)
	assert.Equal(t, "stable-1", cfg.StableID)
	assert.Equal(t, "points_balance", cfg.DefaultAlgorithm)
	// Lookback defaults to the 90 day memory horizon
	assert.Equal(t, DefaultLookbackDays, cfg.LookbackDays)
	require.Len(t, cfg.RoutineOverrides, 1)
	require.NotNil(t, cfg.RoutineOverrides[0].PointsValue)
	assert.Equal(t, 4.0, *cfg.RoutineOverrides[0].PointsValue)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
