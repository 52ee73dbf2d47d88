package config

import (
	"fmt"
	"math"
	"os"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadExperiment loads and parses an experiment file
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment file %s: %w", path, err)
	}
	exp, err := ParseExperimentYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse experiment file %s: %w", path, err)
	}
	return exp, nil
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("invalid log_format: %s (must be json or text)", cfg.LogFormat)
	}

	if cfg.Experiment != nil {
		if err := ValidateExperiment(cfg.Experiment); err != nil {
			return fmt.Errorf("experiment validation failed: %w", err)
		}
	}

	return nil
}

// ValidateExperiment checks an experiment after defaults were applied.
// Absent days_contagious or num_trials are errors here.
// The city must parse; a malformed token is reported with models.ErrInvalidToken.
func ValidateExperiment(e *Experiment) error {
	if _, err := e.Population(); err != nil {
		return fmt.Errorf("invalid city: %w", err)
	}
	if e.DaysContagious == nil {
		return fmt.Errorf("days_contagious is required")
	}
	if *e.DaysContagious <= 0 {
		return fmt.Errorf("days_contagious must be positive, got %d", *e.DaysContagious)
	}
	if e.RandomSeed != nil && (*e.RandomSeed > MaxSeed || *e.RandomSeed < -MaxSeed) {
		return fmt.Errorf("random_seed must be within [-2^53, 2^53], got %d", *e.RandomSeed)
	}
	if math.IsNaN(e.VaccineEffectiveness) || e.VaccineEffectiveness < 0 || e.VaccineEffectiveness > 1 {
		return fmt.Errorf("vaccine_effectiveness must be between 0 and 1, got %f", e.VaccineEffectiveness)
	}
	if e.NumTrials == nil {
		return fmt.Errorf("num_trials is required")
	}
	if *e.NumTrials <= 0 {
		return fmt.Errorf("num_trials must be positive, got %d", *e.NumTrials)
	}
	switch e.TaskType {
	case models.TaskSingle, models.TaskAverage:
	default:
		return fmt.Errorf("invalid task_type: %s (must be single or average)", e.TaskType)
	}
	return nil
}
