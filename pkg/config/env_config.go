// pkg/config/env_config.go
package config

import (
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvGravity     = "PHYSICS4D_GRAVITY"
	EnvJumpSpeed   = "PHYSICS4D_JUMP_SPEED"
	EnvTimeStep    = "PHYSICS4D_TIME_STEP"
	EnvSteps       = "PHYSICS4D_STEPS"
	EnvMaxSubSteps = "PHYSICS4D_MAX_SUBSTEPS"
)

// ApplyEnvironmentOverrides applies environment variable overrides to config.
// Unset or unparsable variables leave the current value in place. The result
// is validated.
func ApplyEnvironmentOverrides(config *Config) error {
	config.Physics.Gravity = float32(getEnvAsFloatOrDefault(EnvGravity, float64(config.Physics.Gravity)))
	config.Physics.JumpSpeed = float32(getEnvAsFloatOrDefault(EnvJumpSpeed, float64(config.Physics.JumpSpeed)))
	config.Simulation.TimeStep = float32(getEnvAsFloatOrDefault(EnvTimeStep, float64(config.Simulation.TimeStep)))
	config.Simulation.Steps = getEnvAsIntOrDefault(EnvSteps, config.Simulation.Steps)
	config.Simulation.MaxSubSteps = getEnvAsIntOrDefault(EnvMaxSubSteps, config.Simulation.MaxSubSteps)

	return config.Validate()
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := getEnvOrDefault(key, ""); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
