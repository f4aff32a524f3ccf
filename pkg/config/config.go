// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-physics4d/pkg/physics"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains configuration for a simulation run
type Config struct {
	Physics    PhysicsSettings    `json:"physics" yaml:"physics"`
	Player     PlayerSettings     `json:"player" yaml:"player"`
	Simulation SimulationSettings `json:"simulation" yaml:"simulation"`
}

// PhysicsSettings contains world-wide physics parameters
type PhysicsSettings struct {
	Gravity   float32 `json:"gravity" yaml:"gravity"`
	JumpSpeed float32 `json:"jumpSpeed" yaml:"jumpSpeed"`
}

// PlayerSettings contains player controller parameters
type PlayerSettings struct {
	Radius       float32 `json:"radius" yaml:"radius"`
	MoveSpeed    float32 `json:"moveSpeed" yaml:"moveSpeed"`
	JumpVelocity float32 `json:"jumpVelocity" yaml:"jumpVelocity"`
	GroundMargin float32 `json:"groundMargin" yaml:"groundMargin"`
}

// SimulationSettings contains stepping parameters. TimeStep is in seconds.
type SimulationSettings struct {
	TimeStep    float32 `json:"timeStep" yaml:"timeStep"`
	MaxSubSteps int     `json:"maxSubSteps" yaml:"maxSubSteps"`
	Steps       int     `json:"steps" yaml:"steps"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s=%v: %s", e.Field, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsSettings{
			Gravity:   physics.DefaultGravity,
			JumpSpeed: physics.DefaultJumpSpeed,
		},
		Player: PlayerSettings{
			Radius:       0.5,
			MoveSpeed:    6,
			JumpVelocity: physics.DefaultJumpVelocity,
			GroundMargin: physics.DefaultGroundMargin,
		},
		Simulation: SimulationSettings{
			TimeStep:    1.0 / 60.0,
			MaxSubSteps: 8,
			Steps:       600,
		},
	}
}

// PhysicsConfig converts the physics section for physics.NewPhysicsWorld.
func (c *Config) PhysicsConfig() physics.PhysicsConfig {
	return physics.PhysicsConfig{
		Gravity:   c.Physics.Gravity,
		JumpSpeed: c.Physics.JumpSpeed,
	}
}

// PlayerPhysics returns a standalone controller at position using the
// player section's radius, jump velocity and ground margin.
func (c *Config) PlayerPhysics(position physics.Vec4) *physics.PlayerPhysics {
	p := physics.NewPlayerPhysics(position, c.Player.Radius)
	p.JumpVelocity = c.Player.JumpVelocity
	p.GroundMargin = c.Player.GroundMargin
	return p
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if !(c.Simulation.TimeStep > 0) {
		return &ValidationError{Field: "Simulation.TimeStep", Value: c.Simulation.TimeStep, Message: "must be positive"}
	}
	if c.Simulation.MaxSubSteps < 1 {
		return &ValidationError{Field: "Simulation.MaxSubSteps", Value: c.Simulation.MaxSubSteps, Message: "must be at least 1"}
	}
	if c.Simulation.Steps < 0 {
		return &ValidationError{Field: "Simulation.Steps", Value: c.Simulation.Steps, Message: "must not be negative"}
	}
	if !(c.Player.Radius > 0) {
		return &ValidationError{Field: "Player.Radius", Value: c.Player.Radius, Message: "must be positive"}
	}
	if !(c.Player.GroundMargin >= 0) {
		return &ValidationError{Field: "Player.GroundMargin", Value: c.Player.GroundMargin, Message: "must not be negative"}
	}
	if c.Player.JumpVelocity < 0 {
		return &ValidationError{Field: "Player.JumpVelocity", Value: c.Player.JumpVelocity, Message: "must not be negative"}
	}
	if c.Physics.JumpSpeed < 0 {
		return &ValidationError{Field: "Physics.JumpSpeed", Value: c.Physics.JumpSpeed, Message: "must not be negative"}
	}
	return nil
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a file. Missing fields keep their
// default values. Files ending in .yaml or .yml are parsed as YAML, anything
// else as JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format by extension
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
