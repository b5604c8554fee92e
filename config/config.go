// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Adhesion  AdhesionConfig  `yaml:"adhesion"`
	Track     TrackConfig     `yaml:"track"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds integration-engine parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`         // Seconds per physics tick
	Gravity    float64 `yaml:"gravity"`    // Gravity magnitude in units/s^2, acts along -Y
	Iterations int     `yaml:"iterations"` // Constraint solver iterations
	Damping    float64 `yaml:"damping"`    // Global velocity damping per second (1 = none)
}

// VehicleConfig holds the dumbbell assembly parameters.
type VehicleConfig struct {
	WheelRadius   float64 `yaml:"wheel_radius"`   // Wheel collision radius in units
	WheelMass     float64 `yaml:"wheel_mass"`     // Mass per wheel
	WheelFriction float64 `yaml:"wheel_friction"` // Static friction of wheel shapes
	WheelBase     float64 `yaml:"wheel_base"`     // Distance between wheel centers in units
	ChassisMass   float64 `yaml:"chassis_mass"`   // Chassis mass
	ChassisWidth  float64 `yaml:"chassis_width"`  // Chassis extent used for the analytic box moment
	ChassisHeight float64 `yaml:"chassis_height"`
	WheelTorque   float64 `yaml:"wheel_torque"` // Drive torque per wheel at full input
	AirTorque     float64 `yaml:"air_torque"`   // Chassis orientation torque at full input
}

// AdhesionConfig holds the surface-adhesion tunables.
type AdhesionConfig struct {
	VelocityThreshold float64 `yaml:"velocity_threshold"` // Speed around which adhesion engages, units/s
	Hysteresis        float64 `yaml:"hysteresis"`         // Dead band half-width around the threshold, units/s
	ForceMultiplier   float64 `yaml:"force_multiplier"`   // Magnitude of the normal-aligned downforce, not mass-scaled
	SensorLength      float64 `yaml:"sensor_length"`      // Ground sensor ray length in units
}

// TrackConfig holds the static course layout.
type TrackConfig struct {
	Points     [][2]float64 `yaml:"points"`     // Closed polyline, world units
	Friction   float64      `yaml:"friction"`   // Surface friction of track segments
	Elasticity float64      `yaml:"elasticity"` // Surface restitution of track segments
	SpawnX     float64      `yaml:"spawn_x"`
	SpawnY     float64      `yaml:"spawn_y"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Window duration in simulation seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TicksPerWindow int     // Telemetry window length in ticks
	AttachSpeed    float64 // VelocityThreshold + Hysteresis
	DetachSpeed    float64 // VelocityThreshold - Hysteresis
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the controller cannot run with.
// Malformed tunables are a startup-time fatal condition, not a runtime one.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Adhesion.Hysteresis < 0 {
		return fmt.Errorf("config: adhesion.hysteresis must be non-negative, got %v", c.Adhesion.Hysteresis)
	}
	if c.Adhesion.Hysteresis >= c.Adhesion.VelocityThreshold {
		return fmt.Errorf("config: adhesion.hysteresis (%v) must be smaller than adhesion.velocity_threshold (%v)",
			c.Adhesion.Hysteresis, c.Adhesion.VelocityThreshold)
	}
	if c.Adhesion.SensorLength <= 0 {
		return fmt.Errorf("config: adhesion.sensor_length must be positive, got %v", c.Adhesion.SensorLength)
	}
	if c.Vehicle.WheelMass <= 0 || c.Vehicle.ChassisMass <= 0 {
		return fmt.Errorf("config: vehicle masses must be positive (wheel %v, chassis %v)",
			c.Vehicle.WheelMass, c.Vehicle.ChassisMass)
	}
	if c.Vehicle.WheelRadius <= 0 {
		return fmt.Errorf("config: vehicle.wheel_radius must be positive, got %v", c.Vehicle.WheelRadius)
	}
	if len(c.Track.Points) > 0 && len(c.Track.Points) < 3 {
		return fmt.Errorf("config: track.points needs at least 3 points to form a course, got %d", len(c.Track.Points))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ticks := int(c.Telemetry.StatsWindow / c.Physics.DT)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerWindow = ticks
	c.Derived.AttachSpeed = c.Adhesion.VelocityThreshold + c.Adhesion.Hysteresis
	c.Derived.DetachSpeed = c.Adhesion.VelocityThreshold - c.Adhesion.Hysteresis
}

// Reapply revalidates and recomputes derived values after programmatic
// tunable changes (used by the tuning CLI between evaluations).
func (c *Config) Reapply() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
