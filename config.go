package grasp

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("grasp: invalid config")

// Config holds every tunable of the capture system. Zero-value fields in a
// YAML document keep their DefaultConfig values only if the key is absent.
type Config struct {
	Raymarch RaymarchConfig `yaml:"raymarch"`
	Capture  CaptureConfig  `yaml:"capture"`
	Hand     PinchConfig    `yaml:"hand"`
	Pointer  PointerConfig  `yaml:"pointer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CaptureConfig tunes arbitration.
type CaptureConfig struct {
	// Hysteresis moves last tick's owner to the front of the candidate order.
	Hysteresis bool `yaml:"hysteresis"`
}

// PointerConfig tunes the window pointer input method.
type PointerConfig struct {
	ScrollMultiplier float64 `yaml:"scroll_multiplier"`
	FovYDegrees      float64 `yaml:"fov_y_degrees"`
}

// LoggingConfig selects the slog handler built by NewLogger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Raymarch: DefaultRaymarchConfig(),
		Capture:  CaptureConfig{Hysteresis: true},
		Hand:     DefaultPinchConfig(),
		Pointer:  PointerConfig{ScrollMultiplier: 0.02, FovYDegrees: 60},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("grasp: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("grasp: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	rm := c.Raymarch
	switch {
	case rm.MaxSteps <= 0:
		return fmt.Errorf("%w: raymarch.max_steps must be positive, got %d", ErrInvalidConfig, rm.MaxSteps)
	case rm.MinStepSize <= 0:
		return fmt.Errorf("%w: raymarch.min_step_size must be positive, got %g", ErrInvalidConfig, rm.MinStepSize)
	case rm.MaxDistance <= 0:
		return fmt.Errorf("%w: raymarch.max_distance must be positive, got %g", ErrInvalidConfig, rm.MaxDistance)
	case rm.HitDistance < 0:
		return fmt.Errorf("%w: raymarch.hit_distance must not be negative, got %g", ErrInvalidConfig, rm.HitDistance)
	case c.Hand.Activation < 0:
		return fmt.Errorf("%w: hand.pinch_activation must not be negative, got %g", ErrInvalidConfig, c.Hand.Activation)
	case c.Hand.Max <= c.Hand.Activation:
		return fmt.Errorf("%w: hand.pinch_max (%g) must exceed hand.pinch_activation (%g)",
			ErrInvalidConfig, c.Hand.Max, c.Hand.Activation)
	case c.Pointer.FovYDegrees <= 0 || c.Pointer.FovYDegrees >= 180:
		return fmt.Errorf("%w: pointer.fov_y_degrees must be in (0, 180), got %g", ErrInvalidConfig, c.Pointer.FovYDegrees)
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
