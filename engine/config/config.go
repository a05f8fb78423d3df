// Package config loads the host configuration of the effect engine from a YAML file with environment overrides,
// and turns it into the construction options of every engine component.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix prefixes every environment override, e.g. OXYFX_CLOCK_FRAME_RATE.
const DefaultEnvPrefix = "OXYFX_"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete host configuration.
type Config struct {
	Clock     ClockConfig    `yaml:"clock" envPrefix:"CLOCK_"`
	Trigger   TriggerConfig  `yaml:"trigger" envPrefix:"TRIGGER_"`
	Instance  InstanceConfig `yaml:"instance" envPrefix:"INSTANCE_"`
	Renderer  RendererConfig `yaml:"renderer" envPrefix:"RENDERER_"`
	Registry  RegistryConfig `yaml:"registry" envPrefix:"REGISTRY_"`
	Window    WindowConfig   `yaml:"window" envPrefix:"WINDOW_"`
	Locale    string         `yaml:"locale" env:"LOCALE"`
	Profiling bool           `yaml:"profiling" env:"PROFILING"`
	Effects   []EffectConfig `yaml:"effects" env:"-"`
}

// ClockConfig configures the frame clock.
type ClockConfig struct {
	FrameRate float64 `yaml:"frame_rate" env:"FRAME_RATE"`
}

// TriggerConfig configures every trigger policy.
type TriggerConfig struct {
	Threshold    float32 `yaml:"threshold" env:"THRESHOLD"`
	FrameScale   float32 `yaml:"frame_scale" env:"FRAME_SCALE"`
	AutoPlayGate bool    `yaml:"auto_play_gate" env:"AUTO_PLAY_GATE"`
}

// InstanceConfig configures every effect instance.
type InstanceConfig struct {
	MaxSpeed float32  `yaml:"max_speed" env:"MAX_SPEED"`
	Scale    float32  `yaml:"scale" env:"SCALE"`
	Policies []string `yaml:"policies" env:"POLICIES" envSeparator:","`
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	Backend    string `yaml:"backend" env:"BACKEND"`
	VSync      bool   `yaml:"vsync" env:"VSYNC"`
	MSAA       bool   `yaml:"msaa" env:"MSAA"`
	Distortion bool   `yaml:"distortion" env:"DISTORTION"`
	Software   bool   `yaml:"software" env:"SOFTWARE"`
}

// RegistryConfig configures the effect registry and its manager.
type RegistryConfig struct {
	Workers      int `yaml:"workers" env:"WORKERS"`
	MaxPlaybacks int `yaml:"max_playbacks" env:"MAX_PLAYBACKS"`
}

// WindowConfig configures the host window.
type WindowConfig struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
}

// EffectConfig describes one effect asset of the catalog.
type EffectConfig struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	Duration   int    `yaml:"duration"`
	Loop       bool   `yaml:"loop"`
	Distortion bool   `yaml:"distortion"`
}

// Default returns the configuration used for every value a file or the environment leaves unset.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Clock:    ClockConfig{FrameRate: 30},
		Trigger:  TriggerConfig{Threshold: 0.5, FrameScale: 100},
		Instance: InstanceConfig{MaxSpeed: 4, Scale: 1, Policies: []string{"edge", "auto_play", "frame"}},
		Renderer: RendererConfig{Backend: "wgpu", VSync: true, MSAA: true, Distortion: true},
		Registry: RegistryConfig{Workers: 1, MaxPlaybacks: 2048},
		Window:   WindowConfig{Title: "oxy-fx", Width: 1280, Height: 720},
		Locale:   "en",
	}
}

// LoadOption is a functional option for Load and Parse.
type LoadOption func(*loadOptions)

type loadOptions struct {
	prefix      string
	environment map[string]string
}

// WithEnvPrefix sets the prefix of environment overrides. The default is DefaultEnvPrefix.
//
// Parameters:
//   - prefix: the variable prefix
//
// Returns:
//   - LoadOption: a function that applies the prefix option
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvironment reads overrides from the given map instead of the process environment.
//
// Parameters:
//   - environment: variable names to values
//
// Returns:
//   - LoadOption: a function that applies the environment option
func WithEnvironment(environment map[string]string) LoadOption {
	return func(o *loadOptions) {
		o.environment = environment
	}
}

// Load reads a YAML configuration file and applies environment overrides on top of it.
// An empty path loads the defaults with environment overrides only.
//
// Parameters:
//   - path: the configuration file
//   - options: functional options controlling environment overrides
//
// Returns:
//   - Config: the validated configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string, options ...LoadOption) (Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg, err := Parse(data, options...)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and applies environment overrides.
//
// Parameters:
//   - data: the YAML document, may be empty
//   - options: functional options controlling environment overrides
//
// Returns:
//   - Config: the validated configuration
//   - error: an error if the document cannot be decoded or the result is invalid
func Parse(data []byte, options ...LoadOption) (Config, error) {
	o := loadOptions{prefix: DefaultEnvPrefix}
	for _, opt := range options {
		opt(&o)
	}

	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid value in the configuration.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	if c.Clock.FrameRate <= 0 {
		return fmt.Errorf("%w: clock.frame_rate must be positive, got %v", ErrInvalidConfig, c.Clock.FrameRate)
	}
	if c.Trigger.Threshold < 0 || c.Trigger.Threshold >= 1 {
		return fmt.Errorf("%w: trigger.threshold must be in [0, 1), got %v", ErrInvalidConfig, c.Trigger.Threshold)
	}
	if c.Trigger.FrameScale <= 0 {
		return fmt.Errorf("%w: trigger.frame_scale must be positive, got %v", ErrInvalidConfig, c.Trigger.FrameScale)
	}
	if c.Instance.MaxSpeed <= 0 {
		return fmt.Errorf("%w: instance.max_speed must be positive, got %v", ErrInvalidConfig, c.Instance.MaxSpeed)
	}
	if _, err := c.PolicyKinds(); err != nil {
		return err
	}
	if _, err := c.BackendType(); err != nil {
		return err
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Effects))
	for i, e := range c.Effects {
		if e.Name == "" {
			return fmt.Errorf("%w: effects[%d] has no name", ErrInvalidConfig, i)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: effect %q defined twice", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}
