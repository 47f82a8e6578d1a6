// Package config loads the optional notiv configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	// Target is the default output target: default or clipboard.
	Target string `json:"target,omitempty"`
	// OutputDir is where capture commands write payloads.
	OutputDir string `json:"outputDir,omitempty"`
	// Workers bounds batch parallelism (0 = NumCPU).
	Workers int `json:"workers,omitempty"`
	// MaxSurfacePixels bounds a single offscreen surface.
	MaxSurfacePixels int `json:"maxSurfacePixels,omitempty"`
	// Overrides replaces fields of the built-in profiles, keyed by
	// profile name ("full/default", "crop/clipboard", ...).
	Overrides map[string]ProfileOverride `json:"profiles,omitempty"`
}

// ProfileOverride replaces the non-zero fields of a built-in profile.
type ProfileOverride struct {
	MaxDimension int                 `json:"maxDimension,omitempty"`
	Format       string              `json:"format,omitempty"`
	Lossless     *bool               `json:"lossless,omitempty"`
	Quality      int                 `json:"quality,omitempty"`
	ByteBudget   *int                `json:"byteBudget,omitempty"` // 0 disables the budget
	SecondPass   *profile.SecondPass `json:"secondPass,omitempty"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Target:           string(profile.TargetDefault),
		OutputDir:        "./notiv_out",
		MaxSurfacePixels: encoder.DefaultMaxSurfacePixels,
	}
}

// Path returns the default configuration file path.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "notiv.yaml"
	}
	return filepath.Join(dir, "notiv", "config.yaml")
}

// Load reads a YAML (or JSON) config file on top of Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at Path, or returns Default when it does
// not exist.
func LoadDefault() (*Config, error) {
	path := Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration, including every resulting profile.
func (c *Config) Validate() error {
	if _, err := profile.ParseTarget(c.Target); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.MaxSurfacePixels < 0 {
		return fmt.Errorf("maxSurfacePixels must not be negative")
	}
	for name := range c.Overrides {
		if _, ok := profile.Get(name); !ok {
			return fmt.Errorf("unknown profile %q", name)
		}
	}
	for _, p := range c.Profiles() {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Profiles returns the built-in profiles with overrides applied, keyed by
// profile name.
func (c *Config) Profiles() map[string]profile.Profile {
	out := make(map[string]profile.Profile)
	for _, name := range profile.Names() {
		out[name], _ = profile.Get(name)
	}
	for name, o := range c.Overrides {
		if p, ok := profile.Get(name); ok {
			out[p.Name] = o.apply(out[p.Name])
		}
	}
	return out
}

// DefaultTarget returns the configured output target.
func (c *Config) DefaultTarget() profile.Target {
	t, err := profile.ParseTarget(c.Target)
	if err != nil {
		return profile.TargetDefault
	}
	return t
}

func (o ProfileOverride) apply(p profile.Profile) profile.Profile {
	if o.MaxDimension != 0 {
		p.MaxDimension = o.MaxDimension
	}
	if o.Format != "" {
		p.Format = o.Format
	}
	if o.Lossless != nil {
		p.Lossless = *o.Lossless
	}
	if o.Quality != 0 {
		p.Quality = o.Quality
	}
	if o.ByteBudget != nil {
		p.ByteBudget = *o.ByteBudget
	}
	if o.SecondPass != nil {
		p.SecondPass = *o.SecondPass
	}
	return p
}
