package vector

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML form of a vector's storage settings.
//
//	growth:
//	  strategy: block
//	  block: 16
//	initial_capacity: 64
//	max_slots: 4096
type Config struct {
	Growth          GrowthConfig `yaml:"growth"`
	InitialCapacity int          `yaml:"initial_capacity"`
	MaxSlots        int          `yaml:"max_slots"` // 0 = unlimited
}

// GrowthConfig selects a growth policy by name.
type GrowthConfig struct {
	Strategy string `yaml:"strategy"` // one, double or block
	Block    int    `yaml:"block"`
}

// ParseConfig decodes and validates a YAML config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("vector: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("vector: read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the config for values no vector could be built from.
func (c Config) Validate() error {
	var errs []error
	if c.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("vector: initial_capacity must be >= 0, got %d", c.InitialCapacity))
	}
	if c.MaxSlots < 0 {
		errs = append(errs, fmt.Errorf("vector: max_slots must be >= 0, got %d", c.MaxSlots))
	}
	if c.MaxSlots > 0 && c.InitialCapacity > c.MaxSlots {
		errs = append(errs, fmt.Errorf("vector: initial_capacity %d exceeds max_slots %d", c.InitialCapacity, c.MaxSlots))
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Policy returns the configured growth policy.
func (c Config) Policy() (GrowthPolicy, error) {
	return ParseGrowthPolicy(c.Growth.Strategy, c.Growth.Block)
}

// Options converts the config into vector options. MaxSlots selects a
// limited HeapAllocator; pass WithAllocator after these options to use a
// different allocator.
func Options[T any](c Config) ([]Option[T], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := c.Policy()
	opts := []Option[T]{WithGrowth[T](policy)}
	if c.MaxSlots > 0 {
		opts = append(opts, WithAllocator[T](HeapAllocator[T]{Limit: c.MaxSlots}))
	}
	if c.InitialCapacity > 0 {
		opts = append(opts, WithCapacity[T](c.InitialCapacity))
	}
	return opts, nil
}

// FromConfig builds a vector from c; opts are applied after the config.
func FromConfig[T any](c Config, opts ...Option[T]) (*Vector[T], error) {
	base, err := Options[T](c)
	if err != nil {
		return nil, err
	}
	return New(append(base, opts...)...)
}
