package bench

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/vector"
)

// Allocator kinds accepted in AllocatorConfig.Kind.
const (
	AllocHeap  = "heap"
	AllocArena = "arena"
)

// DefaultChunkSize is the arena chunk size used when none is configured.
const DefaultChunkSize = 64 * 1024

// Config describes one benchmark run.
type Config struct {
	Vector    vector.Config   `yaml:"vector"`
	Allocator AllocatorConfig `yaml:"allocator"`
	Workload  []Step          `yaml:"workload"`
}

// AllocatorConfig selects where the vector's buffer comes from.
type AllocatorConfig struct {
	Kind      string `yaml:"kind"`       // heap (default) or arena
	ChunkSize int    `yaml:"chunk_size"` // arena only
	Limit     int    `yaml:"limit"`      // arena byte limit, 0 = unlimited
}

// Step is one workload entry: Op applied Count times.
type Step struct {
	Op    Op  `yaml:"op"`
	Count int `yaml:"count"`
}

// DefaultConfig returns a mixed workload on a heap-backed vector.
func DefaultConfig() Config {
	return Config{
		Allocator: AllocatorConfig{Kind: AllocHeap},
		Workload: []Step{
			{Op: OpAppend, Count: 10000},
			{Op: OpInsertFront, Count: 100},
			{Op: OpRemoveOrdered, Count: 100},
			{Op: OpSwapErase, Count: 1000},
			{Op: OpRemoveRange, Count: 1000},
			{Op: OpPop, Count: 1000},
			{Op: OpFit},
			{Op: OpClear},
		},
	}
}

// ParseConfig decodes and validates a YAML bench config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bench: parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the bench config at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bench: read config: %w", err)
	}
	return ParseConfig(data)
}

func (c *Config) normalize() {
	c.Allocator.Kind = strings.ToLower(strings.TrimSpace(c.Allocator.Kind))
	if c.Allocator.Kind == "" {
		c.Allocator.Kind = AllocHeap
	}
	if c.Allocator.Kind == AllocArena && c.Allocator.ChunkSize == 0 {
		c.Allocator.ChunkSize = DefaultChunkSize
	}
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error
	if err := c.Vector.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch c.Allocator.Kind {
	case AllocHeap, "":
		if c.Allocator.ChunkSize != 0 || c.Allocator.Limit != 0 {
			errs = append(errs, errors.New("bench: chunk_size and limit apply to the arena allocator only"))
		}
	case AllocArena:
		if c.Allocator.ChunkSize < 0 {
			errs = append(errs, fmt.Errorf("bench: chunk_size must be >= 0, got %d", c.Allocator.ChunkSize))
		}
		if c.Allocator.Limit < 0 {
			errs = append(errs, fmt.Errorf("bench: limit must be >= 0, got %d", c.Allocator.Limit))
		}
		if c.Vector.MaxSlots > 0 {
			errs = append(errs, errors.New("bench: max_slots applies to the heap allocator, use allocator.limit"))
		}
	default:
		errs = append(errs, fmt.Errorf("bench: unknown allocator %q", c.Allocator.Kind))
	}

	if len(c.Workload) == 0 {
		errs = append(errs, errors.New("bench: workload is empty"))
	}
	for i, s := range c.Workload {
		if !s.Op.valid() {
			errs = append(errs, fmt.Errorf("bench: step %d: unknown op %q", i, s.Op))
			continue
		}
		if s.Count < 0 {
			errs = append(errs, fmt.Errorf("bench: step %d: count must be >= 0, got %d", i, s.Count))
		}
	}
	return errors.Join(errs...)
}
