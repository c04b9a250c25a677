package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pavanmanishd/vector"
	"github.com/pavanmanishd/vector/arena"
	"github.com/pavanmanishd/vector/vecprom"
)

// Name labels the benchmark vector and region in exported metrics.
const Name = "bench"

// Result is the outcome of a run.
type Result struct {
	Growth    string               `json:"growth"`
	Allocator string               `json:"allocator"`
	Steps     []StepResult         `json:"steps"`
	Elapsed   time.Duration        `json:"elapsed_ns"`
	Vector    vector.Metrics       `json:"vector"`
	Region    *arena.RegionMetrics `json:"region,omitempty"`
}

// StepResult records one workload step.
type StepResult struct {
	Op      Op            `json:"op"`
	Count   int           `json:"count"`
	Done    int           `json:"done"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Len     int           `json:"len"`
	Cap     int           `json:"cap"`
	Error   string        `json:"error,omitempty"`
}

// Runner executes a Config's workload against a Vector[int64].
type Runner struct {
	cfg       Config
	log       *zap.Logger
	collector *vecprom.Collector
}

// NewRunner validates cfg and returns a runner for it. A nil logger
// disables logging.
func NewRunner(cfg Config, log *zap.Logger) (*Runner, error) {
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}, nil
}

// WithCollector makes the runner push a snapshot to c after every step.
func (r *Runner) WithCollector(c *vecprom.Collector) *Runner {
	r.collector = c
	return r
}

// Run executes the workload. Allocation failures are recorded on the
// failing step and the run continues with the next one; any other error,
// or cancellation of ctx between steps, aborts the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	v, region, err := r.build()
	if err != nil {
		return nil, err
	}
	defer v.Reset()

	res := &Result{
		Growth:    vector.PolicyName(v.Growth()),
		Allocator: r.cfg.Allocator.Kind,
	}
	r.log.Info("run started",
		zap.String("growth", res.Growth),
		zap.String("allocator", res.Allocator),
		zap.Int("steps", len(r.cfg.Workload)))

	var next int64
	start := time.Now()
	for i, s := range r.cfg.Workload {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bench: step %d: %w", i, err)
		}

		stepStart := time.Now()
		done, err := apply(v, s, &next)
		sr := StepResult{
			Op:      s.Op,
			Count:   s.Count,
			Done:    done,
			Elapsed: time.Since(stepStart),
			Len:     v.Len(),
			Cap:     v.Cap(),
		}
		if err != nil {
			if !errors.Is(err, vector.ErrOutOfMemory) {
				return nil, fmt.Errorf("bench: step %d (%s): %w", i, s.Op, err)
			}
			sr.Error = err.Error()
			r.log.Warn("step ran out of memory", zap.Int("step", i), zap.String("op", string(s.Op)), zap.Int("done", done), zap.Error(err))
		}
		res.Steps = append(res.Steps, sr)

		r.log.Debug("step finished",
			zap.Int("step", i),
			zap.String("op", string(s.Op)),
			zap.Int("done", done),
			zap.Duration("elapsed", sr.Elapsed),
			zap.Int("len", sr.Len),
			zap.Int("cap", sr.Cap))
		r.observe(v, region)
	}
	res.Elapsed = time.Since(start)
	res.Vector = v.Metrics()
	if region != nil {
		m := region.Metrics()
		res.Region = &m
	}

	r.log.Info("run finished",
		zap.Duration("elapsed", res.Elapsed),
		zap.Uint64("grows", res.Vector.Grows),
		zap.Uint64("shrinks", res.Vector.Shrinks),
		zap.Uint64("grow_failures", res.Vector.GrowFailures))
	return res, nil
}

func (r *Runner) build() (*vector.Vector[int64], *arena.Region, error) {
	opts := []vector.Option[int64]{vector.WithLogger[int64](r.log.Named("vector"))}

	var region *arena.Region
	if r.cfg.Allocator.Kind == AllocArena {
		region = arena.NewRegion(r.cfg.Allocator.ChunkSize, r.cfg.Allocator.Limit)
		a, err := vector.NewArenaAllocator[int64](region)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, vector.WithAllocator[int64](a))
	}

	v, err := vector.FromConfig(r.cfg.Vector, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("bench: build vector: %w", err)
	}
	return v, region, nil
}

func (r *Runner) observe(v *vector.Vector[int64], region *arena.Region) {
	if r.collector == nil {
		return
	}
	r.collector.ObserveVector(Name, v.Metrics())
	if region != nil {
		r.collector.ObserveRegion(Name, region.Metrics())
	}
}
