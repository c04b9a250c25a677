package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/vector/internal/bench"
	"github.com/pavanmanishd/vector/vecprom"
)

// runFlags holds the flag values of the run command.
type runFlags struct {
	config     string
	growth     string
	block      int
	allocator  string
	metricsOut string
}

// NewRunCommand creates the "run" command.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workload and report the results",
		Long: `Run a workload against a vector and print one row per step.

Without --config a built-in mixed workload is used. --growth, --block and
--allocator override the corresponding config values.

Examples:
  vecbench run
  vecbench run --config bench.yaml --growth double
  vecbench run --allocator arena --json --metrics-out metrics.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runBench(cmd.Context(), cmd.OutOrStdout(), cfg, flags.metricsOut)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "Path to a bench YAML config")
	cmd.Flags().StringVar(&flags.growth, "growth", "", "Growth policy: one, double, block")
	cmd.Flags().IntVar(&flags.block, "block", 0, "Block size for the block growth policy")
	cmd.Flags().StringVar(&flags.allocator, "allocator", "", "Allocator: heap, arena")
	cmd.Flags().StringVar(&flags.metricsOut, "metrics-out", "", "Write Prometheus text metrics to this file")

	return cmd
}

// loadRunConfig reads the config file, if any, and applies flag overrides.
func loadRunConfig(cmd *cobra.Command, flags *runFlags) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if flags.config != "" {
		var err error
		if cfg, err = bench.LoadConfig(flags.config); err != nil {
			return bench.Config{}, err
		}
	}

	if cmd.Flags().Changed("growth") {
		cfg.Vector.Growth.Strategy = flags.growth
	}
	if cmd.Flags().Changed("block") {
		cfg.Vector.Growth.Block = flags.block
	}
	if cmd.Flags().Changed("allocator") && flags.allocator != cfg.Allocator.Kind {
		cfg.Allocator = bench.AllocatorConfig{Kind: flags.allocator}
	}
	return cfg, nil
}

func runBench(ctx context.Context, w io.Writer, cfg bench.Config, metricsOut string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	runner, err := bench.NewRunner(cfg, log)
	if err != nil {
		return err
	}

	var collector *vecprom.Collector
	if metricsOut != "" {
		collector = vecprom.NewCollector("vecbench")
		runner.WithCollector(collector)
	}

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if collector != nil {
		if err := writeMetrics(metricsOut, collector); err != nil {
			return err
		}
		log.Debug("metrics written", zap.String("path", metricsOut))
	}

	if jsonOutput {
		return writeJSON(w, res)
	}
	printResultText(w, res)
	return nil
}

// writeMetrics writes the collector's families in the Prometheus text format.
func writeMetrics(path string, c *vecprom.Collector) error {
	families, err := vecprom.NewRegistry(c).Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			_ = f.Close()
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return f.Close()
}

// printResultText prints one row per step followed by a summary.
//
//	OP              COUNT    DONE     LEN      CAP      ELAPSED
//	append          1000     1000     1000     1000     1.2ms
func printResultText(w io.Writer, res *bench.Result) {
	fmt.Fprintf(w, "growth: %s  allocator: %s\n\n", res.Growth, res.Allocator)
	fmt.Fprintf(w, "%-15s %-8s %-8s %-8s %-8s %-12s %s\n",
		"OP", "COUNT", "DONE", "LEN", "CAP", "ELAPSED", "ERROR")
	for _, s := range res.Steps {
		errText := "-"
		if s.Error != "" {
			errText = s.Error
		}
		fmt.Fprintf(w, "%-15s %-8d %-8d %-8d %-8d %-12s %s\n",
			s.Op, s.Count, s.Done, s.Len, s.Cap, s.Elapsed, errText)
	}

	m := res.Vector
	fmt.Fprintf(w, "\ntotal %s, grows %d, shrinks %d, grow failures %d\n",
		res.Elapsed, m.Grows, m.Shrinks, m.GrowFailures)
	if r := res.Region; r != nil {
		fmt.Fprintf(w, "arena: %d chunks, %d/%d bytes, reallocs in place %d, moved %d\n",
			r.NumChunks, r.SizeInUse, r.Capacity, r.InPlaceReallocs, r.MovedReallocs)
	}
}
