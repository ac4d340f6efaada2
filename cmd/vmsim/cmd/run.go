package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
	"github.com/sarchlab/vmsim/mem/acceptancetests/memaccessagent"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/monitoring"
	"github.com/sarchlab/vmsim/sim"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Run a workload against the virtual memory.",
		Long: `Run performs reads and writes following an access pattern, ` +
			`checks every read against the last value written, and prints ` +
			`the paging statistics.`,
		Args: cobra.NoArgs,
		RunE: runWorkload,
	}

	flags := c.Flags()
	flags.String("pattern", "random",
		"Access pattern: sequential, cyclic, strided or random.")
	flags.Int("reads", 10000, "Number of reads.")
	flags.Int("writes", 10000, "Number of writes.")
	flags.Int64("seed", 1, "Seed of the random choices.")
	flags.Uint64("stride", 0,
		"Stride of the strided pattern. One page plus one word if 0.")
	flags.Bool("monitor", false, "Serve the progress over HTTP.")
	flags.Int("monitor-port", 0, "Port of the monitor. Random if 0.")
	flags.Bool("open-browser", false, "Open the monitor in a browser.")

	return c
}

func runWorkload(c *cobra.Command, _ []string) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	patternName, _ := c.Flags().GetString("pattern")
	pattern, err := memaccessagent.ParsePattern(patternName)
	if err != nil {
		return err
	}

	logger := s.logger(c.ErrOrStderr())

	m := mmu.MakeBuilder().WithConfig(s.cfg).Build("MMU")
	if s.logLevel <= slog.LevelDebug {
		m.AcceptHook(sim.NewEventLogger(logger, slog.LevelDebug))
	}

	t, err := attachTracers(s, m)
	if err != nil {
		return err
	}

	reads, _ := c.Flags().GetInt("reads")
	writes, _ := c.Flags().GetInt("writes")
	seed, _ := c.Flags().GetInt64("seed")
	stride, _ := c.Flags().GetUint64("stride")

	builder := memaccessagent.MakeBuilder().
		WithMemory(m).
		WithGeometry(s.cfg).
		WithPattern(pattern).
		WithReadLeft(reads).
		WithWriteLeft(writes).
		WithSeed(seed).
		WithStride(stride).
		WithLogger(logger)

	monitor, bar := startMonitor(c, s, t, uint64(reads+writes))
	if bar != nil {
		builder = builder.WithProgress(bar)
	}

	agent := builder.Build("Agent")
	if monitor != nil {
		monitor.RegisterComponent(agent.Name(), agent)
	}

	logger.Info("running workload",
		"pattern", pattern,
		"offset_width", s.cfg.OffsetWidth,
		"tables_depth", s.cfg.TablesDepth,
		"num_frames", s.cfg.NumFrames)

	runErr := agent.Run()

	if monitor != nil {
		monitor.CompleteProgressBar(bar)
	}

	printStats(c.OutOrStdout(), m, t.counter)

	if path := t.flush(); path != "" {
		fmt.Fprintf(c.OutOrStdout(), "trace written to %s\n", path)
	}

	return runErr
}

func startMonitor(
	c *cobra.Command,
	s settings,
	t *tracers,
	total uint64,
) (*monitoring.Monitor, *monitoring.ProgressBar) {
	enabled, _ := c.Flags().GetBool("monitor")
	if !enabled {
		return nil, nil
	}

	port, _ := c.Flags().GetInt("monitor-port")
	monitor := monitoring.NewMonitor().WithPortNumber(port)
	monitor.RegisterComponent("Tasks", t.counter)
	bar := monitor.CreateProgressBar("Accesses", total)

	url := monitor.StartServer()

	if open, _ := c.Flags().GetBool("open-browser"); open {
		if err := browser.OpenURL(url); err != nil {
			s.logger(c.ErrOrStderr()).Warn("cannot open browser",
				"url", url, "error", err)
		}
	}

	return monitor, bar
}
