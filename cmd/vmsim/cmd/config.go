package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/spf13/cobra"
)

const envPrefix = "VMSIM_"

// settings are the options shared by all commands.
type settings struct {
	cfg           vm.Config
	logLevel      slog.Level
	trace         string
	traceFile     string
	clickHouseDSN string
}

func addConfigFlags(c *cobra.Command) {
	defaults := vm.DefaultConfig()
	flags := c.PersistentFlags()

	flags.String("env-file", ".env",
		"File with VMSIM_* variables. Ignored if missing.")
	flags.Uint64("offset-width", defaults.OffsetWidth,
		"Bits of the in-page offset and of each table index.")
	flags.Uint64("tables-depth", defaults.TablesDepth,
		"Number of page table levels.")
	flags.Uint64("num-frames", defaults.NumFrames,
		"Number of physical frames, the root table included.")
	flags.String("log-level", "warn",
		"Log level: debug, info, warn or error.")
	flags.String("trace", "none",
		"Trace backend: none, csv, sqlite or clickhouse.")
	flags.String("trace-file", "",
		"Trace file name without extension. Generated if empty.")
	flags.String("clickhouse-dsn", "clickhouse://localhost:9000/vmsim",
		"ClickHouse server of the clickhouse trace backend.")
	flags.Bool("unique-ids", false,
		"Use globally unique task IDs, for traces shared by several runs.")
}

// loadSettings resolves the settings. A flag given on the command line wins
// over a VMSIM_* environment variable, which wins over the flag default.
func loadSettings(c *cobra.Command) (settings, error) {
	s := settings{}

	envFile, _ := c.Flags().GetString("env-file")
	if err := loadEnvFile(envFile); err != nil {
		return s, err
	}

	var err error

	s.cfg.OffsetWidth, err = uint64Setting(c, "offset-width")
	if err != nil {
		return s, err
	}

	s.cfg.TablesDepth, err = uint64Setting(c, "tables-depth")
	if err != nil {
		return s, err
	}

	s.cfg.NumFrames, err = uint64Setting(c, "num-frames")
	if err != nil {
		return s, err
	}

	if err := s.cfg.Validate(); err != nil {
		return s, err
	}

	level := stringSetting(c, "log-level")
	if err := s.logLevel.UnmarshalText([]byte(level)); err != nil {
		return s, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	s.trace = stringSetting(c, "trace")
	switch s.trace {
	case "none", "csv", "sqlite", "clickhouse":
	default:
		return s, fmt.Errorf("unknown trace backend %q", s.trace)
	}

	s.traceFile = stringSetting(c, "trace-file")
	s.clickHouseDSN = stringSetting(c, "clickhouse-dsn")

	return s, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func stringSetting(c *cobra.Command, flag string) string {
	value, _ := c.Flags().GetString(flag)
	if c.Flags().Changed(flag) {
		return value
	}

	if env, ok := os.LookupEnv(envName(flag)); ok {
		return env
	}

	return value
}

func uint64Setting(c *cobra.Command, flag string) (uint64, error) {
	value, _ := c.Flags().GetUint64(flag)
	if c.Flags().Changed(flag) {
		return value, nil
	}

	env, ok := os.LookupEnv(envName(flag))
	if !ok {
		return value, nil
	}

	parsed, err := strconv.ParseUint(env, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", envName(flag), err)
	}

	return parsed, nil
}

func (s settings) logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: s.logLevel,
	}))
}
