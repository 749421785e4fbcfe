package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/container"

	"github.com/spf13/cobra"
)

// Flags shared by every command
var (
	drawsFile string
	logLevel  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:          "lotogen",
		Short:        "Lotofácil statistics and filtered game generation",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&drawsFile, "draws", "", "Draw history (.xlsx or .csv); overrides DRAWS_FILE")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE; overrides LOG_LEVEL")

	rootCmd.AddCommand(
		newStatsCmd(),
		newDeriveFilterCmd(),
		newGenerateCmd(),
		newRunsCmd(),
		newEvaluateCmd(),
		newMergeCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openContainer loads configuration and wires the services
func openContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if drawsFile != "" {
		cfg.Data.DrawsFile = drawsFile
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	c, err := container.New(cfg, internal.NewLogger(internal.ParseLogLevel(level)))
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	if err := c.Services(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseRangeFlags turns ["soma=170:220", "pares=7"] into filter overrides
func parseRangeFlags(values []string) (map[string][]int, error) {
	out := make(map[string][]int, len(values))
	for _, v := range values {
		key, bounds, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("filter %q: expected field=min:max", v)
		}
		loRaw, hiRaw, pair := strings.Cut(bounds, ":")
		if !pair {
			hiRaw = loRaw
		}
		low, err := strconv.Atoi(strings.TrimSpace(loRaw))
		if err != nil {
			return nil, fmt.Errorf("filter %q: bad minimum: %w", v, err)
		}
		high, err := strconv.Atoi(strings.TrimSpace(hiRaw))
		if err != nil {
			return nil, fmt.Errorf("filter %q: bad maximum: %w", v, err)
		}
		out[strings.TrimSpace(key)] = []int{low, high}
	}
	return out, nil
}

func joinNumbers(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}
