package main

import (
	"fmt"
	"os"

	"lotogen/app"
	"lotogen/internal/config"
	"lotogen/internal/report"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var window int
	var asJSON bool
	var htmlOut string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show frequency, delay and distribution statistics of the draw history",
		Long: `Compute the statistics report of the draw history: per-dezena frequency and
delay, the distribution of each candidate statistic, the last draw and the
filter bounds derived from history.

Example: lotogen stats --draws resultados.xlsx --window 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			r, err := c.Stats.Report(cmd.Context(), window)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(r)
			}

			md := report.Markdown(report.Input{Stats: r})
			if htmlOut != "" {
				page, err := report.Page("Lotofácil statistics", md)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlOut, page, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", htmlOut, err)
				}
				fmt.Printf("📄 Report written to %s\n", htmlOut)
				return nil
			}
			_, err = os.Stdout.Write(md)
			return err
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Most recent draws considered (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&htmlOut, "html", "", "Write the report as an HTML page to this path")
	return cmd
}

func newDeriveFilterCmd() *cobra.Command {
	var window int
	var low, high float64

	cmd := &cobra.Command{
		Use:   "derive-filter",
		Short: "Derive filter bounds from percentiles of the draw history",
		Long: `Derive a [filter] section from the low and high percentiles of each
statistic across the history. The output is TOML ready for FILTER_FILE.

Example: lotogen derive-filter --low 5 --high 95 > lotogen.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			cfg, err := c.Stats.DeriveFilter(cmd.Context(), window, low, high)
			if err != nil {
				return err
			}
			return config.FileConfig{Filter: config.FilterSection(cfg)}.Encode(os.Stdout)
		},
	}

	cmd.Flags().IntVar(&window, "window", 0, "Most recent draws considered (0 = all)")
	cmd.Flags().Float64Var(&low, "low", app.DefaultLowPercentile, "Lower percentile")
	cmd.Flags().Float64Var(&high, "high", app.DefaultHighPercentile, "Upper percentile")
	return cmd
}
