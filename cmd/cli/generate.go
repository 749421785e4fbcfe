package main

import (
	"fmt"
	"sort"
	"strings"

	"lotogen/adapters/excel"
	"lotogen/app"
	"lotogen/domain/filter"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		target       int
		attempts     int
		workers      int
		seed         int64
		window       int
		poolSize     int
		poolStrategy string
		rank         bool
		keep         int
		noDedup      bool
		open         bool
		filters      []string
		persist      bool
		xlsxOut      string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate games that pass the statistical filter",
		Long: `Sample random 15-number games and keep the ones whose statistics fall inside
the filter bounds, until the target count or the attempt budget is reached.

The filter starts from FILTER_FILE (or the built-in defaults, or every
combination with --open) and each --filter field=min:max overrides one bound.

Example: lotogen generate --draws resultados.xlsx --target 10 --seed 42 --rank --filter soma=180:210`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			defaults := c.Config.Generator

			base := c.Config.Filter
			if open {
				base = filter.Open()
			}
			raw, err := parseRangeFlags(filters)
			if err != nil {
				return err
			}
			overrides, err := filter.ParseOverrides(raw)
			if err != nil {
				return err
			}
			cfg, err := filter.NewConfig(base, overrides)
			if err != nil {
				return err
			}

			req := app.GenerateRequest{
				TargetCount:  defaults.TargetCount,
				MaxAttempts:  defaults.MaxAttempts,
				Workers:      defaults.Workers,
				Seed:         defaults.ResolveSeed(),
				Filter:       &cfg,
				PoolSize:     defaults.PoolSize,
				PoolStrategy: poolStrategy,
				Window:       window,
				Deduplicate:  defaults.Deduplicate && !noDedup,
				Rank:         rank,
				Keep:         keep,
				CheckEvery:   defaults.CheckEvery,
				Persist:      persist,
			}
			flags := cmd.Flags()
			if flags.Changed("target") {
				req.TargetCount = target
			}
			if flags.Changed("attempts") {
				req.MaxAttempts = attempts
			}
			if flags.Changed("workers") {
				req.Workers = workers
			}
			if flags.Changed("seed") {
				req.Seed = seed
			}
			if flags.Changed("pool-size") {
				req.PoolSize = poolSize
			}

			result, genErr := c.Generation.Generate(cmd.Context(), req)
			if result == nil {
				return genErr
			}
			if asJSON {
				if err := printJSON(result); err != nil {
					return err
				}
			} else {
				printGenerateResult(result, req.Seed)
			}
			if genErr != nil {
				return fmt.Errorf("generation interrupted: %w", genErr)
			}

			if xlsxOut != "" && result.Run != nil {
				if err := excel.WriteGames(xlsxOut, result.Run); err != nil {
					return err
				}
				fmt.Printf("📄 Games written to %s\n", xlsxOut)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "Games to generate (default TARGET_COUNT)")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "Maximum candidates sampled (default MAX_ATTEMPTS)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel generation workers (default WORKERS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default SEED, or time-based)")
	cmd.Flags().IntVar(&window, "window", 0, "Most recent draws considered (0 = all)")
	cmd.Flags().IntVar(&poolSize, "pool-size", 0, "Sample from the best N dezenas, 15..25 (default POOL_SIZE)")
	cmd.Flags().StringVar(&poolStrategy, "pool-strategy", app.PoolByFrequency, "How the pool is chosen: frequency|score")
	cmd.Flags().BoolVar(&rank, "rank", false, "Order games by historical score")
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the N best games after ranking (0 = all)")
	cmd.Flags().BoolVar(&noDedup, "allow-duplicates", false, "Allow the same game more than once")
	cmd.Flags().BoolVar(&open, "open", false, "Start from an unrestricted filter instead of the configured one")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Override one bound, e.g. soma=170:220 or pares=7")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store the run in the database (requires DATABASE_URL)")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Export the games to an .xlsx or .csv file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printGenerateResult(r *app.GenerateResult, seed int64) {
	fmt.Printf("\n🎲 GENERATION RESULTS\n")
	fmt.Printf("Run: %s\n", r.RunID)
	fmt.Printf("Seed: %d, history: %d draws, universe: %d dezenas\n", seed, r.CorpusDraws, len(r.Universe))
	fmt.Printf("Games: %d, attempts: %d, runtime: %dms\n", len(r.Games), r.AttemptsUsed, r.RuntimeMs)
	if r.Exhausted {
		fmt.Printf("⚠️  Attempt budget exhausted before the target was reached\n")
	}
	if r.Cancelled {
		fmt.Printf("⚠️  Cancelled; showing the games accepted so far\n")
	}
	if r.Persisted {
		fmt.Printf("💾 Stored as run %s\n", r.RunID)
	}

	fmt.Println()
	for i, g := range r.Games {
		s := g.Stats
		line := fmt.Sprintf("%3d. %s  pares=%d primos=%d mult3=%d fib=%d soma=%d rep=%d",
			i+1, joinNumbers(g.Candidate.Numbers.Numbers()),
			s.Pares, s.Primos, s.Mult3, s.Fibonacci, s.Soma, s.Repetidas)
		if g.HasScore {
			line += fmt.Sprintf(" score=%.2f", g.Score)
		}
		fmt.Println(line)
	}

	if len(r.Rejections) > 0 {
		fields := make([]string, 0, len(r.Rejections))
		for f := range r.Rejections {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = fmt.Sprintf("%s=%d", f, r.Rejections[f])
		}
		fmt.Printf("\nRejections: %s\n", strings.Join(parts, ", "))
	}
}
