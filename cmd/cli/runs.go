package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"lotogen/domain/core"
	"lotogen/domain/lottery"
	"lotogen/internal/report"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored runs, or show one of them",
		Long: `Without arguments, list the most recent stored runs. With a run ID, print
that run as markdown. Requires DATABASE_URL.

Example: lotogen runs --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			if !c.Persistent() {
				return fmt.Errorf("no database configured: set DATABASE_URL")
			}

			if len(args) == 1 {
				id, err := core.ParseRunID(args[0])
				if err != nil {
					return err
				}
				r, err := c.Generation.GetRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(report.Markdown(report.Input{Title: "Run " + id.String(), Run: r}))
				return err
			}

			summaries, err := c.Generation.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No runs stored yet")
				return nil
			}
			for _, s := range summaries {
				status := "complete"
				if s.Exhausted {
					status = "exhausted"
				}
				fmt.Printf("%s  %s  seed=%d  games=%d/%d  attempts=%d  %s\n",
					s.ID, s.CreatedAt.Format(time.RFC3339), s.Seed, s.GameCount, s.TargetCount, s.AttemptsUsed, status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs listed")
	return cmd
}

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate [run-id] [15 numbers...]",
		Short: "Count the hits of a stored run against an actual result",
		Long: `Compare every game of a stored run with the numbers actually drawn.

Example: lotogen evaluate 0190b3f0-... 1 2 3 5 8 10 11 13 14 16 18 20 21 23 25`,
		Args: cobra.ExactArgs(1 + lottery.DrawSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseRunID(args[0])
			if err != nil {
				return err
			}
			numbers := make([]int, 0, lottery.DrawSize)
			for _, a := range args[1:] {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("not a number: %q", a)
				}
				numbers = append(numbers, n)
			}
			result, err := lottery.NewDraw(0, time.Time{}, numbers)
			if err != nil {
				return err
			}

			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			hits, err := c.Generation.EvaluateRun(cmd.Context(), id, result)
			if err != nil {
				return err
			}
			best := 0
			for i, h := range hits {
				fmt.Printf("%3d. %d hits\n", i+1, h)
				if h > best {
					best = h
				}
			}
			fmt.Printf("\n🏆 Best: %d hits\n", best)
			return nil
		},
	}
	return cmd
}
