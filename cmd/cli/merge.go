package main

import (
	"fmt"

	"lotogen/adapters/excel"
	"lotogen/domain/lottery"

	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var out string
	var toDB bool

	cmd := &cobra.Command{
		Use:   "merge [history-file] [new-results-file]",
		Short: "Merge newly published results into the draw history",
		Long: `Merge two draw files by contest number. Repeated contests are kept once and
a contest with two different results is an error. The merged history is
written to --out (default: the history file) and, with --db, upserted into
the draws table.

Example: lotogen merge resultados.xlsx novos.csv --db`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := excel.NewDataReader(args[0]).ReadDraws()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			incoming, err := excel.NewDataReader(args[1]).ReadDraws()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}
			merged, err := lottery.MergeHistory(history, incoming)
			if err != nil {
				return err
			}

			target := out
			if target == "" {
				target = args[0]
			}
			if err := excel.WriteDraws(target, merged); err != nil {
				return err
			}
			fmt.Printf("📄 %d draws written to %s (%d new)\n", len(merged), target, len(merged)-len(history))

			if !toDB {
				return nil
			}
			c, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Draws == nil {
				return fmt.Errorf("no database configured: set DATABASE_URL")
			}
			inserted, err := c.Draws.UpsertDraws(cmd.Context(), merged)
			if err != nil {
				return err
			}
			fmt.Printf("💾 %d draws inserted into the database\n", inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (.xlsx or .csv); defaults to the history file")
	cmd.Flags().BoolVar(&toDB, "db", false, "Also upsert the merged history into the database")
	return cmd
}
