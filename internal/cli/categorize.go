package cli

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCategorizeCommand() *cobra.Command {
	var flags statementFlags

	cmd := &cobra.Command{
		Use:   "categorize <statement.csv>",
		Short: "Categorize a statement and print it as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, dropped, err := flags.loadStatement(args[0])
			if err != nil {
				return err
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write([]string{"date", "amount", "description", "category"}); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			for _, tx := range txs {
				rec := []string{
					tx.RawDate,
					strconv.FormatFloat(tx.Amount, 'f', 2, 64),
					tx.Description,
					tx.Category,
				}
				if err := w.Write(rec); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			if dropped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "dropped %d unreadable rows\n", dropped)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
