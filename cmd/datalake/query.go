package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/output"
)

func newQueryCmd(rootDir *string) *cobra.Command {
	var (
		format  string
		limit   int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL query against registered tables",
		Long: `Run a SQL query in which logical table names are rewritten to managed
file paths before execution, e.g.:

  datalake query "select id, amount from orders where amount > 100"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}

			formatter, ok := output.New(format, cmd.OutOrStdout())
			if !ok {
				return fmt.Errorf("unsupported format %q (supported: json, jsonl, csv, table)", format)
			}

			l, err := newLake(*rootDir)
			if err != nil {
				return err
			}

			rel, rewritten, err := l.Query(args[0])
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "Rewritten SQL: %s\n", rewritten)
			}

			rows, err := rel.Rows()
			if err != nil {
				return err
			}

			if limit > 0 && len(rows) > limit {
				rows = rows[:limit]
			}

			return formatter.Format(rows)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "jsonl", "output format: json, jsonl, csv, table")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit number of rows (0 = unlimited)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the rewritten SQL to stderr")

	return cmd
}
