package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newLsCmd(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all registered tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLake(*rootDir)
			if err != nil {
				return err
			}

			tables, err := l.Tables()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Index", "Table Name", "Format", "File"})
			for _, t := range tables {
				table.Append([]string{
					strconv.Itoa(t.Index),
					t.Name,
					string(t.Format),
					t.File,
				})
			}
			table.Render()
			return nil
		},
	}
}
