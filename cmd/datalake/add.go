package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(rootDir *string) *cobra.Command {
	var descriptionPath string

	cmd := &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Register a CSV or Parquet file under a logical table name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLake(*rootDir)
			if err != nil {
				return err
			}

			entry, err := l.AddTable(args[0], args[1], descriptionPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added table %q as index %d\n", args[0], entry.Index)
			fmt.Fprintf(cmd.OutOrStdout(), "  File: %s\n", entry.File)
			if entry.DescriptionFile != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Description: %s\n", *entry.DescriptionFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&descriptionPath, "description", "d", "", "path to a markdown description file")

	return cmd
}
