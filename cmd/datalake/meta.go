package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newMetaCmd(rootDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <name>",
		Short: "Show the catalog entry for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLake(*rootDir)
			if err != nil {
				return err
			}

			entry, err := l.Meta(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
