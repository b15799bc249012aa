// Command datalake manages a local data lake: a catalog of CSV and Parquet
// files that can be queried by logical name through the embedded SQL engine.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/config"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/lake"
	"github.com/Zhiwei-Joel-Yan/zhiwei-datalake/internal/vcs"
)

func newRootCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:   "datalake",
		Short: "Manage and query a local data lake of CSV and Parquet files",
		Long: `datalake tracks tabular files in a managed directory, infers their
schemas, and lets you query them by logical name:

  datalake add orders ./orders.csv
  datalake query "select * from orders where amount > 100"`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "managed storage root (default from DATALAKE_ROOT)")

	cmd.AddCommand(
		newAddCmd(&rootDir),
		newLsCmd(&rootDir),
		newMetaCmd(&rootDir),
		newQueryCmd(&rootDir),
	)

	return cmd
}

// newLake builds the lake from configuration, with the --root flag taking
// precedence over the environment.
func newLake(flagRoot string) (*lake.Lake, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	root := cfg.Root
	if flagRoot != "" {
		root = flagRoot
	}

	var log *zap.Logger
	if cfg.Environment == config.EnvProd {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	opts := []lake.Option{lake.WithLogger(log.Sugar())}
	if cfg.GitSnapshots {
		opts = append(opts, lake.WithSnapshotter(vcs.NewGit(root)))
	}

	return lake.New(root, opts...), nil
}
