package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/behzade/storefront/internal/config"
	"github.com/behzade/storefront/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what PersistentPreRunE loaded to the subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront catalog API and query tool",
		Long: `storefront serves the product catalog API (list, search, detail, checkout quote)
and runs catalog queries from the command line.

Configuration comes from defaults, an optional YAML file (--config, or ./storefront.yaml)
and STOREFRONT_ environment variables, e.g. STOREFRONT_CATALOG_SOURCE=file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.verbose)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newQueryCmd(a),
		newRoutesCmd(a),
		newCatalogCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			PersistentPreRunE: func(*cobra.Command, []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "storefront %s\n", version)
			},
		},
	)
	return rootCmd
}
