package main

import (
	"fmt"
	"os"

	"github.com/lychee-technology/formdesk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg := formdesk.LoadConfigFromEnv()

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		panic(fmt.Errorf("failed to set up logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := rootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg formdesk.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

func rootCmd(cfg *formdesk.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "formtool",
		Short: "Build, inspect and fill form definitions",
		Long: `formtool works with saved form definitions stored as JSON or YAML documents.
Forms are addressed by UUID or by the short reference printed by "formtool forms".`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfg.Seed.Directory, "forms-dir", cfg.Seed.Directory, "directory of saved form documents")
	root.PersistentFlags().BoolVar(&cfg.Seed.Strict, "strict", cfg.Seed.Strict, "fail on malformed form documents instead of skipping them")

	root.AddCommand(formsCmd(cfg))
	root.AddCommand(schemaCmd(cfg))
	root.AddCommand(fillCmd(cfg))
	root.AddCommand(newFormCmd(cfg))
	return root
}
