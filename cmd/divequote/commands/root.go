package commands

import (
	"fmt"
	"os"

	"divequote/internal/config"
	"divequote/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type appContext struct {
	cfg    *config.Config
	logger *zap.Logger
}

func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func NewRootCmd() *cobra.Command {
	app := &appContext{}

	root := &cobra.Command{
		Use:           "divequote",
		Short:         "Quotes for hull cleaning and dive services",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			app.cfg = cfg
			app.logger = zapLogger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	root.AddCommand(botCmd(app), quoteCmd(app), servicesCmd(app), migrateCmd(app))
	return root
}
