// Command vocab runs the vocabulary learning API and its maintenance tasks.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/deppfellow/vocab/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "vocab",
		Short:         "Vocabulary learning backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (defaults to $"+config.EnvConfigFile+")")

	root.AddCommand(newServeCommand(), newMigrateCommand(), newImportWordsCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the logger every command shares.
// The returned cleanup flushes New Relic.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	cleanup := func() {
		if loggerService != nil {
			loggerService.Shutdown()
		}
	}

	return cfg, &log, loggerService, cleanup, nil
}
