package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/smelterlab/alufocus/internal/config"
	"github.com/smelterlab/alufocus/internal/logging"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "ALUFOCUS_LOG_LEVEL"

// setupLogging configures the global logger from config file, environment,
// and CLI flags, and attaches a CLI-tagged logger to the command context.
func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loggingCfg := cfg.Logging
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}

	config.InitLogger(loggingCfg)

	logger := logging.ComponentLogger(config.GetLogger(), "cli")
	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

// loadConfig reads the YAML config named by --config, falling back to
// defaults when the flag is unset or the file is absent.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
