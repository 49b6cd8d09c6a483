package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/desktop"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
)

// boot starts a desktop with its control loop for one command. Local
// commands log warnings only unless a level was asked for.
func boot(cmd *cobra.Command) (*desktop.Desktop, context.CancelFunc, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Development = cfg.Logging.Development
	logCfg.Level = "warn"
	if cmd.Flags().Changed("log-level") {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	d, err := desktop.New(ctx, cfg.Desktop, logger, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	go d.Run(ctx)

	return d, func() {
		d.Stop()
		cancel()
		_ = logger.Sync()
	}, nil
}
