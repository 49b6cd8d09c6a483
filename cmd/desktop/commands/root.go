package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
)

var (
	manifest string
	mount    string
	debug    bool
	logLevel string
	devLogs  bool

	rootCmd = &cobra.Command{
		Use:   "desktop",
		Short: "J-OS - a simulated desktop operating system",
		Long: `J-OS simulates a desktop operating system: a virtual file system,
a window compositor and a process table running Finder, Notes, Terminal,
Preview, About, Contact and Debug.

Configuration comes from the environment (DESKTOP_*, LOG_*, PORT, ...) and
can be overridden with flags.`,
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&manifest, "manifest", "", "YAML or TOML manifest seeding the file system")
	flags.StringVar(&mount, "mount", "", "host directory mounted read-only under /Volumes")
	flags.BoolVar(&debug, "debug", false, "enable debug mode for the Debug application")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&devLogs, "dev", false, "development logging (colored console output)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Desktop.Manifest = manifest
	}
	if flags.Changed("mount") {
		cfg.Desktop.Mount = mount
	}
	if flags.Changed("debug") {
		cfg.Desktop.Debug = debug
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = devLogs
	}
	return cfg, nil
}
