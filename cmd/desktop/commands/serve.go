package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/server"
)

var (
	servePort string
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the desktop server",
	Long: `Start the HTTP server with the REST API, the websocket event stream
and the Prometheus metrics endpoint.`,
	Example: `  # Start server on default port (8000)
  desktop serve

  # Start server on custom port with a mounted folder
  desktop serve --port 9090 --mount ~/Pictures`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "server port (default is 8000)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen address (default is 0.0.0.0)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		srv.Logger().Error("Server error", zap.Error(err))
		return err
	}
	srv.Logger().Info("Shutting down gracefully")
	return nil
}
