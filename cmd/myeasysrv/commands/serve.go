package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myeasyserver/myeasyserver/internal/handler"
	"github.com/myeasyserver/myeasyserver/internal/server"
	"github.com/myeasyserver/myeasyserver/internal/service"
	"github.com/myeasyserver/myeasyserver/models"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the backend server",
		Long: `Run the backend HTTP server until SIGTERM, SIGINT or SIGQUIT.

The server binds application.socket when set, otherwise
application.ip_address and application.port. Debug deployments bind
0.0.0.0:8080.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	s := a.settings

	if err := s.Dirs.Ensure(s.Deployment == models.DeploymentSystem); err != nil {
		return fmt.Errorf("error creating directories: %w", err)
	}

	services, err := service.NewServices(a.buildInfo, s.Config, a.logger)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}
	handlers, err := handler.NewHandlers(services, a.logger)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	listen, err := server.NewListenConfig(s.Config, s.Deployment)
	if err != nil {
		return fmt.Errorf("error resolving listen address: %w", err)
	}
	srv, err := server.NewServer(handlers, listen, a.logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	a.logger.Info().Str("listen", listen.String()).Msg("starting server")
	return srv.RunServer()
}
