package main

import (
	"context"
	"os"

	"github.com/myeasyserver/myeasyserver/cmd/myeasysrv/commands"
	"github.com/myeasyserver/myeasyserver/internal/logger"
	"github.com/myeasyserver/myeasyserver/models"
)

// set with -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("myeasysrv")

	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	if err := commands.Execute(context.Background(), buildInfo, log); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
