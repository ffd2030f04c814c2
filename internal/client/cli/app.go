package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/brewhaven/internal/client/client"
	"github.com/dmitrijs2005/brewhaven/internal/client/config"
	"github.com/dmitrijs2005/brewhaven/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) *App {
	apiClient := client.NewBrewHavenClient(c.ServerURL, c.RequestTimeout)
	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to Brew Haven CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentEmail() != ""
}

func (a *App) getStatus() string {
	if email := a.authService.CurrentEmail(); email != "" {
		return fmt.Sprintf(" (%s)", email)
	}
	return ""
}
