package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/client/client"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer

	// email of the signed-in account, shown in the prompt
	email string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

// Run starts the REPL and closes the connection when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.client.SignedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() && a.email != "" {
		return a.email
	}
	return "guest"
}

// withTimeout bounds a single request by the configured timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
