package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGophAuthClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

// call runs fn under the configured request timeout.
func (a *App) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}
	return fn(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err in a form meant for a person at the terminal.
func (a *App) report(err error) {
	var se *client.ServerError
	switch {
	case errors.As(err, &se):
		a.printf("Error: %s\n", se.Message)
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Error: server unavailable\n")
	case errors.Is(err, client.ErrNotLoggedIn), errors.Is(err, client.ErrUnauthorized):
		a.printf("Error: please log in first\n")
	default:
		a.printf("Error: %v\n", err)
	}
}

func (a *App) printUser(u *rpc.User) {
	a.printf("id:       %s\n", u.ID)
	a.printf("email:    %s\n", u.Email)
	a.printf("name:     %s %s\n", u.FirstName, u.LastName)
	if u.CompanyName != nil {
		a.printf("company:  %s\n", *u.CompanyName)
	}
	tenant := u.TenantID
	if tenant == "" {
		tenant = "host"
	}
	a.printf("tenant:   %s\n", tenant)
	a.printf("role:     %s\n", u.Role)
	a.printf("locked:   %t\n", u.Locked)
	if u.LastLoginAt != nil {
		a.printf("login at: %s\n", u.LastLoginAt.Format("2006-01-02 15:04:05"))
	}
}
