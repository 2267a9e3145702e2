package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/export"
	"github.com/dmitrijs2005/useradmin/internal/client/userform"
	"github.com/dmitrijs2005/useradmin/internal/client/userlist"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    client.Client
	list   *userlist.Controller
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	api := client.NewRESTClient(c.APIBaseURL, client.NewHTTPClient(c.RequestTimeout), logger)
	exporter := export.FileExporter{Dir: c.ExportDir}

	return newApp(c, logger, api, exporter, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, api client.Client, exporter userlist.Exporter, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		api:    api,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.list = userlist.New(api, a, a, exporter, logger)
	return a
}

// Run shows the first page and serves commands until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to useradmin CLI (type 'help' for commands)")
	a.logger.Info(ctx, "client started", "api", a.config.APIBaseURL)

	if err := a.List(ctx, 1); err != nil {
		fmt.Fprintln(a.out, describe(err))
	}

	runREPL(ctx, a, a.status, a.reader, a.logger)
}

func (a *App) status() string {
	return fmt.Sprintf("page %d/%d", a.list.CurrentPage(), a.list.TotalPages())
}

// List loads and shows page; 0 means the current page.
func (a *App) List(ctx context.Context, page int) error {
	if page == 0 {
		page = a.list.CurrentPage()
	}
	if err := a.list.LoadUsers(ctx, page); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	moved, err := a.list.NextPage(ctx)
	if err != nil {
		return err
	}
	if !moved {
		fmt.Fprintln(a.out, "Already on the last page.")
		return nil
	}
	a.render()
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	moved, err := a.list.PrevPage(ctx)
	if err != nil {
		return err
	}
	if !moved {
		fmt.Fprintln(a.out, "Already on the first page.")
		return nil
	}
	a.render()
	return nil
}

func (a *App) Add(ctx context.Context) error {
	return a.list.AddUser(ctx)
}

func (a *App) Edit(ctx context.Context, id int64) error {
	return a.list.EditUser(ctx, id)
}

func (a *App) Delete(ctx context.Context, id int64) error {
	deleted, err := a.list.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.out, "Delete cancelled.")
		return nil
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	a.render()
	return nil
}

func (a *App) Export(ctx context.Context) error {
	n := len(a.list.Users())
	path, err := a.list.ExportToExcel()
	if err != nil {
		a.logger.Error(ctx, "export failed", "error", err)
		return err
	}
	a.logger.Info(ctx, "users exported", "path", path, "count", n)
	fmt.Fprintf(a.out, "Exported %d users to %s\n", n, path)
	return nil
}

// Confirm implements userlist.Confirmer on top of the shared stdin reader.
func (a *App) Confirm(prompt string) (bool, error) {
	return GetConfirmation(a.reader, prompt, a.out)
}

// OpenUserList implements userform.Navigator: the list is fetched again
// from page 1 and shown.
func (a *App) OpenUserList(ctx context.Context) {
	if err := a.List(ctx, 1); err != nil {
		fmt.Fprintln(a.out, describe(err))
	}
}

func (a *App) render() {
	renderUsers(a.out, a.list.Users(), a.list.CurrentPage(), a.list.TotalPages(), terminalWidth())
}

// describe turns an error into a message for the user; details go to the log.
func describe(err error) string {
	var verr *userform.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Please fix the highlighted fields."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, userform.ErrInvalidUserID):
		return "User id must be a positive number."
	case errors.Is(err, client.ErrInvalidPage):
		return "Page must be a positive number."
	case errors.Is(err, client.ErrNotFound):
		return "User not found."
	case errors.Is(err, client.ErrUnavailable):
		return "The server is unavailable, try again later."
	default:
		return "Something went wrong, see the log for details."
	}
}
