// Package cli is a thin terminal front end over the application services.
// It logs in once per invocation, runs a single command and prints the result.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ericfisherdev/crmclient/internal/application"
	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

// ErrUsage is returned for unknown commands or bad arguments.
var ErrUsage = errors.New("usage error")

// PasswordReader reads a password without echo.
type PasswordReader func() (string, error)

// App wires the services to a terminal.
type App struct {
	session   *application.SessionService
	customers *application.CustomerService
	users     *application.UserService

	in           *bufio.Reader
	inFile       *os.File // nil when input is not a file
	out          io.Writer
	readPassword PasswordReader
	username     string
	logger       *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.inFile, _ = in.(*os.File)
		a.out = out
	}
}

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(r PasswordReader) Option {
	return func(a *App) { a.readPassword = r }
}

// WithDefaultUsername pre-fills the login username.
func WithDefaultUsername(username string) Option {
	return func(a *App) { a.username = username }
}

// NewApp creates an App reading from stdin and writing to stdout.
func NewApp(session *application.SessionService, customers *application.CustomerService, users *application.UserService, opts ...Option) *App {
	a := &App{
		session:   session,
		customers: customers,
		users:     users,
		in:        bufio.NewReader(os.Stdin),
		inFile:    os.Stdin,
		out:       os.Stdout,
		logger:    slog.Default(),
	}
	a.readPassword = a.terminalPassword
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run parses args, logs in and executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("crmclient", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&a.username, "u", a.username, "username to log in with")
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if fs.NArg() == 0 || fs.Arg(0) == "help" {
		a.usage()
		return nil
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, fs.Arg(0))
	}
	cmdArgs := fs.Args()[1:]
	if len(cmdArgs) < cmd.minArgs {
		fmt.Fprintf(a.out, "usage: crmclient %s %s\n", fs.Arg(0), cmd.args)
		return fmt.Errorf("%w: %s needs %d argument(s)", ErrUsage, fs.Arg(0), cmd.minArgs)
	}

	if err := a.login(ctx); err != nil {
		return err
	}
	defer a.session.Logout()

	a.logger.Debug("running command", "command", fs.Arg(0), "args", len(cmdArgs))

	if err := cmd.run(ctx, a, cmdArgs); err != nil {
		a.report(err)
		return err
	}
	return nil
}

func (a *App) login(ctx context.Context) error {
	username := a.username
	if username == "" {
		var err error
		username, err = a.prompt("Username: ")
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
	}

	password, err := a.readPassword()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if _, err := a.session.Login(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, application.ErrMissingCredentials):
			fmt.Fprintln(a.out, "Please enter username and password")
		case errors.Is(err, application.ErrLoginRejected):
			fmt.Fprintln(a.out, "Login error")
		default:
			fmt.Fprintln(a.out, "Connection error. Please try again.")
		}
		return err
	}
	return nil
}

// report prints a user-facing message for err. The full error was already
// logged by the service that produced it.
func (a *App) report(err error) {
	var envErr *model.EnvelopeError
	switch {
	case errors.Is(err, application.ErrReauthRequired):
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	case errors.As(err, &envErr):
		fmt.Fprintln(a.out, "Error:", envErr.Message)
	case errors.Is(err, application.ErrInvalidCustomer):
		fmt.Fprintln(a.out, "Invalid customer ID.")
	case errors.Is(err, model.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, model.ErrDecodeFailure):
		fmt.Fprintln(a.out, "Unexpected response from server.")
	case errors.Is(err, model.ErrTransportFailure):
		fmt.Fprintln(a.out, "Connection error. Please try again.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (a *App) confirm(question string) bool {
	answer, err := a.prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// terminalPassword reads without echo when the input is a terminal and
// falls back to a plain line otherwise, so the password can be piped in.
func (a *App) terminalPassword() (string, error) {
	if a.inFile == nil {
		return a.prompt("Password: ")
	}
	fd := int(a.inFile.Fd())
	if !term.IsTerminal(fd) {
		return a.prompt("")
	}

	fmt.Fprint(a.out, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: crmclient [-u username] <command> [args]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "commands:")
	for _, name := range commandOrder {
		cmd := commands[name]
		fmt.Fprintf(a.out, "  %-16s %-28s %s\n", name, cmd.args, cmd.help)
	}
}
