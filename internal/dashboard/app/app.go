package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/leaddash/internal/dashboard/shell"
	"github.com/aussiebroadwan/leaddash/pkg/httpx"
	"github.com/aussiebroadwan/leaddash/pkg/leadsdk"
	"github.com/aussiebroadwan/leaddash/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

var (
	// ErrLoginRequired is returned when no session could be restored.
	ErrLoginRequired = errors.New("login required")

	// ErrUsage is returned for a missing or malformed command.
	ErrUsage = errors.New("usage: dashboard <command> [args]")
)

// Application encapsulates the dashboard with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer

	client *leadsdk.SDKClient
	shell  *shell.Shell
}

// New creates a new Application writing command output to out and logs to
// logOut.
func New(cfg Config, out, logOut io.Writer) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		out: out,
		logger: slogx.New(slogx.Config{
			Service: "dashboard",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  logOut,
		}),
	}

	app.initClient()
	app.shell = shell.New(app.client, shell.NavigatorFunc(app.redirect), app.logger)

	return app, nil
}

func (app *Application) initClient() {
	// Rate limiting runs first so logged durations exclude the wait
	transport := httpx.Chain(http.DefaultTransport,
		httpx.RateLimit(app.cfg.RateLimit),
		httpx.RequestID(),
		httpx.Logging(),
	)

	opts := []leadsdk.Option{
		leadsdk.WithHTTPClient(&http.Client{
			Transport: transport,
			Timeout:   app.cfg.HTTPTimeout,
		}),
		leadsdk.WithLogger(app.logger),
	}
	if app.cfg.RefreshDedupe {
		opts = append(opts, leadsdk.WithRefreshDedupe())
	}

	app.client = leadsdk.NewSDKClient(app.cfg.APIURL, opts...)
}

// redirect is where the shell sends the user. A terminal has no login
// screen, so it is only logged; Run reports ErrLoginRequired.
func (app *Application) redirect(path string) {
	app.logger.Debug("redirect", "path", path)
}

// Client returns the SDK client used by the application.
func (app *Application) Client() *leadsdk.SDKClient {
	return app.client
}

// Run executes one command. Account commands run without a session; every
// other command first logs in when credentials are configured and then
// bootstraps the session.
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	name, args := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", name, ErrUsage)
	}

	ctx = slogx.WithCommand(slogx.WithContext(ctx, app.logger), name)

	if cmd.authenticated {
		if err := app.authenticate(ctx); err != nil {
			return err
		}
	}

	if err := cmd.run(ctx, app, args); err != nil {
		slogx.FromContext(ctx).DebugContext(ctx, "command failed", "error", err)
		return err
	}
	return nil
}

func (app *Application) authenticate(ctx context.Context) error {
	if app.cfg.HasCredentials() && !app.client.Session().HasToken() {
		if _, err := app.client.Login(ctx, app.cfg.Email, app.cfg.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		slogx.FromContext(ctx).InfoContext(ctx, "logged in", "email", app.cfg.Email)
	}

	if !app.shell.Bootstrap(ctx) {
		return ErrLoginRequired
	}
	return nil
}
