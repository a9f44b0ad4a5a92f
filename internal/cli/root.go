package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/todo/internal/auth"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/itemsvc"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/ui"
)

// App holds the IO streams and everything commands share once flags are parsed.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// CredDir overrides ~/.todo for the credentials file.
	CredDir string

	flags  rootFlags
	cfg    *config.Config
	logger *log.Logger
	closer io.Closer
}

type rootFlags struct {
	configPath string
	server     string
	timeout    time.Duration
	theme      string
	noColor    bool
	logLevel   string
	logFormat  string
	logFile    string
}

// NewApp wires an App to the process streams.
func NewApp() *App {
	return &App{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
}

// usageError marks errors that exit with code 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Execute runs the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	defer app.close()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		if ue.msg != "" {
			ui.Fail(app.Err, ue.msg)
		}
		return 2
	}
	ui.Fail(app.Err, err.Error())
	return 1
}

// NewRootCmd creates the top-level "todo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "A terminal client for a remote todo list",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runUI(cmd.Context(), app)
			}
			_ = cmd.Help()
			return &usageError{}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	bindFlags(root.PersistentFlags(), &app.flags)

	root.AddCommand(
		newLsCmd(app),
		newAddCmd(app),
		newUICmd(app),
		newAuthCmd(app),
	)
	return root
}

func bindFlags(pf *pflag.FlagSet, f *rootFlags) {
	pf.StringVar(&f.configPath, "config", "", "config file (default ~/.todo/config.toml)")
	pf.StringVar(&f.server, "server", config.DefaultServer, "item server base URL")
	pf.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "per-request timeout")
	pf.StringVar(&f.theme, "theme", config.DefaultTheme, "output theme: classic, neon or mono")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colors")
	pf.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&f.logFormat, "log-format", config.DefaultLogFmt, "log format: text, logfmt or json")
	pf.StringVar(&f.logFile, "log-file", "", "append logs to this file")
}

// setup layers flags over the loaded config and prepares shared services.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.flags.configPath)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("server") {
		cfg.Server = app.flags.server
	}
	if fs.Changed("timeout") {
		cfg.Timeout = app.flags.timeout
	}
	if fs.Changed("theme") {
		cfg.Theme = app.flags.theme
	}
	if fs.Changed("no-color") {
		cfg.NoColor = app.flags.noColor
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = app.flags.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = app.flags.logFormat
	}
	if fs.Changed("log-file") {
		cfg.LogFile = app.flags.logFile
	}
	if err := cfg.Validate(); err != nil {
		return usagef("config: %v", err)
	}

	ui.SetTheme(cfg.Theme)
	ui.SetNoColor(cfg.NoColor)

	opts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if cfg.LogFile != "" {
		logger, closer, err := logging.Open(cfg.LogFile, opts)
		if err != nil {
			return err
		}
		app.logger, app.closer = logger, closer
	} else {
		app.logger = logging.New(app.Err, opts)
	}
	app.cfg = cfg
	if cfg.Source != "" {
		app.logger.Debug("config loaded", "file", cfg.Source)
	}
	return nil
}

func (app *App) close() {
	if app.closer != nil {
		app.closer.Close()
		app.closer = nil
	}
}

func (app *App) credentials() (*auth.Credentials, error) {
	dir := app.CredDir
	if dir == "" {
		d, err := config.Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return auth.NewCredentials(dir), nil
}

// service builds the item client, attaching the saved token if any.
func (app *App) service(logger *log.Logger) (itemsvc.Service, error) {
	creds, err := app.credentials()
	if err != nil {
		return nil, err
	}
	token, err := creds.Token()
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	return itemsvc.NewHTTPClient(itemsvc.Config{
		BaseURL: app.cfg.Server,
		Token:   token,
		Timeout: app.cfg.Timeout,
	}, logger), nil
}
