package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskflow/internal/api"
	"github.com/tgienger/taskflow/internal/config"
	"github.com/tgienger/taskflow/internal/db"
	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/platform"
	"github.com/tgienger/taskflow/internal/state"
	"github.com/tgienger/taskflow/internal/ui"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
	"github.com/tgienger/taskflow/internal/ui/views"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configDebounce = 250 * time.Millisecond

type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// clipboardWrite is swapped out in tests
var clipboardWrite = clipboard.WriteAll

type options struct {
	configPath string
	server     string
	logLevel   string
	devMode    bool
}

// NewRootCommand creates the root command. With no subcommand it runs the
// terminal client.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - terminal client for the TaskFlow project tracker",
		Long: `TaskFlow is a terminal client for a TaskFlow server. Sign in, pick a
project, and manage its tasks: filter, sort, assign, edit and complete them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML (env TASKFLOW_CONFIG)")
	flags.StringVar(&opts.server, "server", "", "server base URL (env TASKFLOW_SERVER)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&opts.devMode, "dev", false, "use dev mode paths (taskflow-dev)")

	cmd.AddCommand(
		newPathsCommand(opts),
		newStatusCommand(opts),
		newLogoutCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "taskflow %s (commit: %s, built: %s)\n", version, commit, date)
			return err
		},
	}
}

func newPathsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the config, data and log locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := platform.DefaultPaths(platform.Options{DevMode: opts.devMode})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", opts.resolveConfigPath(paths))
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "db: %s\n", paths.DBPath)
			_, _ = fmt.Fprintf(out, "log: %s\n", paths.LogPath)
			return nil
		},
	}
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the saved session is still signed in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			st, err := rt.client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("check session: %w", err)
			}
			out := cmd.OutOrStdout()
			if !st.IsAuthenticated {
				_, _ = fmt.Fprintf(out, "not logged in (%s)\n", rt.client.BaseURL())
				return nil
			}
			_, _ = fmt.Fprintf(out, "logged in as %s (%s)\n", st.Username, rt.client.BaseURL())
			return nil
		},
	}
}

func newLogoutCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (o *options) resolveConfigPath(paths platform.Paths) string {
	if p := strings.TrimSpace(o.configPath); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("TASKFLOW_CONFIG")); p != "" {
		return p
	}
	return paths.ConfigPath
}

// runtime holds everything a command needs to talk to the server
type runtime struct {
	configPath string
	defaults   config.Config
	cfg        config.Config
	log        *logging.Logger
	store      *db.DB
	client     *api.Client
}

func (o *options) setup(stderr io.Writer) (*runtime, error) {
	paths, err := platform.DefaultPaths(platform.Options{DevMode: o.devMode})
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	configPath := o.resolveConfigPath(paths)

	defaults := config.Default(paths)
	cfg, err := config.Load(configPath, defaults)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	o.applyOverrides(&cfg)

	log, err := logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Prefix:   "taskflow",
		Console:  stderr,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	log.Debug("configuration loaded", "config_path", configPath, "server", cfg.Server.BaseURL, "db_path", cfg.Storage.Path)

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("open local store failed", "db_path", cfg.Storage.Path, "err", err)
		_ = log.Close()
		return nil, fmt.Errorf("open local store: %w", err)
	}

	jar, err := api.NewPersistentJar(store, log)
	if err != nil {
		_ = store.Close()
		_ = log.Close()
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	client, err := api.New(cfg.Server.BaseURL,
		api.WithJar(jar),
		api.WithTimeout(cfg.Server.Timeout()),
		api.WithLogger(log),
	)
	if err != nil {
		_ = store.Close()
		_ = log.Close()
		return nil, fmt.Errorf("api client: %w", err)
	}

	return &runtime{
		configPath: configPath,
		defaults:   defaults,
		cfg:        cfg,
		log:        log,
		store:      store,
		client:     client,
	}, nil
}

// applyOverrides layers env and flags over the file config, flags last
func (o *options) applyOverrides(cfg *config.Config) {
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_SERVER")); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(o.server); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(o.logLevel); v != "" {
		cfg.Logging.Level = v
	}
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn("close local store failed", "err", err)
	}
	_ = r.log.Close()
}

func runTUI(cmd *cobra.Command, opts *options) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rt, err := opts.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.Close()

	// the terminal belongs to the TUI; logs go to the file sink only
	rt.log.SetConsoleEnabled(false)
	rt.log.Info("starting", "version", version, "server", rt.client.BaseURL())

	env := &views.Env{
		Ctx:       ctx,
		Backend:   rt.client,
		State:     state.New(),
		Notices:   &state.Notifier{},
		Styles:    styles.NewStyles(styles.TokyoNight),
		Keys:      keys.DefaultKeyMap(),
		UI:        rt.cfg.UI,
		Log:       rt.log,
		Clipboard: clipboardWrite,
	}
	p := programFactory(ui.NewApp(env, rt.store))

	if err := config.EnsureDir(rt.configPath); err != nil {
		rt.log.Warn("config dir unavailable, live reload disabled", "err", err)
	} else {
		err := config.Watch(ctx, rt.configPath, rt.defaults, configDebounce,
			func(cfg config.Config) {
				if err := rt.log.SetLevel(opts.levelFor(cfg)); err != nil {
					rt.log.Warn("ignoring reloaded log level", "err", err)
				}
				p.Send(views.ConfigReloadedMsg{UI: cfg.UI})
			},
			func(err error) {
				rt.log.Warn("config reload failed", "config_path", rt.configPath, "err", err)
			},
		)
		if err != nil {
			rt.log.Warn("config watch failed", "err", err)
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		rt.log.Error("tui terminated with error", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	rt.log.Info("exiting")
	return nil
}

// levelFor keeps a --log-level flag in force across reloads
func (o *options) levelFor(cfg config.Config) string {
	if v := strings.TrimSpace(o.logLevel); v != "" {
		return v
	}
	return cfg.Logging.Level
}
