package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ideabox-cli/internal/format"
	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/logging"
	"ideabox-cli/internal/store"
	"ideabox-cli/internal/tui"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	LogLevel   string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ideabox",
		Short:        "Ideabox: a local idea organizer (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  ideabox

  # Scriptable commands
  ideabox add --title "Garden bot" --category Hardware
  ideabox msg add "Garden bot" --text "Use a soil moisture sensor"
  ideabox list --category Hardware

  # Direct lookup (shortcut for: ideabox show "Garden bot")
  ideabox @"Garden bot"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("IDEABOX_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("IDEABOX_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("IDEABOX_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("IDEABOX_LOG_LEVEL", ""), "Log level for <dir>/ideabox.log (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newMsgCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	sess, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	logger := sess.logger
	logger.Info("tui start", zap.String("dir", sess.store.Dir), zap.Stringer("load", sess.repo.LoadResult()))
	err = tui.Run(tui.Options{
		Store:     sess.store,
		Repo:      sess.repo,
		Logger:    logger,
		Variant:   sess.cfg.DefaultVariant(),
		ExportDir: sess.cfg.ExportDir,
		Light:     sess.cfg.LightTheme(),
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// session is everything a command needs: the resolved store, the global
// config, a logger writing into the store dir, and the loaded repository.
type session struct {
	store  store.Store
	cfg    *store.GlobalConfig
	logger *zap.Logger
	repo   *ideas.Repository
}

func openSession(ctx context.Context, app *App) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := resolveDir(app)
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	level := app.LogLevel
	if level == "" {
		level = cfg.LogLevel
	}
	// A log file that can't be opened must not block the app.
	logger, _ := logging.New(dir, level)

	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return &session{
		store:  s,
		cfg:    cfg,
		logger: logger,
		repo:   ideas.Open(ctx, s, logger),
	}, nil
}

func (s *session) Close() {
	_ = s.logger.Sync()
}

// resolveDir picks the store directory:
// 1) --dir
// 2) --workspace
// 3) ~/.ideabox/config.json currentWorkspace
// 4) the "default" workspace
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	name := app.Workspace
	if name == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			name = cfg.CurrentWorkspace
		} else {
			name = "default"
		}
	}
	d, err := store.WorkspaceDir(name)
	if err != nil {
		return "", err
	}
	app.Workspace = name
	app.Dir = d
	return d, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
