package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"ideabox-cli/internal/logging"
	"ideabox-cli/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (workspace-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			// Writing the current collection creates the KV table and pins the
			// legacy ideas.json import, if any.
			if sess.repo.LoadResult() == store.LoadMissing || sess.repo.LoadResult() == store.LoadOK {
				if err := sess.store.Save(cmd.Context(), sess.repo.All()); err != nil {
					return writeErr(cmd, err)
				}
			}

			// If we're in workspace mode but no current workspace is set, set it.
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        sess.store.Dir,
					"workspace":  app.Workspace,
					"sqlitePath": sess.store.SQLitePath(),
					"logPath":    filepath.Join(sess.store.Dir, logging.FileName),
					"load":       sess.repo.LoadResult().String(),
					"ideas":      sess.repo.Len(),
				},
			})
		},
	}
	return cmd
}
