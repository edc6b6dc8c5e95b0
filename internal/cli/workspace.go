package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"ideabox-cli/internal/store"
)

// workspaceSummary describes one workspace's idea store. A workspace whose
// store file does not exist yet reports load "missing" and is not created.
type workspaceSummary struct {
	Name    string `json:"workspace"`
	Dir     string `json:"dir"`
	Current bool   `json:"current"`
	Ideas   int    `json:"ideas"`
	Load    string `json:"load"`
}

func summarizeWorkspace(ctx context.Context, name, current string) (workspaceSummary, error) {
	dir, err := store.WorkspaceDir(name)
	if err != nil {
		return workspaceSummary{}, err
	}
	sum := workspaceSummary{Name: name, Dir: dir, Current: name == current, Load: store.LoadMissing.String()}
	s := store.Store{Dir: dir}
	if _, err := os.Stat(s.SQLitePath()); err != nil {
		return sum, nil
	}
	all, res := s.Load(ctx)
	sum.Ideas = len(all)
	sum.Load = res.String()
	return sum, nil
}

func currentWorkspaceName() (string, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.CurrentWorkspace == "" {
		return "default", nil
	}
	return cfg.CurrentWorkspace, nil
}

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Switch between idea stores (one per workspace)",
	}

	cmd.AddCommand(newWorkspaceUseCmd(app))
	cmd.AddCommand(newWorkspaceCurrentCmd(app))
	cmd.AddCommand(newWorkspaceListCmd(app))

	return cmd
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make <name> the current idea store, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.WorkspaceDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := (store.Store{Dir: dir}).Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.Workspace = name
			app.Dir = dir

			sum, err := summarizeWorkspace(cmd.Context(), name, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := map[string]any{"data": sum}
			if sum.Ideas == 0 {
				out["_hints"] = []string{"ideabox add --title <title> --category <category>"}
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newWorkspaceCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the current workspace and its idea count",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := currentWorkspaceName()
			if err != nil {
				return writeErr(cmd, err)
			}
			sum, err := summarizeWorkspace(cmd.Context(), name, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sum})
		},
	}
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces with their idea counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := currentWorkspaceName()
			if err != nil {
				return writeErr(cmd, err)
			}
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]workspaceSummary, 0, len(names))
			total := 0
			for _, name := range names {
				sum, err := summarizeWorkspace(cmd.Context(), name, current)
				if err != nil {
					return writeErr(cmd, err)
				}
				total += sum.Ideas
				out = append(out, sum)
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"currentWorkspace": current, "count": len(out), "ideas": total},
			})
		},
	}
}
