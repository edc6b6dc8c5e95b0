package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
)

func newListCmd(app *App) *cobra.Command {
	var category string
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas in collection order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			all := sess.repo.All()
			if cmd.Flags().Changed("category") {
				filtered := make([]model.Idea, 0, len(all))
				for _, it := range all {
					if it.Category == category {
						filtered = append(filtered, it)
					}
				}
				all = filtered
			}
			meta := map[string]any{
				"count": len(all),
				"load":  sess.repo.LoadResult().String(),
			}
			if grouped {
				return writeOut(cmd, app, map[string]any{"data": ideas.GroupByCategory(all), "meta": meta})
			}
			return writeOut(cmd, app, map[string]any{"data": all, "meta": meta})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only ideas in this category (exact match)")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "Group by category in first-seen order")
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List distinct categories in first-seen order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			return writeOut(cmd, app, map[string]any{"data": sess.repo.Categories()})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Show one idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			it, ok := sess.repo.Find(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("%w: %s", ideas.ErrNotFound, args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var title string
	var category string
	var variant string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an idea",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			if err := checkWritable(sess.repo); err != nil {
				return writeErr(cmd, err)
			}

			v := sess.cfg.DefaultVariant()
			if strings.TrimSpace(variant) != "" {
				pv, err := model.ParseVariant(variant)
				if err != nil {
					return writeErr(cmd, err)
				}
				v = pv
			}
			it, err := sess.repo.Create(cmd.Context(), title, category, v)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := checkSaved(sess.repo); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   it,
				"_hints": addHints(it),
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Idea title (required, unique)")
	cmd.Flags().StringVar(&category, "category", "", "Idea category (required)")
	cmd.Flags().StringVar(&variant, "variant", "", "Content shape: chat|fields (default from config)")
	return cmd
}

func addHints(it model.Idea) []string {
	if it.IsChat() {
		return []string{"ideabox msg add " + quoteArg(it.Title) + " --text \"...\""}
	}
	return []string{
		"ideabox set " + quoteArg(it.Title) + " commands --text \"...\"",
		"ideabox set " + quoteArg(it.Title) + " notes --text \"...\"",
	}
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <title>",
		Short: "Delete an idea (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			if err := checkWritable(sess.repo); err != nil {
				return writeErr(cmd, err)
			}

			title := args[0]
			if _, ok := sess.repo.Find(title); !ok {
				return writeErr(cmd, fmt.Errorf("%w: %s", ideas.ErrNotFound, title))
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete idea %q? [y/N] ", title))
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errors.New("aborted"))
				}
			}
			if err := sess.repo.Delete(cmd.Context(), title); err != nil {
				return writeErr(cmd, err)
			}
			if err := checkSaved(sess.repo); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"deleted": title, "remaining": sess.repo.Len()},
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm reads a yes/no answer from the command's stdin. The prompt goes to
// stderr so stdout stays machine-readable.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func newRenameCmd(app *App) *cobra.Command {
	var title string
	var category string

	cmd := &cobra.Command{
		Use:   "rename <title>",
		Short: "Change the title and category of a fields idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			if err := checkWritable(sess.repo); err != nil {
				return writeErr(cmd, err)
			}

			cur, ok := sess.repo.Find(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("%w: %s", ideas.ErrNotFound, args[0]))
			}
			if !cmd.Flags().Changed("title") {
				title = cur.Title
			}
			if !cmd.Flags().Changed("category") {
				category = cur.Category
			}
			if err := sess.repo.Rename(cmd.Context(), args[0], title, category); err != nil {
				return writeErr(cmd, err)
			}
			if err := checkSaved(sess.repo); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := sess.repo.Find(strings.TrimSpace(title))
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	return cmd
}
