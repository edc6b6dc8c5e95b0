package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ideabox-cli/internal/export"
	"ideabox-cli/internal/ideas"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var markdown bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export [<title>]",
		Short: "Export one idea as <title>.json, or all ideas as ideas.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				toDir = sess.cfg.ExportDir
			}
			opt := export.WriteOptions{Overwrite: overwrite}

			var res export.WriteResult
			switch {
			case len(args) == 0 && markdown:
				res.Written = []string{}
				for _, it := range sess.repo.All() {
					r, err := export.WriteIdeaMarkdown(it, toDir, opt)
					if err != nil {
						return writeErr(cmd, err)
					}
					res.Written = append(res.Written, r.Written...)
				}
			case len(args) == 0:
				res, err = export.WriteAll(sess.repo.All(), toDir, opt)
			default:
				it, ok := sess.repo.Find(args[0])
				if !ok {
					return writeErr(cmd, fmt.Errorf("%w: %s", ideas.ErrNotFound, args[0]))
				}
				if markdown {
					res, err = export.WriteIdeaMarkdown(it, toDir, opt)
				} else {
					res, err = export.WriteIdea(it, toDir, opt)
				}
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			sess.logger.Info("export", zap.Strings("written", res.Written))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (default: config exportDir, then the working directory)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Write Markdown (<title>.md) instead of JSON")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import ideas from an export file (one idea or an array)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := export.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("read %s: %w", args[0], err))
			}

			sess, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()
			// --replace is the way out of an unreadable store, so only merges
			// are refused.
			if !replace {
				if err := checkWritable(sess.repo); err != nil {
					return writeErr(cmd, err)
				}
			}

			mode := ideas.ImportMerge
			var backup string
			if replace {
				mode = ideas.ImportReplace
				backup, err = sess.store.Backup(cmd.Context(), time.Now())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("backup before replace: %w", err))
				}
			}
			res := sess.repo.Import(cmd.Context(), in, mode)
			if err := checkSaved(sess.repo); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"meta": map[string]any{"count": sess.repo.Len(), "backup": backup},
			})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the whole collection instead of merging")
	return cmd
}
