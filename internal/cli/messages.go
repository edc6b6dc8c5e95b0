package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
)

func newMsgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Chat messages of an idea",
	}
	cmd.AddCommand(newMsgAddCmd(app))
	cmd.AddCommand(newMsgEditCmd(app))
	cmd.AddCommand(newMsgRmCmd(app))
	return cmd
}

func newMsgAddCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a message (trimmed; must not be empty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateIdea(cmd, app, args[0], func(sess *session) error {
				return sess.repo.AppendMessage(cmd.Context(), args[0], text)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Message text")
	return cmd
}

func newMsgEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <title> <index>",
		Short: "Replace a message (zero-based index; empty text is allowed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("text") {
				return writeErr(cmd, errors.New("missing --text"))
			}
			return mutateIdea(cmd, app, args[0], func(sess *session) error {
				return sess.repo.EditMessage(cmd.Context(), args[0], idx, text)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Replacement text")
	return cmd
}

func newMsgRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <title> <index>",
		Short: "Delete a message (zero-based index)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutateIdea(cmd, app, args[0], func(sess *session) error {
				return sess.repo.DeleteMessage(cmd.Context(), args[0], idx)
			})
		},
	}
}

func newSetCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "set <title> commands|notes",
		Short: "Overwrite the commands or notes of a fields idea",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := model.ParseField(args[1])
			if !ok {
				return writeErr(cmd, ideas.ErrField)
			}
			if !cmd.Flags().Changed("text") {
				return writeErr(cmd, errors.New("missing --text"))
			}
			return mutateIdea(cmd, app, args[0], func(sess *session) error {
				return sess.repo.SetField(cmd.Context(), args[0], field, text)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New value (may be empty)")
	return cmd
}

// mutateIdea runs fn against a fresh session and prints the idea afterwards.
func mutateIdea(cmd *cobra.Command, app *App, title string, fn func(*session) error) error {
	sess, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()
	if err := checkWritable(sess.repo); err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(sess); err != nil {
		return writeErr(cmd, err)
	}
	if err := checkSaved(sess.repo); err != nil {
		return writeErr(cmd, err)
	}
	it, _ := sess.repo.Find(title)
	return writeOut(cmd, app, map[string]any{"data": it})
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s", ideas.ErrIndex, s)
	}
	return n, nil
}
