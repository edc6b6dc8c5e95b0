package tui

import (
	"strconv"
	"strings"

	"ideabox-cli/internal/model"
)

type detailView struct {
	Idea    *model.Idea
	Focused bool

	ChatFocus chatFocus
	MsgCursor int
	Input     string

	Commands   string
	Notes      string
	FieldFocus model.Field
	Preview    bool

	Width  int
	Height int
}

func renderDetail(v detailView) string {
	innerW := v.Width - 4
	if innerW < 10 {
		innerW = 10
	}
	var lines []string
	switch {
	case v.Idea == nil:
		lines = append(lines,
			styleHeader().Render("Select an idea"),
			"",
			styleMuted().Render("> Type a message and press enter"),
		)
	case v.Idea.IsChat():
		lines = renderChatDetail(v, innerW)
	default:
		lines = renderFieldsDetail(v, innerW)
	}
	body := normalizePane(strings.Join(lines, "\n"), innerW, v.Height-2)
	return stylePane(v.Focused).Width(v.Width - 2).Render(body)
}

func detailHeader(it *model.Idea, width int) []string {
	return []string{
		styleHeader().Render(truncate(it.Title, width)),
		styleMuted().Render(truncate(categoryLabel(it.Category), width)),
		"",
	}
}

func renderChatDetail(v detailView, width int) []string {
	lines := detailHeader(v.Idea, width)
	active := v.Focused && v.ChatFocus == chatFocusMessages

	if len(v.Idea.Messages) == 0 {
		lines = append(lines, styleMuted().Render("No messages yet."))
	}
	hints := "  c copy  e edit  d delete"
	for i, msg := range v.Idea.Messages {
		prefix := strconv.Itoa(i+1) + ". "
		if active && i == v.MsgCursor {
			row := fitLine(prefix+firstLine(msg), width-len(hints))
			lines = append(lines, styleSelectedRow().Render(row)+styleMuted().Render(hints))
			continue
		}
		lines = append(lines, truncate(prefix+firstLine(msg), width))
	}

	lines = append(lines, "", v.Input)
	if v.Focused {
		help := "enter: send   tab: messages   esc: back"
		if active {
			help = "up/down: move   tab/i: input   esc: back"
		}
		lines = append(lines, styleMuted().Render(help))
	}
	return lines
}

func renderFieldsDetail(v detailView, width int) []string {
	lines := detailHeader(v.Idea, width)
	lines = append(lines, fieldLabel("Commands", v.Focused && v.FieldFocus == model.FieldCommands), v.Commands, "")

	notesFocused := v.Focused && v.FieldFocus == model.FieldNotes
	lines = append(lines, fieldLabel("Notes", notesFocused))
	switch {
	case notesFocused || !v.Preview:
		lines = append(lines, v.Notes)
	case strings.TrimSpace(v.Idea.Notes) == "":
		lines = append(lines, styleMuted().Render("(empty)"))
	default:
		lines = append(lines, renderMarkdown(v.Idea.Notes, width))
	}
	if v.Focused {
		lines = append(lines, "", styleMuted().Render("tab: switch field   esc: back"))
	}
	return lines
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return styleHeader().Render(name)
	}
	return styleCategory().Render(name)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
