package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
)

type sidebarView struct {
	Groups   []ideas.Group
	Cursor   int
	Selected string
	Focused  bool
	Width    int
	Height   int
}

// renderSidebar draws category headers with their ideas below. Each row ends
// with the export (green) and delete (brown) dots; fields ideas also show
// the rename hint.
func renderSidebar(v sidebarView) string {
	innerW := v.Width - 4
	if innerW < 10 {
		innerW = 10
	}
	lines := []string{styleHeader().Render("Ideas"), ""}
	if len(v.Groups) == 0 {
		lines = append(lines, styleMuted().Render("No ideas yet. Press a to add one."))
	}

	dots := lipgloss.NewStyle().Foreground(colorExportDot).Render(glyphDot()) + " " +
		lipgloss.NewStyle().Foreground(colorDeleteDot).Render(glyphDot())
	dotsW := 3

	i := 0
	for _, g := range v.Groups {
		lines = append(lines, styleCategory().Render(truncate(categoryLabel(g.Category), innerW)))
		for _, it := range g.Ideas {
			lines = append(lines, renderSidebarRow(it, i == v.Cursor && v.Focused, it.Title == v.Selected, innerW, dots, dotsW))
			i++
		}
	}

	body := normalizePane(strings.Join(lines, "\n"), innerW, v.Height-2)
	return stylePane(v.Focused).Width(v.Width - 2).Render(body)
}

func renderSidebarRow(it model.Idea, atCursor bool, selected bool, width int, dots string, dotsW int) string {
	prefix := "  "
	if atCursor {
		prefix = glyphCursor() + " "
	}
	hint := "  "
	if !it.IsChat() {
		hint = styleMuted().Render("r") + " "
	}
	title := fitLine(prefix+it.Title, width-dotsW-3)
	if atCursor || selected {
		title = styleSelectedRow().Render(title)
	}
	return title + " " + hint + dots
}

func categoryLabel(c string) string {
	if strings.TrimSpace(c) == "" {
		return "(no category)"
	}
	return c
}
