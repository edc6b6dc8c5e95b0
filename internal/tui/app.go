package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ideabox-cli/internal/ideas"
)

func (m appModel) Init() tea.Cmd {
	return waitForStoreChange(m.watch)
}

// View rebuilds the whole screen from repository state on every call.
func (m appModel) View() string {
	sidebarW, detailW, bodyH := paneSizes(m.width, m.height)

	sidebar := renderSidebar(sidebarView{
		Groups:   ideas.GroupByCategory(m.repo.All()),
		Cursor:   m.cursor,
		Selected: m.selected,
		Focused:  m.pane == paneSidebar && m.modal == modalNone,
		Width:    sidebarW,
		Height:   bodyH,
	})

	dv := detailView{
		Focused:    m.pane == paneDetail && m.modal == modalNone,
		ChatFocus:  m.chatFocus,
		MsgCursor:  m.msgCursor,
		Input:      m.chatInput.View(),
		Commands:   m.commands.View(),
		Notes:      m.notes.View(),
		FieldFocus: m.fieldFocus,
		Preview:    m.preview,
		Width:      detailW,
		Height:     bodyH,
	}
	if it, ok := m.selectedIdea(); ok {
		dv.Idea = &it
	}
	detail := renderDetail(dv)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detail)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.footerView(sidebarW+detailW))

	if m.modal != modalNone {
		return lipgloss.Place(sidebarW+detailW, bodyH+footerHeight, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	return screen
}

func (m appModel) footerView(width int) string {
	help := "a: add  d: delete  r: rename  x/X: export  t: theme  p: preview  q: quit"
	if m.pane == paneDetail {
		help = "esc: back to list  ctrl+c: quit"
	}
	lines := []string{styleMuted().Render(truncate(help, width))}
	switch {
	case m.flash == "":
		lines = append(lines, "")
	case m.flashErr:
		lines = append(lines, lipgloss.NewStyle().Foreground(colorFlashError).Render(truncate(m.flash, width)))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(colorAccent).Render(truncate(m.flash, width)))
	}
	return strings.Join(lines, "\n")
}
