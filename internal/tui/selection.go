package tui

import (
	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
)

// sidebarIdeas returns ideas in the order the sidebar renders them.
func (m appModel) sidebarIdeas() []model.Idea {
	var out []model.Idea
	for _, g := range ideas.GroupByCategory(m.repo.All()) {
		out = append(out, g.Ideas...)
	}
	return out
}

func (m appModel) cursorIdea() (model.Idea, bool) {
	xs := m.sidebarIdeas()
	if m.cursor < 0 || m.cursor >= len(xs) {
		return model.Idea{}, false
	}
	return xs[m.cursor], true
}

func (m appModel) selectedIdea() (model.Idea, bool) {
	if !m.hasSelected {
		return model.Idea{}, false
	}
	return m.repo.Find(m.selected)
}

func (m *appModel) clampCursor() {
	n := len(m.sidebarIdeas())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, n-1)
}

func (m *appModel) moveCursorTo(title string) {
	for i, it := range m.sidebarIdeas() {
		if it.Title == title {
			m.cursor = i
			return
		}
	}
}

// selectIdea opens title in the detail panel and focuses it.
func (m *appModel) selectIdea(title string) {
	it, ok := m.repo.Find(title)
	if !ok {
		return
	}
	m.selected = it.Title
	m.hasSelected = true
	m.moveCursorTo(it.Title)
	m.chatInput.Reset()
	m.chatFocus = chatFocusInput
	m.msgCursor = len(it.Messages) - 1
	if m.msgCursor < 0 {
		m.msgCursor = 0
	}
	m.commands.SetValue(it.Commands)
	m.notes.SetValue(it.Notes)
	m.fieldFocus = model.FieldCommands
	m.focusDetail()
}

func (m *appModel) clearSelection() {
	m.selected = ""
	m.hasSelected = false
	m.msgCursor = 0
	m.chatInput.Reset()
	m.commands.Reset()
	m.notes.Reset()
	m.focusSidebar()
}

func (m *appModel) blurInputs() {
	m.chatInput.Blur()
	m.commands.Blur()
	m.notes.Blur()
}

func (m *appModel) focusSidebar() {
	m.pane = paneSidebar
	m.blurInputs()
}

// focusDetail moves focus to the detail panel; without a selection its inputs
// stay disabled and focus remains in the sidebar.
func (m *appModel) focusDetail() {
	it, ok := m.selectedIdea()
	if !ok {
		m.focusSidebar()
		return
	}
	m.pane = paneDetail
	m.blurInputs()
	if it.IsChat() {
		if m.chatFocus == chatFocusInput {
			m.chatInput.Focus()
		}
		return
	}
	if m.fieldFocus == model.FieldNotes {
		m.notes.Focus()
	} else {
		m.commands.Focus()
	}
}

// syncAfterReload reconciles selection and field editors with a repository
// that was reloaded from disk.
func (m *appModel) syncAfterReload() {
	if m.hasSelected {
		it, ok := m.repo.Find(m.selected)
		if !ok {
			m.clearSelection()
		} else {
			if m.commands.Value() != it.Commands {
				m.commands.SetValue(it.Commands)
			}
			if m.notes.Value() != it.Notes {
				m.notes.SetValue(it.Notes)
			}
			if m.msgCursor >= len(it.Messages) {
				m.msgCursor = clamp(len(it.Messages)-1, 0, len(it.Messages))
			}
		}
	}
	m.clampCursor()
}

// noteSaveResult surfaces a failed save; the in-memory change stays.
func (m *appModel) noteSaveResult() {
	if err := m.repo.LastSaveErr(); err != nil {
		m.setFlashErr("not saved: " + err.Error())
	}
}

func (m *appModel) setFlash(s string) {
	m.flash = s
	m.flashErr = false
}

func (m *appModel) setFlashErr(s string) {
	m.flash = s
	m.flashErr = true
}
