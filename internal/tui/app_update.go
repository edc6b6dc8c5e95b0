package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ideabox-cli/internal/export"
	"ideabox-cli/internal/model"
)

type storeChangedMsg struct{}

func waitForStoreChange(c <-chan struct{}) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-c; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case storeChangedMsg:
		// An unsaved in-memory change wins over the older stored state.
		if m.repo.LastSaveErr() == nil {
			m.repo.Reload(m.ctx)
			m.syncAfterReload()
		}
		return m, waitForStoreChange(m.watch)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		m.flash = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.pane == paneDetail {
			return m.updateDetail(msg)
		}
		return m.updateSidebar(msg)
	}

	// Cursor blink and other widget messages.
	var cmd tea.Cmd
	switch {
	case m.modal != modalNone:
		return m, nil
	case m.chatInput.Focused():
		m.chatInput, cmd = m.chatInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	if err := m.store.SaveTUIState(m.tuiState()); err != nil {
		m.logger.Debug("save tui state failed")
	}
	return m, tea.Quit
}

func (m *appModel) resizeInputs() {
	_, detailW, bodyH := paneSizes(m.width, m.height)
	inner := detailW - 4
	if inner < 20 {
		inner = 20
	}
	m.chatInput.Width = inner - 3
	m.commands.SetWidth(inner)
	m.notes.SetWidth(inner)
	h := (bodyH - 9) / 2
	if h < 3 {
		h = 3
	}
	m.commands.SetHeight(h)
	m.notes.SetHeight(h)
}

func (m appModel) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sidebarIdeas())
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "ctrl+n":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "home", "g", "<":
		m.cursor = 0
	case "end", "G", ">":
		if n > 0 {
			m.cursor = n - 1
		}
	case "enter", "right", "l":
		if it, ok := m.cursorIdea(); ok {
			m.selectIdea(it.Title)
		}
	case "tab":
		m.focusDetail()
	case "a":
		m.openAddIdea()
	case "d", "delete":
		if it, ok := m.cursorIdea(); ok {
			m.openConfirmDelete(it.Title)
		}
	case "r":
		if it, ok := m.cursorIdea(); ok {
			m.openRename(it.Title)
		}
	case "x":
		if it, ok := m.cursorIdea(); ok {
			m.exportIdea(it)
		}
	case "X":
		m.exportAll()
	case "t":
		m.light = !m.light
		applyTheme(m.light)
	case "p":
		m.preview = !m.preview
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	it, ok := m.selectedIdea()
	if !ok {
		m.focusSidebar()
		return m, nil
	}
	if msg.String() == "esc" {
		m.focusSidebar()
		return m, nil
	}
	if it.IsChat() {
		if m.chatFocus == chatFocusMessages {
			return m.updateMessages(msg, it)
		}
		return m.updateChatInput(msg, it)
	}
	return m.updateFields(msg, it)
}

func (m appModel) updateChatInput(msg tea.KeyMsg, it model.Idea) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.chatFocus = chatFocusMessages
		m.chatInput.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}
		if err := m.repo.AppendMessage(m.ctx, it.Title, text); err != nil {
			return m, nil
		}
		m.chatInput.Reset()
		m.msgCursor = len(it.Messages)
		m.noteSaveResult()
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m appModel) updateMessages(msg tea.KeyMsg, it model.Idea) (tea.Model, tea.Cmd) {
	n := len(it.Messages)
	switch msg.String() {
	case "tab", "shift+tab", "i":
		m.chatFocus = chatFocusInput
		m.chatInput.Focus()
	case "up", "k":
		if m.msgCursor > 0 {
			m.msgCursor--
		}
	case "down", "j":
		if m.msgCursor < n-1 {
			m.msgCursor++
		}
	case "c", "y":
		if m.msgCursor < n {
			if err := copyToClipboard(it.Messages[m.msgCursor]); err != nil {
				m.setFlashErr("copy failed: " + err.Error())
			} else {
				m.setFlash("copied")
			}
		}
	case "e", "enter":
		m.openEditMessage(it.Title, m.msgCursor)
	case "d", "delete":
		if m.msgCursor < n {
			if err := m.repo.DeleteMessage(m.ctx, it.Title, m.msgCursor); err == nil {
				if m.msgCursor >= n-1 && m.msgCursor > 0 {
					m.msgCursor--
				}
				m.noteSaveResult()
			}
		}
	}
	return m, nil
}

func (m *appModel) setField(title string, field model.Field, text string) {
	if err := m.repo.SetField(m.ctx, title, field, text); err != nil {
		m.setFlashErr(err.Error())
		return
	}
	m.noteSaveResult()
}

// updateFields forwards keys to the focused textarea and stores its value on
// every change.
func (m appModel) updateFields(msg tea.KeyMsg, it model.Idea) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" || msg.String() == "shift+tab" {
		if m.fieldFocus == model.FieldCommands {
			m.fieldFocus = model.FieldNotes
		} else {
			m.fieldFocus = model.FieldCommands
		}
		m.focusDetail()
		return m, nil
	}

	var cmd tea.Cmd
	if m.fieldFocus == model.FieldNotes {
		m.notes, cmd = m.notes.Update(msg)
		if v := m.notes.Value(); v != it.Notes {
			m.setField(it.Title, model.FieldNotes, v)
		}
		return m, cmd
	}
	m.commands, cmd = m.commands.Update(msg)
	if v := m.commands.Value(); v != it.Commands {
		m.setField(it.Title, model.FieldCommands, v)
	}
	return m, cmd
}

func (m *appModel) exportIdea(it model.Idea) {
	res, err := export.WriteIdea(it, m.exportDir, export.WriteOptions{Overwrite: true})
	if err != nil {
		m.setFlashErr("export failed: " + err.Error())
		return
	}
	m.setFlash("exported " + strings.Join(res.Written, ", "))
}

func (m *appModel) exportAll() {
	res, err := export.WriteAll(m.repo.All(), m.exportDir, export.WriteOptions{Overwrite: true})
	if err != nil {
		m.setFlashErr("export failed: " + err.Error())
		return
	}
	m.setFlash("exported " + strings.Join(res.Written, ", "))
}
