package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ideabox-cli/internal/ideas"
)

// Modal state machine: modalNone -> open(kind) -> modalNone. Every close path
// goes through closeModal, which clears all modal inputs.

// editResult is what the edit-message modal hands back. Set is false when the
// edit was cancelled, which is distinct from submitting an empty string.
type editResult struct {
	Text string
	Set  bool
}

func (m *appModel) openAddIdea() {
	m.blurInputs()
	m.modal = modalAddIdea
	m.modalField = 0
	m.titleInput.Reset()
	m.categoryInput.Reset()
	m.titleInput.Focus()
	m.categoryInput.Blur()
}

func (m *appModel) openRename(title string) {
	it, ok := m.repo.Find(title)
	if !ok || it.IsChat() {
		return
	}
	m.blurInputs()
	m.modal = modalRename
	m.modalFor = it.Title
	m.modalField = 0
	m.titleInput.SetValue(it.Title)
	m.categoryInput.SetValue(it.Category)
	m.titleInput.Focus()
	m.categoryInput.Blur()
}

func (m *appModel) openConfirmDelete(title string) {
	m.blurInputs()
	m.modal = modalConfirmDelete
	m.modalFor = title
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) openEditMessage(title string, index int) {
	it, ok := m.repo.Find(title)
	if !ok || !it.IsChat() || index < 0 || index >= len(it.Messages) {
		return
	}
	m.blurInputs()
	m.modal = modalEditMessage
	m.modalFor = title
	m.modalIndex = index
	m.editInput.SetValue(it.Messages[index])
	m.editInput.Focus()
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalFor = ""
	m.modalIndex = 0
	m.modalField = 0
	m.titleInput.Reset()
	m.categoryInput.Reset()
	m.titleInput.Blur()
	m.categoryInput.Blur()
	m.editInput.Reset()
	m.editInput.Blur()
	m.confirmFocus = confirmFocusCancel
	if m.pane == paneDetail {
		m.focusDetail()
	}
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalAddIdea, modalRename:
		return m.updateTitleCategoryModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modalEditMessage:
		return m.updateEditMessage(msg)
	}
	return m, nil
}

func (m *appModel) setModalField(i int) {
	m.modalField = clamp(i, 0, 1)
	if m.modalField == 0 {
		m.titleInput.Focus()
		m.categoryInput.Blur()
	} else {
		m.titleInput.Blur()
		m.categoryInput.Focus()
	}
}

func (m appModel) updateTitleCategoryModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "tab", "down":
		m.setModalField((m.modalField + 1) % 2)
		return m, nil
	case "shift+tab", "up":
		m.setModalField((m.modalField + 1) % 2)
		return m, nil
	case "enter":
		if m.modalField == 0 {
			m.setModalField(1)
			return m, nil
		}
		m.submitTitleCategory()
		return m, nil
	case "ctrl+s":
		m.submitTitleCategory()
		return m, nil
	}

	var cmd tea.Cmd
	if m.modalField == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	}
	return m, cmd
}

// submitTitleCategory applies the add/rename modal and always closes it.
// Blank fields are a silent no-op.
func (m *appModel) submitTitleCategory() {
	title := m.titleInput.Value()
	category := m.categoryInput.Value()
	kind := m.modal
	forTitle := m.modalFor
	m.closeModal()

	var err error
	switch kind {
	case modalAddIdea:
		it, cerr := m.repo.Create(m.ctx, title, category, m.variant)
		if cerr == nil {
			m.moveCursorTo(it.Title)
		}
		err = cerr
	case modalRename:
		err = m.repo.Rename(m.ctx, forTitle, title, category)
		if err == nil {
			newTitle := strings.TrimSpace(title)
			if m.hasSelected && m.selected == forTitle {
				m.selected = newTitle
			}
			m.moveCursorTo(newTitle)
		}
	}
	switch {
	case err == nil:
		m.noteSaveResult()
	case errors.Is(err, ideas.ErrDuplicateTitle):
		m.setFlashErr(err.Error())
	}
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.closeModal()
		return m, nil
	case "y":
		m.confirmDelete()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmDelete()
		} else {
			m.closeModal()
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) confirmDelete() {
	title := m.modalFor
	m.closeModal()
	if err := m.repo.Delete(m.ctx, title); err != nil {
		return
	}
	if m.hasSelected && m.selected == title {
		m.clearSelection()
	}
	m.clampCursor()
	m.noteSaveResult()
}

func (m appModel) updateEditMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.finishEditMessage(editResult{})
		return m, nil
	case "enter", "ctrl+s":
		m.finishEditMessage(editResult{Text: m.editInput.Value(), Set: true})
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *appModel) finishEditMessage(res editResult) {
	title, index := m.modalFor, m.modalIndex
	m.closeModal()
	if !res.Set {
		return
	}
	if err := m.repo.EditMessage(m.ctx, title, index, res.Text); err != nil {
		return
	}
	m.noteSaveResult()
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalAddIdea, modalRename:
		title := "New idea"
		if m.modal == modalRename {
			title = "Rename idea"
		}
		body := strings.Join([]string{
			m.titleInput.View(),
			m.categoryInput.View(),
			"",
			styleMuted().Render("tab: next field   enter/ctrl+s: save   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, title, body)
	case modalConfirmDelete:
		return renderConfirmModal(m.width, "Delete idea", `Delete idea "`+m.modalFor+`"?`, "Delete", "Cancel", m.confirmFocus)
	case modalEditMessage:
		body := strings.Join([]string{
			m.editInput.View(),
			"",
			styleMuted().Render("enter: save   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "Edit message", body)
	}
	return ""
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	help := styleMuted().Render("y: delete   n/esc: cancel   tab: focus   enter: select")
	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, title, content)
}
