package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
	"ideabox-cli/internal/store"
)

func newTestModel(t *testing.T, seed ...model.Idea) appModel {
	t.Helper()
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })

	ctx := context.Background()
	s := store.Store{Dir: t.TempDir()}
	if len(seed) > 0 {
		if err := s.Save(ctx, seed); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	m := newAppModel(Options{
		Store:     s,
		Repo:      ideas.Open(ctx, s, nil),
		ExportDir: t.TempDir(),
	})
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mAny.(appModel)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		mAny, _ := m.Update(keyMsg(k))
		m = mAny.(appModel)
	}
	return m
}

func chatIdea(title, category string, msgs ...string) model.Idea {
	it := model.NewIdea(title, category, model.VariantChat)
	it.Messages = append(it.Messages, msgs...)
	return it
}

func TestAddIdeaModal_CreatesAndClears(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "a")
	if m.modal != modalAddIdea {
		t.Fatalf("expected add modal; got %v", m.modal)
	}
	m = press(t, m, "Garden bot", "enter", "Hardware", "enter")
	if m.modal != modalNone {
		t.Fatalf("expected modal closed after save; got %v", m.modal)
	}
	if m.titleInput.Value() != "" || m.categoryInput.Value() != "" {
		t.Fatalf("expected inputs cleared; got %q %q", m.titleInput.Value(), m.categoryInput.Value())
	}
	it, ok := m.repo.Find("Garden bot")
	if !ok || it.Category != "Hardware" || !it.IsChat() {
		t.Fatalf("expected created chat idea; got %#v %v", it, ok)
	}

	// Persisted through the store.
	got, res := m.store.Load(context.Background())
	if res != store.LoadOK || len(got) != 1 {
		t.Fatalf("expected one stored idea; got %s %#v", res, got)
	}
}

func TestAddIdeaModal_InvalidInputClosesSilently(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "a", "Only title", "ctrl+s")
	if m.modal != modalNone {
		t.Fatalf("expected modal closed even when invalid; got %v", m.modal)
	}
	if m.repo.Len() != 0 || m.flash != "" {
		t.Fatalf("expected silent no-op; len=%d flash=%q", m.repo.Len(), m.flash)
	}

	m = press(t, m, "a", "Draft", "esc")
	if m.modal != modalNone || m.titleInput.Value() != "" || m.repo.Len() != 0 {
		t.Fatalf("esc must close and clear; modal=%v title=%q len=%d", m.modal, m.titleInput.Value(), m.repo.Len())
	}
}

func TestAddIdeaModal_DuplicateTitleFlashes(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))

	m = press(t, m, "a", "A", "enter", "y", "enter")
	if m.repo.Len() != 1 {
		t.Fatalf("duplicate must not be added; len=%d", m.repo.Len())
	}
	if !m.flashErr || !strings.Contains(m.flash, "already exists") {
		t.Fatalf("expected duplicate flash; got %q", m.flash)
	}
}

func TestDeleteIdea_ConfirmAndClearSelection(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"), chatIdea("B", "x"))

	// Select A, go back to the sidebar, then delete it.
	m = press(t, m, "enter", "esc")
	if !m.hasSelected || m.selected != "A" {
		t.Fatalf("expected A selected; got %q %v", m.selected, m.hasSelected)
	}
	m = press(t, m, "d")
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal; got %v", m.modal)
	}
	m = press(t, m, "n")
	if m.repo.Len() != 2 || m.modal != modalNone {
		t.Fatalf("n must cancel; len=%d modal=%v", m.repo.Len(), m.modal)
	}

	m = press(t, m, "d", "y")
	if m.repo.Len() != 1 {
		t.Fatalf("expected A deleted; len=%d", m.repo.Len())
	}
	if m.hasSelected {
		t.Fatalf("deleting the selected idea must clear the selection")
	}
	if !strings.Contains(m.View(), "Select an idea") {
		t.Fatalf("expected placeholder after deleting the selection")
	}
}

func TestDeleteIdea_OtherIdeaKeepsSelection(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"), chatIdea("B", "x"))

	m = press(t, m, "enter", "esc", "down", "d", "tab", "enter")
	if _, ok := m.repo.Find("B"); ok {
		t.Fatalf("expected B deleted")
	}
	if !m.hasSelected || m.selected != "A" {
		t.Fatalf("expected A to stay selected; got %q %v", m.selected, m.hasSelected)
	}
}

func TestChatInput_AppendsTrimmedAndClears(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))

	m = press(t, m, "enter")
	if m.pane != paneDetail || !m.chatInput.Focused() {
		t.Fatalf("expected chat input focused after select")
	}
	m = press(t, m, "  hello world  ", "enter")
	it, _ := m.repo.Find("A")
	if !reflect.DeepEqual(it.Messages, []string{"hello world"}) {
		t.Fatalf("unexpected messages: %#v", it.Messages)
	}
	if m.chatInput.Value() != "" {
		t.Fatalf("expected input cleared; got %q", m.chatInput.Value())
	}

	m = press(t, m, "   ", "enter")
	it, _ = m.repo.Find("A")
	if len(it.Messages) != 1 {
		t.Fatalf("whitespace-only input must not append; got %#v", it.Messages)
	}
}

func TestChatMessages_EditCancelEmptyAndDelete(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x", "one", "two"))

	m = press(t, m, "enter", "tab")
	if m.chatFocus != chatFocusMessages || m.msgCursor != 1 {
		t.Fatalf("expected message focus on last message; focus=%v cursor=%d", m.chatFocus, m.msgCursor)
	}
	m = press(t, m, "up", "e")
	if m.modal != modalEditMessage || m.editInput.Value() != "one" {
		t.Fatalf("expected edit modal prefilled; modal=%v value=%q", m.modal, m.editInput.Value())
	}

	// Cancel leaves the message alone even after typing.
	m = press(t, m, "!!", "esc")
	it, _ := m.repo.Find("A")
	if it.Messages[0] != "one" || m.modal != modalNone {
		t.Fatalf("cancel must not edit; got %#v", it.Messages)
	}

	// Submitting an empty value stores the empty string.
	m = press(t, m, "e")
	m.editInput.SetValue("")
	m = press(t, m, "enter")
	it, _ = m.repo.Find("A")
	if !reflect.DeepEqual(it.Messages, []string{"", "two"}) {
		t.Fatalf("expected empty edit applied; got %#v", it.Messages)
	}

	m = press(t, m, "d")
	it, _ = m.repo.Find("A")
	if !reflect.DeepEqual(it.Messages, []string{"two"}) {
		t.Fatalf("expected first message deleted; got %#v", it.Messages)
	}
}

func TestChatMessages_Copy(t *testing.T) {
	var copied []string
	old := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { copyToClipboard = old })

	m := newTestModel(t, chatIdea("A", "x", "one", "two"))
	m = press(t, m, "enter", "tab", "c")
	if !reflect.DeepEqual(copied, []string{"two"}) || m.flash != "copied" {
		t.Fatalf("expected last message copied; got %#v flash=%q", copied, m.flash)
	}
}

func TestFieldsIdea_TypingSetsField(t *testing.T) {
	m := newTestModel(t, model.NewIdea("F", "x", model.VariantFields))

	m = press(t, m, "enter", "make")
	it, _ := m.repo.Find("F")
	if it.Commands != "make" {
		t.Fatalf("expected commands to follow typing; got %q", it.Commands)
	}

	m = press(t, m, "tab", "# hi")
	it, _ = m.repo.Find("F")
	if it.Notes != "# hi" || it.Commands != "make" {
		t.Fatalf("unexpected fields: %#v", it)
	}

	got, _ := m.store.Load(context.Background())
	if len(got) != 1 || got[0].Notes != "# hi" {
		t.Fatalf("expected notes persisted; got %#v", got)
	}
}

func TestRenameModal_FieldsOnly(t *testing.T) {
	m := newTestModel(t, chatIdea("C", "x"), model.NewIdea("F", "x", model.VariantFields))

	m = press(t, m, "r")
	if m.modal != modalNone {
		t.Fatalf("rename must not open for chat ideas")
	}

	m = press(t, m, "down", "r")
	if m.modal != modalRename || m.titleInput.Value() != "F" {
		t.Fatalf("expected rename modal prefilled; modal=%v title=%q", m.modal, m.titleInput.Value())
	}
	m = press(t, m, "2", "tab", "y", "ctrl+s")
	it, ok := m.repo.Find("F2")
	if !ok || it.Category != "xy" {
		t.Fatalf("expected renamed idea; got %#v %v", it, ok)
	}
}

func TestThemeToggle_NotPersisted(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark theme by default")
	}
	m = press(t, m, "t")
	if !m.light || lipgloss.HasDarkBackground() {
		t.Fatalf("expected light theme after toggle")
	}
	m = press(t, m, "t")
	if m.light || !lipgloss.HasDarkBackground() {
		t.Fatalf("expected dark theme after second toggle")
	}

	st := m.tuiState()
	if st.Pane != "sidebar" {
		t.Fatalf("unexpected state: %#v", st)
	}
}

func TestExportKeys(t *testing.T) {
	m := newTestModel(t, chatIdea("A/B", "x", "hi"), chatIdea("C", "y"))

	m = press(t, m, "x")
	if _, err := os.Stat(filepath.Join(m.exportDir, "A-B.json")); err != nil {
		t.Fatalf("expected single export: %v", err)
	}
	m = press(t, m, "X")
	if _, err := os.Stat(filepath.Join(m.exportDir, "ideas.json")); err != nil {
		t.Fatalf("expected full export: %v", err)
	}
	if !strings.HasPrefix(m.flash, "exported ") {
		t.Fatalf("expected export flash; got %q", m.flash)
	}
}

func TestStoreChanged_ReloadsFromDisk(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))

	other := ideas.Open(context.Background(), m.store, nil)
	if _, err := other.Create(context.Background(), "B", "y", model.VariantChat); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mAny, _ := m.Update(storeChangedMsg{})
	m = mAny.(appModel)
	if m.repo.Len() != 2 {
		t.Fatalf("expected reload to pick up B; len=%d", m.repo.Len())
	}
}

// failingStore stores through the embedded Store until failSave is set.
type failingStore struct {
	store.Store
	failSave bool
}

func (f *failingStore) Save(ctx context.Context, all []model.Idea) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.Store.Save(ctx, all)
}

func TestStoreChanged_KeepsUnsavedChange(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))
	fs := &failingStore{Store: m.store}
	m.repo = ideas.Open(context.Background(), fs, nil)

	fs.failSave = true
	m = press(t, m, "enter", "unsaved", "enter")
	if m.repo.LastSaveErr() == nil || !strings.Contains(m.flash, "not saved") {
		t.Fatalf("expected save failure to flash; flash=%q", m.flash)
	}

	mAny, _ := m.Update(storeChangedMsg{})
	m = mAny.(appModel)
	it, _ := m.repo.Find("A")
	if !reflect.DeepEqual(it.Messages, []string{"unsaved"}) {
		t.Fatalf("expected unsaved message to survive a store change; got %#v", it.Messages)
	}
}

func TestFieldsIdea_SetFieldErrorFlashes(t *testing.T) {
	m := newTestModel(t, model.NewIdea("F", "x", model.VariantFields))
	m = press(t, m, "enter")
	stale, _ := m.repo.Find("F")
	if err := m.repo.Delete(context.Background(), "F"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mAny, _ := m.updateFields(keyMsg("z"), stale)
	m = mAny.(appModel)
	if !m.flashErr || !strings.Contains(m.flash, "F") {
		t.Fatalf("expected set field error in flash; got %q (err=%v)", m.flash, m.flashErr)
	}
}

func TestQuit_SavesTUIState(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "x"))
	m = press(t, m, "enter", "esc")

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	st, err := m.store.LoadTUIState()
	if err != nil || st.SelectedTitle != "A" || st.Pane != "sidebar" {
		t.Fatalf("unexpected saved state: %#v %v", st, err)
	}

	m2 := newTestModel(t, chatIdea("A", "x"))
	m2.applySavedTUIState(&store.TUIState{Version: 1, SelectedTitle: "A", Pane: "detail"})
	if !m2.hasSelected || m2.pane != paneDetail {
		t.Fatalf("expected restored selection in detail pane")
	}
	m2.applySavedTUIState(&store.TUIState{Version: 1, SelectedTitle: "missing"})
	if m2.selected != "A" {
		t.Fatalf("unknown saved titles must be ignored")
	}
}

func TestView_GroupsByCategoryInFirstSeenOrder(t *testing.T) {
	m := newTestModel(t, chatIdea("A", "cat1"), chatIdea("B", "cat2"), chatIdea("C", "cat1"))

	v := m.View()
	i1 := strings.Index(v, "cat1")
	iA := strings.Index(v, "A")
	iC := strings.Index(v, " C")
	i2 := strings.Index(v, "cat2")
	if i1 < 0 || i2 < 0 || iC < 0 || i1 > i2 {
		t.Fatalf("expected cat1 before cat2:\n%s", v)
	}
	if !(iA < iC && iC < i2) {
		t.Fatalf("expected A and C under cat1 before cat2:\n%s", v)
	}
	if !strings.Contains(v, "Select an idea") {
		t.Fatalf("expected placeholder without selection:\n%s", v)
	}

	got := m.sidebarIdeas()
	if got[0].Title != "A" || got[1].Title != "C" || got[2].Title != "B" {
		t.Fatalf("unexpected sidebar order: %#v", got)
	}
}
