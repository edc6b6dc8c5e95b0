package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/model"
	"ideabox-cli/internal/store"
)

type pane int

const (
	paneSidebar pane = iota
	paneDetail
)

// chatFocus is the focused part of a chat idea's detail panel.
type chatFocus int

const (
	chatFocusInput chatFocus = iota
	chatFocusMessages
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddIdea
	modalConfirmDelete
	modalEditMessage
	modalRename
)

type confirmModalFocus int

const (
	confirmFocusCancel confirmModalFocus = iota
	confirmFocusConfirm
)

// Options configures a TUI session.
type Options struct {
	Store     store.Store
	Repo      *ideas.Repository
	Logger    *zap.Logger
	Variant   model.Variant
	ExportDir string
	Light     bool
	// Changes delivers a value whenever the store changes on disk.
	Changes   <-chan struct{}
}

type appModel struct {
	ctx       context.Context
	store     store.Store
	repo      *ideas.Repository
	logger    *zap.Logger
	variant   model.Variant
	exportDir string
	watch     <-chan struct{}

	width  int
	height int

	pane pane
	// cursor indexes sidebarIdeas(): ideas in rendered (grouped) order.
	cursor int

	// selected is the idea shown in the detail panel. Only the controller
	// writes it; hasSelected is false when nothing is selected.
	selected    string
	hasSelected bool

	chatFocus  chatFocus
	msgCursor  int
	chatInput  textinput.Model
	commands   textarea.Model
	notes      textarea.Model
	fieldFocus model.Field

	// preview renders notes as Markdown while the notes textarea is unfocused.
	preview bool

	modal         modalKind
	modalFor      string
	modalIndex    int
	modalField    int
	titleInput    textinput.Model
	categoryInput textinput.Model
	editInput     textinput.Model
	confirmFocus  confirmModalFocus

	light bool
	flash string
	// flashErr renders flash in the error color.
	flashErr bool
}

func newAppModel(opts Options) appModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := appModel{
		ctx:        context.Background(),
		store:      opts.Store,
		repo:       opts.Repo,
		logger:     logger.Named("tui"),
		variant:    opts.Variant,
		exportDir:  opts.ExportDir,
		watch:      opts.Changes,
		light:      opts.Light,
		fieldFocus: model.FieldCommands,
		preview:    true,
	}
	if m.variant == "" {
		m.variant = model.VariantChat
	}

	m.chatInput = textinput.New()
	m.chatInput.Placeholder = "Type a message and press enter"
	m.chatInput.Prompt = "> "
	m.chatInput.CharLimit = 0

	m.commands = newFieldArea("Commands…")
	m.notes = newFieldArea("Notes…")

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.Prompt = "Title:    "
	m.categoryInput = textinput.New()
	m.categoryInput.Placeholder = "Category"
	m.categoryInput.Prompt = "Category: "
	m.editInput = textinput.New()
	m.editInput.Prompt = "> "
	m.editInput.CharLimit = 0

	applyTheme(m.light)
	return m
}

func newFieldArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(8)
	return ta
}

// applySavedTUIState restores the last selection if that idea still exists.
func (m *appModel) applySavedTUIState(st *store.TUIState) {
	if st == nil || st.SelectedTitle == "" {
		return
	}
	if _, ok := m.repo.Find(st.SelectedTitle); !ok {
		return
	}
	m.selectIdea(st.SelectedTitle)
	if st.Pane != "detail" {
		m.focusSidebar()
	}
}

func (m appModel) tuiState() *store.TUIState {
	st := &store.TUIState{Version: 1, Pane: "sidebar"}
	if m.hasSelected {
		st.SelectedTitle = m.selected
	}
	if m.pane == paneDetail {
		st.Pane = "detail"
	}
	return st
}
