package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run starts the interactive UI and blocks until the user quits. Changes made
// by other processes (for example CLI commands in another terminal) are
// picked up through a store watcher when one can be started.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference()

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Changes == nil {
		w, err := opts.Store.Watch(logger)
		if err != nil {
			logger.Warn("store watcher unavailable", zap.Error(err))
		} else {
			defer w.Close()
			opts.Changes = w.C()
		}
	}

	m := newAppModel(opts)
	if st, err := opts.Store.LoadTUIState(); err == nil {
		m.applySavedTUIState(st)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
