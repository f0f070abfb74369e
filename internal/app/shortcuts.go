package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/keys"
	"github.com/zhubert/kavosh/internal/logger"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the app-level key map.
type Shortcut struct {
	Key           string                              // The key binding (e.g., "enter", "ctrl+o")
	Description   string                              // Human-readable description
	Global        bool                                // Also active on the admin screen
	AdminOnly     bool                                // Only active on the admin screen
	AnswerFocused bool                                // Only while the sources list has focus
	Handler       func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition     func(m *Model) bool                 // Optional extra condition
}

// ShortcutRegistry is the central registry of app-level shortcuts. Keys
// that match nothing here fall through to the focused component.
var ShortcutRegistry = []Shortcut{
	// Global
	{Key: keys.CtrlC, Description: "Quit", Global: true, Handler: shortcutQuit},
	{Key: keys.CtrlT, Description: "Toggle light/dark theme", Global: true, Handler: shortcutTheme},
	{Key: keys.CtrlR, Description: "Check backend health", Global: true, Handler: shortcutHealth},

	// Admin screen
	{Key: keys.Escape, Description: "Back to search", AdminOnly: true, Handler: shortcutCloseAdmin},

	// Search screen
	{Key: keys.CtrlG, Description: "Open admin settings", Handler: shortcutOpenAdmin},
	{Key: keys.CtrlO, Description: "Toggle web search", Handler: shortcutToggleWeb},
	{Key: keys.PgUp, Description: "Scroll answer up", Handler: shortcutPageUp},
	{Key: keys.PgDown, Description: "Scroll answer down", Handler: shortcutPageDown},
	{
		Key:         keys.Tab,
		Description: "Switch between input and sources",
		Handler:     shortcutToggleFocus,
		Condition:   func(m *Model) bool { return m.answer.Focused() || m.answer.HasSources() },
	},
	{
		Key:         keys.ShiftTab,
		Description: "Switch between input and sources",
		Handler:     shortcutToggleFocus,
		Condition:   func(m *Model) bool { return m.answer.Focused() || m.answer.HasSources() },
	},
	{
		Key:         keys.Enter,
		Description: "Search",
		Handler:     shortcutSubmit,
		Condition:   func(m *Model) bool { return !m.answer.Focused() },
	},

	// Sources list
	{Key: keys.Enter, Description: "Copy source", AnswerFocused: true, Handler: shortcutCopy},
	{Key: "c", Description: "Copy source", AnswerFocused: true, Handler: shortcutCopy},
	{Key: keys.Up, Description: "Previous source", AnswerFocused: true, Handler: shortcutPrevSource},
	{Key: "k", Description: "Previous source", AnswerFocused: true, Handler: shortcutPrevSource},
	{Key: keys.Down, Description: "Next source", AnswerFocused: true, Handler: shortcutNextSource},
	{Key: "j", Description: "Next source", AnswerFocused: true, Handler: shortcutNextSource},
	{Key: keys.Home, Description: "Scroll to top", AnswerFocused: true, Handler: shortcutTop},
	{Key: keys.End, Description: "Scroll to bottom", AnswerFocused: true, Handler: shortcutBottom},
	{Key: keys.Escape, Description: "Back to input", AnswerFocused: true, Handler: shortcutToggleFocus},
}

// isShortcutApplicable checks the guards of s against the current state
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	admin := m.screen == ScreenAdmin
	switch {
	case s.Global:
	case s.AdminOnly:
		if !admin {
			return false
		}
	case admin:
		return false
	case s.AnswerFocused && !m.answer.Focused():
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes the first applicable shortcut for key.
// Returns (model, cmd, true) if one ran, (model, nil, false) otherwise.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	for _, s := range ShortcutRegistry {
		if s.Key != key || !m.isShortcutApplicable(s) {
			continue
		}
		logger.Debug("Shortcut: executing %q (%s) on %s screen", key, s.Description, m.screen)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	return m.toggleTheme()
}

func shortcutHealth(m *Model) (tea.Model, tea.Cmd) {
	return m, checkHealthManual(m.backend)
}

func shortcutOpenAdmin(m *Model) (tea.Model, tea.Cmd) {
	return m.openAdmin()
}

func shortcutCloseAdmin(m *Model) (tea.Model, tea.Cmd) {
	return m.closeAdmin()
}

func shortcutToggleWeb(m *Model) (tea.Model, tea.Cmd) {
	m.bar.ToggleWeb()
	return m, nil
}

func shortcutPageUp(m *Model) (tea.Model, tea.Cmd) {
	m.answer.PageUp()
	return m, nil
}

func shortcutPageDown(m *Model) (tea.Model, tea.Cmd) {
	m.answer.PageDown()
	return m, nil
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	return m.toggleFocus()
}

func shortcutSubmit(m *Model) (tea.Model, tea.Cmd) {
	return m.submitSearch()
}

func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	return m.copySelected()
}

func shortcutPrevSource(m *Model) (tea.Model, tea.Cmd) {
	m.answer.Select(-1)
	return m, nil
}

func shortcutNextSource(m *Model) (tea.Model, tea.Cmd) {
	m.answer.Select(1)
	return m, nil
}

func shortcutTop(m *Model) (tea.Model, tea.Cmd) {
	m.answer.GotoTop()
	return m, nil
}

func shortcutBottom(m *Model) (tea.Model, tea.Cmd) {
	m.answer.GotoBottom()
	return m, nil
}
