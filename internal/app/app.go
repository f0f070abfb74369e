package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/config"
	"github.com/zhubert/kavosh/internal/logger"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/theme"
	"github.com/zhubert/kavosh/internal/ui"
)

// Backend is everything the app needs from the RAG backend. *api.Client
// satisfies it.
type Backend interface {
	search.Searcher
	admin.Backend
	Health(ctx context.Context) (*api.Health, error)
}

// Screen is the page currently shown below the header
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenAdmin
)

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case ScreenSearch:
		return "Search"
	case ScreenAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config   *config.Config
	version  string // App version (injected at build time)
	backend  Backend
	themeCtl *theme.Controller

	header *ui.Header
	footer *ui.Footer
	bar    *ui.SearchBar
	answer *ui.AnswerView
	admin  *ui.AdminPanel
	copies *ui.CopyTracker
	search *search.Controller

	screen Screen
	width  int
	height int

	unsubscribeTheme func()
}

// New creates the app model. themeCtl is shared with the CLI and must
// outlive the model; its current mode is applied immediately.
func New(cfg *config.Config, backend Backend, themeCtl *theme.Controller, version string) *Model {
	copies := ui.NewCopyTracker()

	m := &Model{
		config:   cfg,
		version:  version,
		backend:  backend,
		themeCtl: themeCtl,
		header:   ui.NewHeader(),
		footer:   ui.NewFooter(),
		bar:      ui.NewSearchBar(cfg.GetWebSearchDefault()),
		answer:   ui.NewAnswerView(copies),
		admin:    ui.NewAdminPanel(admin.New(backend)),
		copies:   copies,
		search:   search.NewController(backend),
		screen:   ScreenSearch,
	}

	m.applyTheme(themeCtl.Mode())
	m.unsubscribeTheme = themeCtl.Subscribe(m.applyTheme)

	return m
}

// applyTheme restyles every component for mode
func (m *Model) applyTheme(mode theme.Mode) {
	ui.ApplyMode(mode)
	m.header.SetMode(mode)
	m.bar.ApplyTheme()
	m.answer.Refresh()
	logger.Debug("App: theme applied: %s", mode)
}

// Close releases the theme subscription
func (m *Model) Close() {
	if m.unsubscribeTheme != nil {
		m.unsubscribeTheme()
		m.unsubscribeTheme = nil
	}
}

// Screen returns the page currently shown
func (m *Model) Screen() Screen {
	return m.screen
}

// Session returns the current search session
func (m *Model) Session() search.Session {
	return m.search.Session()
}

// Init starts the cursor blink and the first health check
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bar.Focus(), checkHealth(m.backend))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		if m.screen == ScreenSearch {
			return m, m.answer.Update(msg)
		}
		return m, nil

	case search.ResultMsg:
		return m.handleSearchResult(msg)

	case ui.StopwatchTickMsg:
		return m.handleStopwatchTick()

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()

	case ui.CopiedMsg:
		cmd := m.copies.HandleCopied(msg)
		m.answer.Refresh()
		return m, cmd

	case ui.CopyResetMsg:
		if m.copies.HandleReset(msg) {
			m.answer.Refresh()
		}
		return m, nil

	case admin.ConfigLoadedMsg, admin.ConfigSavedMsg, admin.IngestedMsg:
		return m, m.admin.Update(msg)

	case HealthMsg:
		return m, m.handleHealth(msg)
	}

	// Everything else (cursor blinks) goes to the visible screen
	if m.screen == ScreenAdmin {
		return m, m.admin.Update(msg)
	}
	return m, m.bar.Update(msg)
}

// handleKey routes a key press. Global keys work on every screen; on the
// admin screen everything except Escape belongs to the panel.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if result, cmd, ok := m.ExecuteShortcut(key); ok {
		return result, cmd
	}

	if m.screen == ScreenAdmin {
		return m, m.admin.Update(msg)
	}
	if m.answer.Focused() {
		return m, nil
	}
	return m, m.bar.Update(msg)
}

// submitSearch starts a search with the draft query. It is a no-op while
// a search is pending; a blank draft only sets the inline hint.
func (m *Model) submitSearch() (tea.Model, tea.Cmd) {
	if m.search.Pending() {
		return m, nil
	}
	query, useWeb, ok := m.bar.SubmitIntent()
	if !ok {
		return m, nil
	}

	cmd, err := m.search.Submit(query, useWeb)
	if err != nil {
		logger.Warn("App: search rejected: %v", err)
		return m, nil
	}

	m.copies.Clear()
	m.answer.SetFocused(false)
	m.answer.SetSession(m.search.Session())
	m.bar.SetDisabled(true)
	m.bar.Focus()

	return m, tea.Batch(cmd, ui.StopwatchTick())
}

// openAdmin switches to the admin screen
func (m *Model) openAdmin() (tea.Model, tea.Cmd) {
	logger.Debug("App: opening admin screen")
	m.screen = ScreenAdmin
	m.bar.Blur()
	m.answer.SetFocused(false)
	return m, m.admin.Open()
}

// closeAdmin returns to the search screen
func (m *Model) closeAdmin() (tea.Model, tea.Cmd) {
	logger.Debug("App: closing admin screen")
	m.screen = ScreenSearch
	return m, m.bar.Focus()
}

// toggleFocus moves focus between the input and the sources list
func (m *Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.answer.Focused() {
		m.answer.SetFocused(false)
		return m, m.bar.Focus()
	}
	if !m.answer.HasSources() {
		return m, nil
	}
	m.bar.Blur()
	m.answer.SetFocused(true)
	return m, nil
}

// copySelected copies the selected source
func (m *Model) copySelected() (tea.Model, tea.Cmd) {
	i, src, ok := m.answer.SelectedSource()
	if !ok {
		return m, nil
	}
	return m, m.copies.Copy(i, src)
}

// toggleTheme flips and persists the theme. A failed write keeps the
// current mode and shows an error flash.
func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	if _, err := m.themeCtl.Toggle(); err != nil {
		return m, m.ShowFlashError(msgThemeSaveFailed)
	}
	return m, nil
}
