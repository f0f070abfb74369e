package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/logger"
	"github.com/zhubert/kavosh/internal/notification"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/ui"
)

// healthTimeout bounds a single health check
const healthTimeout = 5 * time.Second

// HealthMsg carries the result of a health check. Manual checks report
// their outcome in the footer.
type HealthMsg struct {
	Health *api.Health
	Err    error
	Manual bool
}

func requestHealth(backend Backend, manual bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		h, err := backend.Health(ctx)
		return HealthMsg{Health: h, Err: err, Manual: manual}
	}
}

// checkHealth checks the backend silently
func checkHealth(backend Backend) tea.Cmd {
	return requestHealth(backend, false)
}

// checkHealthManual checks the backend and flashes the outcome
func checkHealthManual(backend Backend) tea.Cmd {
	return requestHealth(backend, true)
}

func (m *Model) handleHealth(msg HealthMsg) tea.Cmd {
	up := msg.Err == nil && msg.Health.Healthy()
	if up {
		m.header.SetHealth(ui.HealthUp)
	} else {
		logger.Warn("App: backend unhealthy: %v", msg.Err)
		m.header.SetHealth(ui.HealthDown)
	}

	if !msg.Manual {
		return nil
	}
	if up {
		return m.ShowFlashSuccess(msgBackendUp)
	}
	return m.ShowFlashError(msgBackendDown)
}

// handleSearchResult folds a search result into the session. Results of
// superseded submissions are dropped.
func (m *Model) handleSearchResult(msg search.ResultMsg) (tea.Model, tea.Cmd) {
	if !m.search.Apply(msg) {
		return m, nil
	}

	s := m.search.Session()
	m.answer.SetSession(s)
	cmds := []tea.Cmd{m.bar.SetDisabled(false)}

	switch {
	case s.Status == search.StatusSucceeded:
		m.header.SetHealth(ui.HealthUp)
		if m.config.GetNotificationsEnabled() {
			query := s.Query
			cmds = append(cmds, func() tea.Msg {
				_ = notification.AnswerReady(query)
				return nil
			})
		}
	case errors.Is(msg.Err, errors.KindNetwork):
		m.header.SetHealth(ui.HealthDown)
	}

	return m, tea.Batch(cmds...)
}

// handleStopwatchTick animates the pending state and stops once the
// search has finished
func (m *Model) handleStopwatchTick() (tea.Model, tea.Cmd) {
	if !m.search.Pending() {
		return m, nil
	}
	m.answer.Tick()
	m.bar.Tick()
	return m, ui.StopwatchTick()
}
