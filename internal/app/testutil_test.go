package app

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/config"
	"github.com/zhubert/kavosh/internal/keys"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/theme"
	"github.com/zhubert/kavosh/internal/ui"
)

// fakeBackend never gets called by these tests' commands; results are
// fed to the model directly.
type fakeBackend struct{}

func (fakeBackend) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResult, error) {
	return &api.SearchResult{Answer: "ok", Sources: []string{}}, nil
}

func (fakeBackend) GetConfig(ctx context.Context) (*api.AdminConfig, error) {
	return &api.AdminConfig{}, nil
}

func (fakeBackend) SaveConfig(ctx context.Context, update api.ConfigUpdate) (*api.Ack, error) {
	return &api.Ack{}, nil
}

func (fakeBackend) IngestURL(ctx context.Context, req api.IngestRequest) (*api.IngestResult, error) {
	return &api.IngestResult{}, nil
}

func (fakeBackend) Health(ctx context.Context) (*api.Health, error) {
	return &api.Health{Status: "healthy"}, nil
}

// testConfig creates a config that saves into a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.SetFilePath(filepath.Join(t.TempDir(), "config.json"))
	return cfg
}

// testModel creates a test Model with an initialized theme controller.
func testModel(t *testing.T, cfg *config.Config) *Model {
	t.Helper()
	ctl := theme.New(cfg)
	if err := ctl.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	m := New(cfg, fakeBackend{}, ctl, "0.0.0-test")
	t.Cleanup(func() {
		m.Close()
		ui.ApplyMode(theme.ModeLight)
	})
	return m
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(t *testing.T, width, height int) *Model {
	t.Helper()
	m := testModel(t, testConfig(t))
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlG:
		return tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		r := []rune(key)
		return tea.KeyPressMsg{Code: r[0], Text: key}
	}
}

// sendKey sends a key press to the model and returns the command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string one rune at a time.
func typeText(m *Model, text string) {
	for _, r := range text {
		sendKey(m, string(r))
	}
}

// submit types query and presses enter, returning the pending session.
func submit(t *testing.T, m *Model, query string) search.Session {
	t.Helper()
	typeText(m, query)
	sendKey(m, keys.Enter)
	s := m.Session()
	if s.Status != search.StatusPending {
		t.Fatalf("status = %v after submit, want pending", s.Status)
	}
	return s
}

// resolve feeds a successful result for s into the model.
func resolve(m *Model, s search.Session, answer string, sources ...string) {
	if sources == nil {
		sources = []string{}
	}
	m.Update(search.ResultMsg{
		Seq:    s.Seq,
		Result: &api.SearchResult{Answer: answer, Sources: sources, Query: s.Query},
	})
}
