package ui

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/keys"
)

type stubBackend struct {
	saved    []api.ConfigUpdate
	ingested []api.IngestRequest
}

func (b *stubBackend) GetConfig(ctx context.Context) (*api.AdminConfig, error) {
	return &api.AdminConfig{APIKeyMasked: "sk-***", BaseURL: "https://llm.example/v1", Model: "gpt-4o-mini"}, nil
}

func (b *stubBackend) SaveConfig(ctx context.Context, update api.ConfigUpdate) (*api.Ack, error) {
	b.saved = append(b.saved, update)
	return &api.Ack{}, nil
}

func (b *stubBackend) IngestURL(ctx context.Context, req api.IngestRequest) (*api.IngestResult, error) {
	b.ingested = append(b.ingested, req)
	return &api.IngestResult{}, nil
}

func adminKey(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
}

func testAdminPanel() (*AdminPanel, *stubBackend) {
	b := &stubBackend{}
	p := NewAdminPanel(admin.New(b))
	p.SetSize(80, 40)
	return p, b
}

// runCmd executes cmd and feeds any admin result back into the panel
func runCmd(p *AdminPanel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case admin.ConfigLoadedMsg, admin.ConfigSavedMsg, admin.IngestedMsg:
		p.Update(msg)
	}
}

func TestAdminPanel_FocusCycle(t *testing.T) {
	p, _ := testAdminPanel()

	steps := []struct {
		key  string
		want string
	}{
		{keys.Tab, fieldKeyBaseURL},
		{keys.Tab, fieldKeyIngestURL},
		{keys.Tab, fieldKeyAPIKey},
		{keys.ShiftTab, fieldKeyIngestURL},
		{keys.ShiftTab, fieldKeyBaseURL},
	}
	for _, s := range steps {
		p.Update(adminKey(s.key))
		if p.FocusedKey() != s.want {
			t.Errorf("after %s focus = %q, want %q", s.key, p.FocusedKey(), s.want)
		}
	}
}

func TestAdminPanel_EnterOnAPIKeyMovesOn(t *testing.T) {
	p, b := testAdminPanel()
	p.Update(adminKey(keys.Enter))
	if p.FocusedKey() != fieldKeyBaseURL {
		t.Errorf("focus = %q, want base_url", p.FocusedKey())
	}
	if len(b.saved) != 0 {
		t.Error("enter on the key field must not save")
	}
}

func TestAdminPanel_SaveRequiresFields(t *testing.T) {
	p, b := testAdminPanel()
	runCmd(p, p.Update(adminKey(keys.CtrlS)))

	if len(b.saved) != 0 {
		t.Error("nothing should be sent with empty fields")
	}
	if got := p.Form().Banner(); got.Kind != admin.BannerError || got.Text != admin.MsgFieldsRequired {
		t.Errorf("banner = %+v", got)
	}
	if !strings.Contains(ansi.Strip(p.View()), admin.MsgFieldsRequired) {
		t.Error("the banner should be rendered")
	}
}

func TestAdminPanel_SaveAndReload(t *testing.T) {
	p, b := testAdminPanel()
	p.Form().APIKey = "sk-new"
	p.Form().BaseURL = "https://llm.example/v1"
	p.rebuild()

	runCmd(p, p.Update(adminKey(keys.CtrlS)))
	if len(b.saved) != 1 || b.saved[0].APIKey != "sk-new" {
		t.Fatalf("saved = %+v", b.saved)
	}
	if p.Form().Banner().Text != admin.MsgConfigSaved {
		t.Errorf("banner = %+v", p.Form().Banner())
	}
	if p.Form().APIKey != "" {
		t.Error("the key field should be cleared after saving")
	}

	// The reload issued after saving
	runCmd(p, p.Form().LoadConfig())
	view := ansi.Strip(p.View())
	for _, want := range []string{"sk-***", "gpt-4o-mini"} {
		if !strings.Contains(view, want) {
			t.Errorf("current settings should show %q", want)
		}
	}
}

func TestAdminPanel_EnterOnURLIngests(t *testing.T) {
	p, b := testAdminPanel()
	p.Form().IngestURL = "https://example.com/a"
	p.rebuild()
	p.Update(adminKey(keys.ShiftTab))
	if p.FocusedKey() != fieldKeyIngestURL {
		t.Fatalf("focus = %q", p.FocusedKey())
	}

	runCmd(p, p.Update(adminKey(keys.Enter)))
	if len(b.ingested) != 1 || b.ingested[0].URL != "https://example.com/a" {
		t.Fatalf("ingested = %+v", b.ingested)
	}
	if p.Form().Banner().Text != admin.MsgURLIngested {
		t.Errorf("banner = %+v", p.Form().Banner())
	}
	if p.Form().IngestURL != "" {
		t.Error("the URL field should be cleared")
	}
	if p.FocusedKey() != fieldKeyIngestURL {
		t.Error("focus should stay on the URL field")
	}
}

func TestAdminPanel_OpenClearsBanner(t *testing.T) {
	p, _ := testAdminPanel()
	p.Update(adminKey(keys.CtrlU))
	if p.Form().Banner().Kind != admin.BannerError {
		t.Fatal("expected a validation banner")
	}
	p.Update(adminKey(keys.Tab))

	p.Open()
	runCmd(p, p.Form().LoadConfig())
	if p.Form().Banner().Kind != admin.BannerNone {
		t.Error("Open() should clear the banner")
	}
	if p.FocusedKey() != fieldKeyAPIKey {
		t.Error("Open() should focus the key field")
	}
	if p.Form().Current() == nil {
		t.Error("Open() should load the current settings")
	}
}

func TestAdminPanel_View(t *testing.T) {
	p, _ := testAdminPanel()
	view := ansi.Strip(p.View())
	for _, want := range []string{adminTitle, adminCurrentTitle, adminCredsTitle, adminIngestTitle, "ctrl+s", "ctrl+u"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
