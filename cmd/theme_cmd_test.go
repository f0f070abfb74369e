package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/kavosh/internal/config"
)

func TestThemeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	ctl, err := loadTheme(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := themeCommand(&out, ctl, false); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "light" {
		t.Errorf("default theme = %q, want light", out.String())
	}

	out.Reset()
	if err := themeCommand(&out, ctl, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "dark") {
		t.Errorf("toggle output = %q", out.String())
	}

	reloaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.GetTheme() != "dark" {
		t.Errorf("persisted theme = %q, want dark", reloaded.GetTheme())
	}
}
