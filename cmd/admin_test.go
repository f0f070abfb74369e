package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/config"
)

func TestIngest(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		status  int
		body    any
		wantErr string
		wantOut string
	}{
		{
			name:    "success",
			url:     "https://example.com/a",
			status:  http.StatusOK,
			body:    map[string]any{"success": true, "title": "A", "chunks_count": 3},
			wantOut: admin.MsgURLIngested,
		},
		{
			name:    "server message",
			url:     "https://example.com/a",
			status:  http.StatusOK,
			body:    map[string]any{"success": true, "message": "۳ بخش اضافه شد"},
			wantOut: "۳ بخش اضافه شد",
		},
		{
			name:    "success false",
			url:     "https://example.com/a",
			status:  http.StatusOK,
			body:    map[string]any{"success": false, "message": "صفحه خالی است"},
			wantErr: "صفحه خالی است",
		},
		{
			name:    "server error",
			url:     "https://example.com/a",
			status:  http.StatusBadGateway,
			body:    map[string]any{"detail": "crawl failed"},
			wantErr: "crawl failed",
		},
		{
			name:    "blank url",
			url:     "  ",
			wantErr: admin.MsgURLRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got api.IngestRequest
			client := newBackend(t, map[string]http.HandlerFunc{
				"/api/ingest-url": func(w http.ResponseWriter, r *http.Request) {
					json.NewDecoder(r.Body).Decode(&got)
					writeJSON(w, tt.status, tt.body)
				},
			})
			form := admin.New(client)
			form.IngestURL = tt.url

			var out bytes.Buffer
			err := ingest(&out, form)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ingest() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ingest() error = %v", err)
			}
			if got.URL != tt.url {
				t.Errorf("sent URL %q, want %q", got.URL, tt.url)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	var got api.ConfigUpdate
	var loads int
	client := newBackend(t, map[string]http.HandlerFunc{
		"/api/config": func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				loads++
				writeJSON(w, http.StatusOK, map[string]any{"api_key": "sk-***", "base_url": "https://llm.example/v1", "model": "m"})
				return
			}
			json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		},
	})

	form := admin.New(client)
	form.APIKey = " sk-new "
	form.BaseURL = "https://llm.example/v1"

	var out bytes.Buffer
	if err := saveConfig(&out, form); err != nil {
		t.Fatalf("saveConfig() error = %v", err)
	}
	if got.APIKey != "sk-new" || got.BaseURL != "https://llm.example/v1" {
		t.Errorf("sent %+v", got)
	}
	if !strings.Contains(out.String(), admin.MsgConfigSaved) {
		t.Errorf("output = %q", out.String())
	}
	if loads != 1 {
		t.Errorf("settings reloaded %d times, want 1", loads)
	}
}

func TestSaveConfig_MissingFields(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"/api/config": func(w http.ResponseWriter, r *http.Request) {
			t.Error("nothing should be sent")
		},
	})
	form := admin.New(client)
	form.APIKey = "sk"

	err := saveConfig(&bytes.Buffer{}, form)
	if err == nil || !strings.Contains(err.Error(), admin.MsgFieldsRequired) {
		t.Errorf("saveConfig() error = %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"/api/config": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"api_key": "sk-***", "base_url": "https://llm.example/v1", "model": "gpt-4o-mini"})
		},
	})
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := showConfig(&out, cfg, client.BaseURL(), admin.New(client)); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}
	for _, want := range []string{cfg.FilePath(), client.BaseURL(), "sk-***", "gpt-4o-mini"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestShowConfig_BackendDown(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"/api/config": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{})
		},
	})
	cfg, _ := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))

	var out bytes.Buffer
	if err := showConfig(&out, cfg, client.BaseURL(), admin.New(client)); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}
	if !strings.Contains(out.String(), "unavailable") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSaveLocal(t *testing.T) {
	on, off := true, false
	good, bad := " http://rag.local:8000 ", "ftp://rag.local"

	tests := []struct {
		name       string
		settings   localSettings
		wantErr    bool
		wantNotify bool
		wantWeb    bool
		wantURL    string
	}{
		{name: "notifications", settings: localSettings{Notifications: &on}, wantNotify: true},
		{name: "web default", settings: localSettings{WebDefault: &on}, wantWeb: true},
		{name: "api url trimmed", settings: localSettings{APIURL: &good}, wantURL: "http://rag.local:8000"},
		{name: "turn off", settings: localSettings{Notifications: &off, WebDefault: &off}},
		{name: "bad url rejected", settings: localSettings{WebDefault: &on, APIURL: &bad}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kavosh", "config.json")
			cfg, err := config.LoadFrom(path)
			if err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer
			err = saveLocal(&out, cfg, tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if cfg.GetWebSearchDefault() || cfg.GetAPIURL() != "" {
					t.Error("rejected values should not stick")
				}
				if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
					t.Error("config file should not be written")
				}
				return
			}
			if err != nil {
				t.Fatalf("saveLocal() error = %v", err)
			}
			if !strings.Contains(out.String(), "saved") {
				t.Errorf("output = %q", out.String())
			}

			reloaded, err := config.LoadFrom(path)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if got := reloaded.GetNotificationsEnabled(); got != tt.wantNotify {
				t.Errorf("notifications = %v, want %v", got, tt.wantNotify)
			}
			if got := reloaded.GetWebSearchDefault(); got != tt.wantWeb {
				t.Errorf("web default = %v, want %v", got, tt.wantWeb)
			}
			if got := reloaded.GetAPIURL(); got != tt.wantURL {
				t.Errorf("api url = %q, want %q", got, tt.wantURL)
			}
		})
	}
}

func TestLocalSettingsEmpty(t *testing.T) {
	if !(localSettings{}).empty() {
		t.Error("zero value should be empty")
	}
	on := true
	if (localSettings{WebDefault: &on}).empty() {
		t.Error("a set field should not be empty")
	}
}
