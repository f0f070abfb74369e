package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAPIURL(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		env     string
		public  string
		fileURL string
		want    string
	}{
		{"default", "", "", "", "", DefaultAPIURL},
		{"config file", "", "", "", "http://file:1", "http://file:1"},
		{"public env beats file", "", "", "http://public:2", "http://file:1", "http://public:2"},
		{"env beats public env", "", "http://env:3", "http://public:2", "http://file:1", "http://env:3"},
		{"flag beats all", "http://flag:4/", "http://env:3", "", "http://file:1", "http://flag:4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIURL, tt.env)
			t.Setenv(EnvPublicAPIURL, tt.public)
			cfg := &Config{APIURL: tt.fileURL}

			if got := ResolveAPIURL(tt.flag, cfg); got != tt.want {
				t.Errorf("ResolveAPIURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAPIURL_NilConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvPublicAPIURL, "")
	if got := ResolveAPIURL("", nil); got != DefaultAPIURL {
		t.Errorf("ResolveAPIURL() = %q, want %q", got, DefaultAPIURL)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("KAVOSH_API_URL=http://from-dotenv:8000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL)

	LoadEnv(filepath.Join(dir, "missing.env"), envFile)

	if got := os.Getenv(EnvAPIURL); got != "http://from-dotenv:8000" {
		t.Errorf("%s = %q, want value from .env", EnvAPIURL, got)
	}
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("KAVOSH_API_URL=http://from-dotenv:8000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "http://already-set")
	LoadEnv(envFile)

	if got := os.Getenv(EnvAPIURL); got != "http://already-set" {
		t.Errorf("%s = %q, existing values must win", EnvAPIURL, got)
	}
}
