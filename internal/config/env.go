package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zhubert/kavosh/internal/logger"
)

// DefaultAPIURL is used when no flag, environment variable or config value
// names a backend.
const DefaultAPIURL = "http://localhost:8000"

// Environment variables consulted for the backend URL, in order.
const (
	EnvAPIURL       = "KAVOSH_API_URL"
	EnvPublicAPIURL = "NEXT_PUBLIC_API_URL"
)

// LoadEnv loads .env style files into the process environment. Variables
// already set are never overridden and missing files are skipped.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Warn("config: failed to load %s: %v", f, err)
			continue
		}
		logger.Debug("config: loaded environment from %s", f)
	}
}

// ResolveAPIURL picks the backend URL. Precedence is flag, then
// environment, then config file, then DefaultAPIURL. A trailing slash is
// removed so paths can be appended directly.
func ResolveAPIURL(flag string, cfg *Config) string {
	candidates := []string{flag, os.Getenv(EnvAPIURL), os.Getenv(EnvPublicAPIURL)}
	if cfg != nil {
		candidates = append(candidates, cfg.GetAPIURL())
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return strings.TrimRight(c, "/")
		}
	}
	return DefaultAPIURL
}
