package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/kavosh/internal/errors"
)

// Config holds the persisted client configuration
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // Persisted theme mode ("light" or "dark")
	APIURL               string `json:"api_url,omitempty"`               // Backend base URL, overridden by env and flags
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when an answer arrives
	WebSearchDefault     bool   `json:"web_search_default,omitempty"`    // Initial state of the web search toggle

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kavosh"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults bound
// to that path, so the first Save creates it.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized normalizes fields after unmarshaling. Not thread-safe;
// only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.Theme != "light" && c.Theme != "dark" {
		// Unknown modes are treated as absent and fall back to light
		c.Theme = ""
	}
}

// Validate checks the loaded values for consistency
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil {
			return errors.ConfigInvalid("api_url is not a valid URL: " + err.Error())
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.ConfigInvalid("api_url must use http or https")
		}
		if u.Host == "" {
			return errors.ConfigInvalid("api_url has no host")
		}
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.saveLocked()
}

// saveLocked writes the config. Callers must hold c.mu.
func (c *Config) saveLocked() error {
	if c.filePath == "" {
		path, err := configPath()
		if err != nil {
			return errors.ConfigSaveFailed("", err)
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns the file the config is read from and saved to
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath points the config at a different file (used by tests)
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetTheme returns the persisted theme mode, or "" if none is stored
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme mode without saving
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// LoadTheme reports the stored theme value and whether one was present.
func (c *Config) LoadTheme() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme, c.Theme != ""
}

// SaveTheme stores the theme value and writes the file in one critical
// section. On a failed write the previous value is restored.
func (c *Config) SaveTheme(theme string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.Theme
	c.Theme = theme
	if err := c.saveLocked(); err != nil {
		c.Theme = prev
		return err
	}
	return nil
}

// GetAPIURL returns the backend URL stored in the file
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIURL
}

// SetAPIURL sets the backend URL
func (c *Config) SetAPIURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIURL = u
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetWebSearchDefault returns the initial web search toggle state
func (c *Config) GetWebSearchDefault() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WebSearchDefault
}

// SetWebSearchDefault sets the initial web search toggle state
func (c *Config) SetWebSearchDefault(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WebSearchDefault = enabled
}
