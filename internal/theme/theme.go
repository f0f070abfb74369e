// Package theme holds the client's light/dark mode state machine.
//
// A Controller is built in two phases. New is pure and always starts in
// light mode; Initialize reads the persisted value once. Toggle is the only
// mutation and writes the new value back through the Store before any
// subscriber observes it.
package theme

import (
	"sync"

	"github.com/zhubert/kavosh/internal/logger"
)

// Mode is the display theme mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode maps a persisted value to a Mode. Absent or unrecognized
// values yield ModeLight and ok=false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	default:
		return ModeLight, false
	}
}

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

func (m Mode) String() string {
	return string(m)
}

// Store persists the theme mode.
type Store interface {
	LoadTheme() (string, bool)
	SaveTheme(string) error
}

// Controller owns the current mode.
type Controller struct {
	mu          sync.Mutex
	store       Store
	mode        Mode
	initialized bool
	subscribers map[int]func(Mode)
	nextID      int
}

// New returns a controller in light mode. It does not touch the store.
func New(store Store) *Controller {
	return &Controller{
		store:       store,
		mode:        ModeLight,
		subscribers: make(map[int]func(Mode)),
	}
}

// Initialize reads the persisted mode. Only the first call has any effect.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}

	mode := ModeLight
	if c.store != nil {
		if raw, ok := c.store.LoadTheme(); ok {
			parsed, known := ParseMode(raw)
			if !known {
				logger.Warn("theme: ignoring unknown persisted mode %q", raw)
			}
			mode = parsed
		}
	}
	c.mode = mode
	c.initialized = true
	subs := c.snapshotLocked()
	c.mu.Unlock()

	logger.Debug("theme: initialized to %s", mode)
	notify(subs, mode)
	return nil
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Initialized reports whether Initialize has run.
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Toggle flips the mode and persists it. If the write fails the mode is
// left unchanged and the error is returned; subscribers are only notified
// of persisted modes.
func (c *Controller) Toggle() (Mode, error) {
	c.mu.Lock()
	next := c.mode.Toggled()
	if c.store != nil {
		if err := c.store.SaveTheme(string(next)); err != nil {
			current := c.mode
			c.mu.Unlock()
			logger.Error("theme: failed to persist %s: %v", next, err)
			return current, err
		}
	}
	c.mode = next
	subs := c.snapshotLocked()
	c.mu.Unlock()

	logger.Info("theme: switched to %s", next)
	notify(subs, next)
	return next, nil
}

// Subscribe registers fn to be called after every mode change. The
// returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Mode)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Controller) snapshotLocked() []func(Mode) {
	subs := make([]func(Mode), 0, len(c.subscribers))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

// notify runs outside the lock so subscribers may read the controller.
func notify(subs []func(Mode), mode Mode) {
	for _, fn := range subs {
		fn(mode)
	}
}
