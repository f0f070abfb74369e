package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// Icon returns the glyph shown before the flash text
func (t FlashType) Icon() string {
	switch t {
	case FlashError:
		return "✕"
	case FlashWarning:
		return "⚠"
	case FlashSuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

// FlashMessage is a transient message that replaces the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	Duration  time.Duration
	CreatedAt time.Time
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterContext is the state the footer picks its bindings from
type FooterContext struct {
	Admin         bool // Admin screen is shown
	AnswerFocused bool // Focus is on the sources list rather than the input
	Pending       bool // A search is in flight
	HasSources    bool // The rendered answer has sources to select
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is visible
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the key bindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case f.ctx.Admin:
		return []KeyBinding{
			{Key: "enter", Desc: "submit"},
			{Key: "tab", Desc: "next field"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "ctrl+u", Desc: "add url"},
			{Key: "esc", Desc: "back"},
		}
	case f.ctx.AnswerFocused:
		return []KeyBinding{
			{Key: "↑/↓", Desc: "select source"},
			{Key: "enter/c", Desc: "copy"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "tab", Desc: "input"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	bindings := []KeyBinding{}
	if !f.ctx.Pending {
		bindings = append(bindings, KeyBinding{Key: "enter", Desc: "search"})
	}
	bindings = append(bindings, KeyBinding{Key: "ctrl+o", Desc: "web search"})
	if f.ctx.HasSources {
		bindings = append(bindings, KeyBinding{Key: "tab", Desc: "sources"})
	}
	bindings = append(bindings,
		KeyBinding{Key: "pgup/dn", Desc: "scroll"},
		KeyBinding{Key: "ctrl+t", Desc: "theme"},
		KeyBinding{Key: "ctrl+g", Desc: "admin"},
		KeyBinding{Key: "ctrl+c", Desc: "quit"},
	)
	return bindings
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var c = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		c = ColorError
	case FlashWarning:
		c = ColorWarning
	case FlashSuccess:
		c = ColorSuccess
	}
	style := lipgloss.NewStyle().Foreground(c)
	return style.Bold(true).Render(f.flashMessage.Type.Icon()) + " " + style.Render(f.flashMessage.Text)
}
