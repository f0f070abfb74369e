package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/kavosh/internal/theme"
)

// Persian UI text of the search bar
const (
	searchPlaceholder = "سوال خود را بپرسید..."
	webToggleLabel    = "جست‌وجو در وب (در صورت نیاز)"
	emptyQueryHint    = "لطفاً سوال خود را وارد کنید"
	submitLabel       = "⏎ جست‌وجو"
)

// SearchBar holds the draft query and the web search toggle. The draft
// survives submission; the bar is locked while a search is pending.
type SearchBar struct {
	input    textinput.Model
	useWeb   bool
	focused  bool
	disabled bool
	hint     string
	width    int
	tick     int
}

// NewSearchBar returns a focused, empty search bar
func NewSearchBar(webDefault bool) *SearchBar {
	input := textinput.New()
	input.Placeholder = searchPlaceholder
	input.Prompt = "› "
	input.CharLimit = SearchInputCharLimit

	s := &SearchBar{input: input, useWeb: webDefault}
	s.ApplyTheme()
	s.Focus()
	return s
}

// ApplyTheme restyles the input for the active palette
func (s *SearchBar) ApplyTheme() {
	styles := textinput.DefaultStyles(CurrentMode() == theme.ModeDark)
	styles.Focused.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
	styles.Focused.Text = lipgloss.NewStyle().Foreground(ColorText)
	styles.Focused.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
	styles.Blurred.Prompt = lipgloss.NewStyle().Foreground(ColorTextMuted)
	styles.Blurred.Text = lipgloss.NewStyle().Foreground(ColorTextMuted)
	styles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
	styles.Cursor.Color = ColorPrimary
	s.input.SetStyles(styles)
}

// SetWidth sets the outer width of the bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	inner := width - BorderSize - InputPaddingWidth - lipgloss.Width(s.input.Prompt) - 1
	s.input.SetWidth(max(inner, 10))
}

// Focus gives the bar keyboard focus. A disabled bar remembers the focus
// but keeps its input blurred.
func (s *SearchBar) Focus() tea.Cmd {
	s.focused = true
	if s.disabled {
		return nil
	}
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.focused = false
	s.input.Blur()
}

// Focused reports whether the bar has keyboard focus
func (s *SearchBar) Focused() bool {
	return s.focused
}

// SetDisabled locks or unlocks the bar
func (s *SearchBar) SetDisabled(disabled bool) tea.Cmd {
	s.disabled = disabled
	if disabled {
		s.input.Blur()
		return nil
	}
	if s.focused {
		return s.input.Focus()
	}
	return nil
}

// Disabled reports whether the bar is locked
func (s *SearchBar) Disabled() bool {
	return s.disabled
}

// ToggleWeb flips the web search toggle. It returns false when locked.
func (s *SearchBar) ToggleWeb() bool {
	if s.disabled {
		return false
	}
	s.useWeb = !s.useWeb
	return true
}

// UseWebSearch returns the toggle state
func (s *SearchBar) UseWebSearch() bool {
	return s.useWeb
}

// Value returns the raw draft query
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the draft query
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// Hint returns the inline validation hint, if any
func (s *SearchBar) Hint() string {
	return s.hint
}

// SubmitIntent returns the trimmed query and toggle when a submission
// should happen. A blank draft sets the validation hint instead. A locked
// bar never submits.
func (s *SearchBar) SubmitIntent() (query string, useWeb bool, ok bool) {
	if s.disabled {
		return "", false, false
	}
	q := strings.TrimSpace(s.input.Value())
	if q == "" {
		s.hint = emptyQueryHint
		return "", false, false
	}
	s.hint = ""
	return q, s.useWeb, true
}

// Tick advances the pending animation
func (s *SearchBar) Tick() {
	s.tick++
}

// Update forwards input events to the text input. Nothing is accepted
// while the bar is locked or unfocused.
func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	if s.disabled || !s.focused {
		return nil
	}
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.hint = ""
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// View renders the input box and the toggle line
func (s *SearchBar) View() string {
	box := SearchInputStyle
	if s.focused && !s.disabled {
		box = SearchInputFocusedStyle
	}
	width := s.width
	if width <= 0 {
		width = DefaultWrapWidth
	}
	input := box.Width(width).Render(s.input.View())

	check := "[ ]"
	toggleStyle := ToggleOffStyle
	if s.useWeb {
		check = "[x]"
		toggleStyle = ToggleOnStyle
	}
	toggle := toggleStyle.Render(check + " " + webToggleLabel)

	var status string
	switch {
	case s.disabled:
		status = StatusLoadingStyle.Render(spinnerFrame(s.tick) + " " + searchingText)
	case s.hint != "":
		status = HintStyle.Render(s.hint)
	default:
		status = FooterDescStyle.Render(submitLabel)
	}

	gap := max(width-lipgloss.Width(toggle)-lipgloss.Width(status)-2, 1)
	line := " " + toggle + strings.Repeat(" ", gap) + status

	return lipgloss.JoinVertical(lipgloss.Left, input, line)
}
