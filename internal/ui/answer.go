package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/kavosh/internal/markdown"
	"github.com/zhubert/kavosh/internal/search"
	"github.com/zhubert/kavosh/internal/theme"
)

// Persian UI text of the answer area
const (
	welcomeTitle   = "به کاوش خوش آمدید"
	welcomeText    = "سوال خود را در کادر پایین بنویسید و Enter را بزنید."
	welcomeWebHint = "با ctrl+o جست‌وجو در وب را فعال کنید."
	searchingText  = "در حال جست‌وجو..."
	sourcesTitle   = "منابع"
	passagesTitle  = "بخش‌های بازیابی‌شده"
	copiedMark     = "✓ کپی شد"
	webMark        = "🌐"
)

// maxPassagePreview bounds the passage text shown per line
const maxPassagePreview = 80

// AnswerView renders the current search session inside a scrollable
// viewport. When focused, up/down select a source for copying.
type AnswerView struct {
	viewport viewport.Model
	session  search.Session
	copies   *CopyTracker
	selected int
	focused  bool
	width    int
	height   int
	tick     int
	now      func() time.Time

	// sourceLines maps each source to its line in the rendered content
	sourceLines []int

	// The rendered answer is reused until the session, width or mode changes
	answerKey  answerKey
	answerText string
}

type answerKey struct {
	id     string
	answer string
	width  int
	mode   theme.Mode
}

// NewAnswerView returns an empty view showing the welcome message
func NewAnswerView(copies *CopyTracker) *AnswerView {
	a := &AnswerView{
		viewport: viewport.New(),
		copies:   copies,
		selected: -1,
		now:      time.Now,
	}
	a.refresh()
	return a
}

// SetSize sets the outer size of the view
func (a *AnswerView) SetSize(width, height int) {
	a.width = width
	a.height = height
	a.viewport.SetWidth(width)
	a.viewport.SetHeight(height)
	a.refresh()
}

// SetSession replaces the rendered session. A different session resets
// the selection and scrolls back to the top.
func (a *AnswerView) SetSession(s search.Session) {
	changed := s.ID != a.session.ID || s.Status != a.session.Status
	a.session = s
	if changed {
		a.selected = -1
		if len(s.Sources) == 0 {
			a.focused = false
		}
	}
	a.refresh()
	if changed {
		a.viewport.GotoTop()
	}
}

// Session returns the rendered session
func (a *AnswerView) Session() search.Session {
	return a.session
}

// HasSources reports whether there are sources to select
func (a *AnswerView) HasSources() bool {
	return a.session.Status == search.StatusSucceeded && len(a.session.Sources) > 0
}

// SetFocused moves keyboard focus to or from the sources list. Focus
// selects the first source when none is selected.
func (a *AnswerView) SetFocused(focused bool) {
	if focused && !a.HasSources() {
		focused = false
	}
	a.focused = focused
	if focused && a.selected < 0 {
		a.selected = 0
	}
	a.refresh()
	a.ensureSelectedVisible()
}

// Focused reports whether the sources list has keyboard focus
func (a *AnswerView) Focused() bool {
	return a.focused
}

// Select moves the selection by delta, clamped to the list
func (a *AnswerView) Select(delta int) {
	n := len(a.session.Sources)
	if !a.HasSources() {
		return
	}
	a.selected = min(max(a.selected+delta, 0), n-1)
	a.refresh()
	a.ensureSelectedVisible()
}

// Selected returns the selected source index, or -1
func (a *AnswerView) Selected() int {
	return a.selected
}

// SelectedSource returns the selected source text
func (a *AnswerView) SelectedSource() (int, string, bool) {
	if !a.HasSources() || a.selected < 0 || a.selected >= len(a.session.Sources) {
		return -1, "", false
	}
	return a.selected, a.session.Sources[a.selected], true
}

// Tick advances the pending animation
func (a *AnswerView) Tick() {
	a.tick++
	if a.session.Status == search.StatusPending {
		a.refresh()
	}
}

// Refresh re-renders the content, e.g. after a theme change or a copy mark
func (a *AnswerView) Refresh() {
	a.refresh()
}

// ScrollUp scrolls the viewport up by n lines
func (a *AnswerView) ScrollUp(n int) { a.viewport.ScrollUp(n) }

// ScrollDown scrolls the viewport down by n lines
func (a *AnswerView) ScrollDown(n int) { a.viewport.ScrollDown(n) }

// PageUp scrolls the viewport up by one page
func (a *AnswerView) PageUp() { a.viewport.PageUp() }

// PageDown scrolls the viewport down by one page
func (a *AnswerView) PageDown() { a.viewport.PageDown() }

// GotoTop scrolls to the top
func (a *AnswerView) GotoTop() { a.viewport.GotoTop() }

// GotoBottom scrolls to the bottom
func (a *AnswerView) GotoBottom() { a.viewport.GotoBottom() }

// Update forwards messages (mouse wheel) to the viewport
func (a *AnswerView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

// Content returns the full rendered content, not clipped to the viewport
func (a *AnswerView) Content() string {
	return a.viewport.GetContent()
}

// View renders the visible part of the content
func (a *AnswerView) View() string {
	return a.viewport.View()
}

func (a *AnswerView) ensureSelectedVisible() {
	if a.selected < 0 || a.selected >= len(a.sourceLines) {
		return
	}
	a.viewport.EnsureVisible(a.sourceLines[a.selected], 0, 0)
}

// contentWidth is the reading column width
func (a *AnswerView) contentWidth() int {
	w := a.width
	if w <= 0 {
		w = DefaultWrapWidth
	}
	return max(min(w, MaxContentWidth)-2, 10)
}

func (a *AnswerView) refresh() {
	offset := a.viewport.YOffset()
	a.viewport.SetContent(a.render())
	a.viewport.SetYOffset(offset)
}

func (a *AnswerView) render() string {
	width := a.contentWidth()
	a.sourceLines = a.sourceLines[:0]

	switch a.session.Status {
	case search.StatusIdle:
		return a.renderWelcome(width)
	case search.StatusPending:
		return a.renderQuery(width) + "\n\n" + a.renderPending()
	case search.StatusFailed:
		return a.renderQuery(width) + "\n\n" + AnswerErrorStyle.Width(width).Render(sanitizeLine(a.session.ErrorMessage))
	}

	var sb strings.Builder
	sb.WriteString(a.renderQuery(width))
	sb.WriteString("\n\n")
	sb.WriteString(a.renderAnswer(width))

	if len(a.session.Sources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(SectionTitleStyle.Render(fmt.Sprintf("%s (%d)", sourcesTitle, len(a.session.Sources))))
		for i, src := range a.session.Sources {
			sb.WriteString("\n")
			a.sourceLines = append(a.sourceLines, strings.Count(sb.String(), "\n"))
			sb.WriteString(a.renderSource(i, src, width))
		}
	}

	if len(a.session.Passages) > 0 {
		sb.WriteString("\n")
		sb.WriteString(a.renderPassages(width))
	}

	return sb.String()
}

func (a *AnswerView) renderAnswer(width int) string {
	key := answerKey{id: a.session.ID, answer: a.session.Answer, width: width, mode: CurrentMode()}
	if key != a.answerKey || a.answerText == "" {
		a.answerKey = key
		a.answerText = RenderMarkdown(a.session.Answer, width)
	}
	return a.answerText
}

func (a *AnswerView) renderWelcome(width int) string {
	lines := []string{
		WelcomeTitleStyle.Render(welcomeTitle),
		"",
		WelcomeTextStyle.Render(wrapText(welcomeText, width)),
		WelcomeTextStyle.Render(wrapText(welcomeWebHint, width)),
	}
	return strings.Join(lines, "\n")
}

func (a *AnswerView) renderQuery(width int) string {
	q := sanitizeLine(a.session.Query)
	if a.session.UseWebSearch {
		q = webMark + " " + q
	}
	return QueryStyle.Render(wrapText(q, width))
}

func (a *AnswerView) renderPending() string {
	elapsed := a.session.Elapsed(a.now()).Truncate(time.Second)
	return StatusLoadingStyle.Render(fmt.Sprintf("%s %s (%s)", spinnerFrame(a.tick), searchingText, elapsed))
}

func (a *AnswerView) renderSource(i int, src string, width int) string {
	index := SourceIndexStyle.Render(fmt.Sprintf("%d. ", i+1))
	prefix := "  "
	if a.focused && i == a.selected {
		prefix = MarkdownListBulletStyle.Render("› ")
	}

	mark := ""
	if a.copies != nil && a.copies.IsCopied(i) {
		mark = " " + CopiedStyle.Render(copiedMark)
	}

	// Room left after prefix, index and mark
	room := max(width-2-runewidth.StringWidth(fmt.Sprintf("%d. ", i+1))-runewidth.StringWidth(mark)-1, 8)
	text := runewidth.Truncate(sanitizeLine(src), room, "…")

	style := SourceTextStyle
	if a.focused && i == a.selected {
		style = SourceSelectedStyle
	}
	rendered := style.Render(text)
	if markdown.IsWebURL(src) {
		rendered = hyperlink(src, style.Underline(true).Render(text))
	}

	return prefix + index + rendered + mark
}

func (a *AnswerView) renderPassages(width int) string {
	lines := []string{SectionTitleStyle.Render(fmt.Sprintf("%s (%d)", passagesTitle, len(a.session.Passages)))}
	for _, p := range a.session.Passages {
		label := p.Metadata.Title
		if label == "" {
			label = p.Metadata.URL
		}
		preview := sanitizeLine(p.Text)
		if label != "" {
			preview = sanitizeLine(label) + " · " + preview
		}
		score := PassageScoreStyle.Render(fmt.Sprintf("%.2f", p.Score))
		room := max(min(width-8, maxPassagePreview), 8)
		lines = append(lines, "  "+score+"  "+PassageTextStyle.Render(runewidth.Truncate(preview, room, "…")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// sanitizeLine strips control characters and folds newlines to spaces
func sanitizeLine(s string) string {
	s = markdown.Sanitize(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}
