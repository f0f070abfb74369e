package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/keys"
	"github.com/zhubert/kavosh/internal/logger"
)

// Persian UI text of the admin screen
const (
	adminTitle        = "⚙️ پنل مدیریت"
	adminBackHint     = "← بازگشت به صفحه اصلی"
	adminCurrentTitle = "📊 تنظیمات فعلی"
	adminCredsTitle   = "🔑 تنظیمات OpenAI"
	adminIngestTitle  = "🌐 افزودن محتوا از وب"
	adminSaveLabel    = "ذخیره تنظیمات"
	adminSavingLabel  = "در حال ذخیره..."
	adminIngestLabel  = "افزودن URL"
	adminIngestingLbl = "در حال پردازش..."
	adminURLTitle     = "آدرس URL"
	adminNotLoaded    = "—"
)

// Field keys of the admin forms
const (
	fieldKeyAPIKey    = "api_key"
	fieldKeyBaseURL   = "base_url"
	fieldKeyIngestURL = "ingest_url"
)

// adminField is the input holding keyboard focus
type adminField int

const (
	fieldAPIKey adminField = iota
	fieldBaseURL
	fieldIngestURL
	adminFieldCount
)

// AdminPanel renders an admin.Form as two huh forms: the credentials and
// the URL to ingest. Enter submits the section of the focused input, Tab
// cycles inputs across both forms.
type AdminPanel struct {
	form   *admin.Form
	creds  *huh.Form
	ingest *huh.Form
	focus  adminField
	width  int
	height int
}

// NewAdminPanel returns a panel bound to form
func NewAdminPanel(form *admin.Form) *AdminPanel {
	p := &AdminPanel{form: form}
	p.rebuild()
	return p
}

// Form returns the underlying admin state
func (p *AdminPanel) Form() *admin.Form {
	return p.form
}

// Open prepares the panel for display and loads the current configuration
func (p *AdminPanel) Open() tea.Cmd {
	p.form.ClearBanner()
	p.focus = fieldAPIKey
	p.rebuild()
	return tea.Batch(p.form.LoadConfig(), p.applyFocus())
}

// SetSize sets the panel size
func (p *AdminPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	w := p.formWidth()
	p.creds.WithWidth(w)
	p.ingest.WithWidth(w)
}

// FocusedKey returns the key of the focused input
func (p *AdminPanel) FocusedKey() string {
	switch p.focus {
	case fieldBaseURL:
		return fieldKeyBaseURL
	case fieldIngestURL:
		return fieldKeyIngestURL
	default:
		return fieldKeyAPIKey
	}
}

func (p *AdminPanel) formWidth() int {
	if p.width <= 0 {
		return AdminFormWidth
	}
	return max(min(p.width-4, AdminFormWidth), 20)
}

// rebuild recreates both forms from the current field values
func (p *AdminPanel) rebuild() {
	w := p.formWidth()

	p.creds = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key(fieldKeyAPIKey).
			Title("API Key").
			Placeholder("sk-...").
			EchoMode(huh.EchoModePassword).
			CharLimit(AdminInputCharLimit).
			Value(&p.form.APIKey),
		huh.NewInput().
			Key(fieldKeyBaseURL).
			Title("Base URL").
			Placeholder("https://api.openai.com/v1").
			CharLimit(AdminInputCharLimit).
			Value(&p.form.BaseURL),
	)).WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(w)

	p.ingest = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key(fieldKeyIngestURL).
			Title(adminURLTitle).
			Placeholder("https://example.com/article").
			CharLimit(AdminInputCharLimit).
			Value(&p.form.IngestURL),
	)).WithTheme(FormTheme()).
		WithShowHelp(false).
		WithWidth(w)

	initHuhForm(p.creds)
	initHuhForm(p.ingest)
}

// applyFocus moves huh's field focus to match p.focus
func (p *AdminPanel) applyFocus() tea.Cmd {
	var cmds []tea.Cmd
	if p.focus == fieldIngestURL {
		cmds = append(cmds, p.creds.GetFocusedField().Blur(), p.ingest.GetFocusedField().Focus())
		return tea.Batch(cmds...)
	}

	current := p.creds.GetFocusedField().GetKey()
	switch {
	case p.focus == fieldBaseURL && current != fieldKeyBaseURL:
		cmds = append(cmds, p.creds.NextField())
	case p.focus == fieldAPIKey && current != fieldKeyAPIKey:
		cmds = append(cmds, p.creds.PrevField())
	}
	cmds = append(cmds, p.ingest.GetFocusedField().Blur(), p.creds.GetFocusedField().Focus())
	return tea.Batch(cmds...)
}

func (p *AdminPanel) moveFocus(delta int) tea.Cmd {
	p.focus = adminField((int(p.focus) + delta + int(adminFieldCount)) % int(adminFieldCount))
	return p.applyFocus()
}

// Save submits the credentials. Validation failures only set the banner.
func (p *AdminPanel) Save() tea.Cmd {
	cmd, err := p.form.SaveConfig()
	if err != nil {
		logger.Debug("Admin: save rejected: %v", err)
		return nil
	}
	return cmd
}

// Ingest submits the URL field. Validation failures only set the banner.
func (p *AdminPanel) Ingest() tea.Cmd {
	cmd, err := p.form.Ingest()
	if err != nil {
		logger.Debug("Admin: ingest rejected: %v", err)
		return nil
	}
	return cmd
}

// Update handles keys and admin result messages. Escape is left to the
// caller.
func (p *AdminPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.Enter:
			switch p.focus {
			case fieldAPIKey:
				return p.moveFocus(1)
			case fieldBaseURL:
				return p.Save()
			default:
				return p.Ingest()
			}
		case keys.Tab:
			return p.moveFocus(1)
		case keys.ShiftTab:
			return p.moveFocus(-1)
		case keys.CtrlS:
			return p.Save()
		case keys.CtrlU:
			return p.Ingest()
		}
		return p.updateFocusedForm(msg)

	case admin.ConfigLoadedMsg, admin.ConfigSavedMsg, admin.IngestedMsg:
		cmd := p.form.Update(msg)
		// Field values may have changed underneath the inputs
		p.rebuild()
		return tea.Batch(cmd, p.applyFocus())
	}

	return p.updateFocusedForm(msg)
}

func (p *AdminPanel) updateFocusedForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if p.focus == fieldIngestURL {
		p.ingest, cmd = huhFormUpdate(p.ingest, msg)
	} else {
		p.creds, cmd = huhFormUpdate(p.creds, msg)
	}
	return cmd
}

// View renders the panel
func (p *AdminPanel) View() string {
	var sections []string

	sections = append(sections,
		PanelTitleStyle.Render(adminTitle)+"  "+FooterDescStyle.Render("esc: "+adminBackHint),
	)

	if b := p.form.Banner(); b.Kind != admin.BannerNone {
		style := BannerSuccessStyle
		if b.Kind == admin.BannerError {
			style = BannerErrorStyle
		}
		sections = append(sections, style.Render(sanitizeLine(b.Text)))
	}

	sections = append(sections, SectionTitleStyle.Render(adminCurrentTitle), p.renderCurrent())

	saveLabel := FooterKeyStyle.Render("ctrl+s") + " " + FooterDescStyle.Render(adminSaveLabel)
	if p.form.Saving() {
		saveLabel = StatusLoadingStyle.Render(adminSavingLabel)
	}
	sections = append(sections, SectionTitleStyle.Render(adminCredsTitle), p.creds.View(), saveLabel)

	ingestLabel := FooterKeyStyle.Render("ctrl+u") + " " + FooterDescStyle.Render(adminIngestLabel)
	if p.form.Ingesting() {
		ingestLabel = StatusLoadingStyle.Render(adminIngestingLbl)
	}
	sections = append(sections, SectionTitleStyle.Render(adminIngestTitle), p.ingest.View(), ingestLabel)

	style := lipgloss.NewStyle().Padding(0, 1)
	if p.height > 0 {
		style = style.MaxHeight(p.height)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (p *AdminPanel) renderCurrent() string {
	cfg := p.form.Current()
	if cfg == nil {
		return "  " + FooterDescStyle.Render(adminNotLoaded)
	}
	rows := [][2]string{
		{"API Key", cfg.APIKeyMasked},
		{"Base URL", cfg.BaseURL},
		{"Model", cfg.Model},
	}
	var lines []string
	for _, r := range rows {
		v := sanitizeLine(r[1])
		if strings.TrimSpace(v) == "" {
			v = adminNotLoaded
		}
		lines = append(lines, "  "+FooterKeyStyle.Render(r[0]+":")+" "+SourceTextStyle.Render(v))
	}
	return strings.Join(lines, "\n")
}
