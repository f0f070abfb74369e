package ui

import "charm.land/lipgloss/v2"

// Color palette (updated by regenerateStyles)
var (
	ColorPrimary     = lipgloss.Color("#6366F1") // Indigo
	ColorSecondary   = lipgloss.Color("#0891B2") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#D1D5DB") // Light gray
	ColorBorderFocus = lipgloss.Color("#6366F1") // Indigo when focused
	ColorBg          = lipgloss.Color("#FFFFFF") // Background
	ColorText        = lipgloss.Color("#1F2937") // Text
	ColorTextMuted   = lipgloss.Color("#6B7280") // Muted text
	ColorTextInverse = lipgloss.Color("#FFFFFF") // Text on colored backgrounds
	ColorWarning     = lipgloss.Color("#D97706") // Amber for hints
	ColorInfo        = lipgloss.Color("#0891B2") // Cyan for info
	ColorError       = lipgloss.Color("#DC2626") // Red for errors
	ColorSuccess     = lipgloss.Color("#16A34A") // Green for success
)

// Header styles
var (
	HeaderStyle      lipgloss.Style
	HeaderTitleStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Search bar styles
var (
	SearchInputStyle        lipgloss.Style
	SearchInputFocusedStyle lipgloss.Style
	ToggleOnStyle           lipgloss.Style
	ToggleOffStyle          lipgloss.Style
	HintStyle               lipgloss.Style
)

// Answer styles
var (
	QueryStyle          lipgloss.Style
	WelcomeTitleStyle   lipgloss.Style
	WelcomeTextStyle    lipgloss.Style
	AnswerErrorStyle    lipgloss.Style
	SectionTitleStyle   lipgloss.Style
	SourceIndexStyle    lipgloss.Style
	SourceTextStyle     lipgloss.Style
	SourceSelectedStyle lipgloss.Style
	CopiedStyle         lipgloss.Style
	PassageScoreStyle   lipgloss.Style
	PassageTextStyle    lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Admin banner styles
var (
	BannerSuccessStyle lipgloss.Style
	BannerErrorStyle   lipgloss.Style
)

// Markdown rendering styles
var (
	// Headers
	MarkdownH1Style lipgloss.Style
	MarkdownH2Style lipgloss.Style
	MarkdownH3Style lipgloss.Style
	MarkdownH4Style lipgloss.Style

	// Inline styles
	MarkdownTextStyle       lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownItalicStyle     lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style

	// Blocks
	MarkdownCodeBlockStyle  lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
	MarkdownBlockquoteStyle lipgloss.Style
	MarkdownHRStyle         lipgloss.Style
)
