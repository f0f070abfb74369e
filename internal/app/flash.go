package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/ui"
)

// Persian flash texts
const (
	msgThemeSaveFailed = "ذخیره‌ی تم ناموفق بود"
	msgBackendDown     = "سرور در دسترس نیست"
	msgBackendUp       = "اتصال به سرور برقرار است"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
