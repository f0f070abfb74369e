package cmd

import (
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/fatih/color"

	"github.com/zhubert/kavosh/internal/admin"
	"github.com/zhubert/kavosh/internal/markdown"
)

// runAdmin executes cmd synchronously and folds its result into form.
// Follow-up commands (the reload after a save) are run as well.
func runAdmin(form *admin.Form, cmd tea.Cmd) {
	for cmd != nil {
		cmd = form.Update(cmd())
	}
}

// reportBanner prints the form's banner and turns an error banner into
// an error
func reportBanner(w io.Writer, form *admin.Form) error {
	b := form.Banner()
	text := markdown.Sanitize(b.Text)
	switch b.Kind {
	case admin.BannerError:
		return fmt.Errorf("%s", text)
	case admin.BannerSuccess:
		color.New(color.FgGreen).Fprintln(w, text)
	}
	return nil
}
