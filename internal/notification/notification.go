// Package notification sends desktop notifications through beeep, which
// uses D-Bus or notify-send on Linux, osascript on macOS and the toast API
// on Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/kavosh/internal/logger"
)

// AppName is the notification title.
const AppName = "Kavosh"

var notify = beeep.Notify

// SetNotifier replaces the notification backend (used by tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: sending title=%q message=%q", title, message)
	// Empty icon lets beeep pick the platform default
	err := notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// maxQueryRunes keeps the notification body on one line.
const maxQueryRunes = 60

// AnswerReady announces that the answer to query has arrived.
func AnswerReady(query string) error {
	r := []rune(query)
	if len(r) > maxQueryRunes {
		query = string(r[:maxQueryRunes-1]) + "…"
	}
	return Send(AppName, "پاسخ آماده است: "+query)
}
