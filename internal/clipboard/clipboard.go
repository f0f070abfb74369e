// Package clipboard writes text to the system clipboard.
//
// The native clipboard (golang.design/x/clipboard) is tried first. When it
// cannot be initialized, for example in a cgo-less build or without a
// display server, atotto/clipboard shells out to pbcopy, xclip, xsel or
// wl-copy instead.
package clipboard

import (
	"sync"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"

	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the native clipboard. Safe to call multiple times; the
// first result is cached.
func Init() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
		if initErr != nil {
			logger.Warn("Clipboard: native clipboard unavailable: %v", initErr)
			return
		}
		logger.Debug("Clipboard: initialized native clipboard")
	})
	return initErr
}

func writeNative(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func writeCommand(text string) error {
	if atotto.Unsupported {
		return errors.E(errors.Op("clipboard.writeCommand"), errors.KindClipboard, "no clipboard utility found")
	}
	return atotto.WriteAll(text)
}

// writers are tried in order until one succeeds.
var writers = []func(string) error{writeNative, writeCommand}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	var last error
	for _, w := range writers {
		if err := w(text); err != nil {
			last = err
			continue
		}
		logger.Debug("Clipboard: wrote %d bytes of text", len(text))
		return nil
	}
	logger.Warn("Clipboard: all writers failed: %v", last)
	return errors.ClipboardFailed(last)
}
