package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/kavosh/internal/clipboard"
	"github.com/zhubert/kavosh/internal/logger"
)

// CopiedMsg reports the outcome of a native clipboard write for one item
type CopiedMsg struct {
	Index int
	Epoch uint64
	Err   error
}

// CopyResetMsg ends the "copied" mark of one item
type CopyResetMsg struct {
	Index int
	Epoch uint64
	Gen   uint64
}

// CopyTracker keeps the "copied" mark of each source. Every item has its
// own generation counter, so a reset tick only clears the mark it was
// started for and items never affect each other.
type CopyTracker struct {
	epoch    uint64
	gens     map[int]uint64
	copied   map[int]bool
	duration time.Duration
	write    func(string) error
}

// NewCopyTracker returns a tracker writing through the system clipboard
func NewCopyTracker() *CopyTracker {
	return &CopyTracker{
		gens:     make(map[int]uint64),
		copied:   make(map[int]bool),
		duration: CopiedIndicatorDuration,
		write:    clipboard.WriteText,
	}
}

// Copy writes text to the clipboard on behalf of item index. The terminal
// clipboard is set through OSC 52 and the native clipboard is written in
// the background; its result comes back as a CopiedMsg.
func (c *CopyTracker) Copy(index int, text string) tea.Cmd {
	write := c.write
	epoch := c.epoch
	return tea.Batch(
		// OSC 52 escape sequence (works in modern terminals)
		tea.SetClipboard(text),
		// Native clipboard
		func() tea.Msg {
			return CopiedMsg{Index: index, Epoch: epoch, Err: write(text)}
		},
	)
}

// HandleCopied marks the item as copied and starts its reset timer.
// Failures are logged and otherwise ignored.
func (c *CopyTracker) HandleCopied(msg CopiedMsg) tea.Cmd {
	if msg.Epoch != c.epoch {
		return nil
	}
	if msg.Err != nil {
		logger.Warn("Copy: failed to copy source %d: %v", msg.Index+1, msg.Err)
		return nil
	}

	c.gens[msg.Index]++
	gen := c.gens[msg.Index]
	c.copied[msg.Index] = true

	index, epoch := msg.Index, c.epoch
	return tea.Tick(c.duration, func(time.Time) tea.Msg {
		return CopyResetMsg{Index: index, Epoch: epoch, Gen: gen}
	})
}

// HandleReset clears the mark if the timer is still the item's latest.
// It reports whether anything changed.
func (c *CopyTracker) HandleReset(msg CopyResetMsg) bool {
	if msg.Epoch != c.epoch || c.gens[msg.Index] != msg.Gen || !c.copied[msg.Index] {
		return false
	}
	delete(c.copied, msg.Index)
	return true
}

// Epoch identifies the current answer; copies started before the last
// Clear carry an older one
func (c *CopyTracker) Epoch() uint64 {
	return c.epoch
}

// IsCopied reports whether the item currently shows its mark
func (c *CopyTracker) IsCopied(index int) bool {
	return c.copied[index]
}

// Clear drops all marks. Messages still in flight from before the call
// are ignored, which keeps marks from leaking onto a new answer.
func (c *CopyTracker) Clear() {
	c.epoch++
	c.gens = make(map[int]uint64)
	c.copied = make(map[int]bool)
}
