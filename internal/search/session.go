// Package search drives the lifecycle of a single query/answer exchange.
//
// A Controller holds at most one live Session. Submitting moves it to
// Pending right away and hands back a tea.Cmd that performs the request;
// the result re-enters through Apply, which ignores anything that does not
// belong to the latest submission.
package search

import (
	"time"

	"github.com/zhubert/kavosh/internal/api"
)

// TopK is the number of passages requested per search.
const TopK = 5

// FallbackErrorMessage is shown when a search fails without a server detail.
const FallbackErrorMessage = "خطا در دریافت پاسخ از سرور رخ داد. لطفاً دوباره تلاش کنید."

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is one query/answer exchange. Answer, Sources and Passages are
// only set when Succeeded; ErrorMessage only when Failed.
type Session struct {
	ID           string
	Seq          uint64
	Query        string
	UseWebSearch bool
	Status       Status

	Answer   string
	Sources  []string
	Passages []api.Passage

	ErrorMessage string

	StartedAt  time.Time
	FinishedAt time.Time
}

// Elapsed is the time since submission, or the total duration once the
// session has finished.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
