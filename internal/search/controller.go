package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/logger"
)

// Searcher performs the backend call. *api.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResult, error)
}

// ResultMsg carries the outcome of the request started by Submit.
type ResultMsg struct {
	Seq    uint64
	Result *api.SearchResult
	Err    error
}

// Controller owns the current Session. It is not safe for concurrent use;
// it lives inside the Bubble Tea update loop.
type Controller struct {
	searcher Searcher
	session  Session
	seq      uint64
	now      func() time.Time
	log      *slog.Logger
}

// NewController returns an Idle controller.
func NewController(searcher Searcher) *Controller {
	return &Controller{
		searcher: searcher,
		now:      time.Now,
		log:      logger.ComponentLogger("Search"),
	}
}

// NormalizeQuery trims surrounding whitespace and puts the text in NFC so
// visually identical Persian input produces the same request.
func NormalizeQuery(q string) string {
	return norm.NFC.String(strings.TrimSpace(q))
}

// Submit starts a new search. A blank query returns a validation error and
// leaves the state untouched. Otherwise the previous session is replaced by
// a Pending one and the returned command performs exactly one request.
func (c *Controller) Submit(query string, useWebSearch bool) (tea.Cmd, error) {
	q := NormalizeQuery(query)
	if q == "" {
		return nil, errors.EmptyQuery()
	}

	c.seq++
	c.session = Session{
		ID:           uuid.New().String(),
		Seq:          c.seq,
		Query:        q,
		UseWebSearch: useWebSearch,
		Status:       StatusPending,
		StartedAt:    c.now(),
	}
	c.log.Info("search submitted", "sessionID", c.session.ID, "seq", c.seq, "web", useWebSearch)

	searcher := c.searcher
	seq := c.seq
	req := api.SearchRequest{Query: q, UseWebSearch: useWebSearch, TopK: TopK}
	return func() tea.Msg {
		res, err := searcher.Search(context.Background(), req)
		return ResultMsg{Seq: seq, Result: res, Err: err}
	}, nil
}

// Apply folds a result into the session. It returns false, changing
// nothing, when the result belongs to an earlier submission.
func (c *Controller) Apply(msg ResultMsg) bool {
	if msg.Seq != c.seq || c.session.Status != StatusPending {
		c.log.Debug("discarding stale result", "seq", msg.Seq, "current", c.seq)
		return false
	}

	c.session.FinishedAt = c.now()
	log := logger.WithSession(c.session.ID)

	if msg.Err != nil || msg.Result == nil {
		err := msg.Err
		if err == nil {
			err = errors.MalformedResponse(errors.Op("search.Apply"), nil)
		}
		c.session.Status = StatusFailed
		c.session.ErrorMessage = api.UserMessage(err, FallbackErrorMessage)
		log.Warn("search failed", "error", err, "kind", errors.GetKind(err).String(), "elapsed", c.session.Elapsed(c.now()))
		return true
	}

	sources := msg.Result.Sources
	if sources == nil {
		sources = []string{}
	}
	c.session.Status = StatusSucceeded
	c.session.Answer = msg.Result.Answer
	c.session.Sources = sources
	c.session.Passages = msg.Result.Passages
	log.Info("search succeeded", "sources", len(sources), "elapsed", c.session.Elapsed(c.now()))
	return true
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.session
	if s.Sources != nil {
		s.Sources = make([]string, len(c.session.Sources))
		copy(s.Sources, c.session.Sources)
	}
	if s.Passages != nil {
		s.Passages = make([]api.Passage, len(c.session.Passages))
		copy(s.Passages, c.session.Passages)
	}
	return s
}

// Pending reports whether a search is in flight.
func (c *Controller) Pending() bool {
	return c.session.Status == StatusPending
}

// Run submits a query and blocks until its result has been applied. It is
// the non-interactive path used by the CLI.
func (c *Controller) Run(query string, useWebSearch bool) (Session, error) {
	cmd, err := c.Submit(query, useWebSearch)
	if err != nil {
		return c.Session(), err
	}
	if msg, ok := cmd().(ResultMsg); ok {
		c.Apply(msg)
	}
	return c.Session(), nil
}
