// Package session holds the caller-owned search session state: the
// status/criteria/results triple, the simulated processing delay, and the
// discarding of stale results when searches overlap. The search core itself
// is synchronous and stateless; everything here is presentation plumbing.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"storefront/internal/model"
	"storefront/internal/service"
)

// Status describes where a session is in its search lifecycle.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusInterpreting Status = "interpreting"
	StatusFiltered     Status = "filtered"
)

// State is the session-state value handed to the consumer on every change.
type State struct {
	Status   Status
	Criteria *model.FilterCriteria
	Results  []model.Product
}

// Consumer receives session state changes. It owns all display concerns,
// including the per-product "add to selection" action; products pass
// through it as opaque values.
type Consumer func(State)

// Session drives searches against the search service on behalf of one
// caller. The processing delay is an explicit cancellable timer: submitting
// a new query or clearing the session cancels a pending one, and results
// from a superseded submission are discarded by generation number.
type Session struct {
	svc      *service.SearchService
	delay    time.Duration
	consumer Consumer

	mu    sync.Mutex
	state State
	gen   uint64
	timer *time.Timer
}

// New creates a session in the idle state.
func New(svc *service.SearchService, delay time.Duration, consumer Consumer) *Session {
	return &Session{
		svc:      svc,
		delay:    delay,
		consumer: consumer,
		state:    State{Status: StatusIdle},
	}
}

// SubmitQuery starts a free-text search. Blank input is a no-op: no
// criteria are produced and no state changes. The configured delay elapses
// before the interpreter runs; a later submission supersedes this one.
func (s *Session) SubmitQuery(ctx context.Context, query string) {
	if isBlank(query) {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.cancelPendingLocked()
	s.state = State{Status: StatusInterpreting}
	s.notifyLocked()

	if s.delay <= 0 {
		s.mu.Unlock()
		s.runSearch(ctx, gen, query)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.runSearch(ctx, gen, query)
	})
	s.mu.Unlock()
}

// SelectCategory applies an explicit category tag immediately, without the
// interpretation delay. Any pending text search is superseded.
func (s *Session) SelectCategory(ctx context.Context, tag string) {
	s.mu.Lock()
	s.gen++
	s.cancelPendingLocked()
	s.mu.Unlock()

	resp, err := s.svc.ByCategory(ctx, tag)
	if err != nil {
		log.Printf("category filter failed: %v", err)
		return
	}

	s.mu.Lock()
	s.state = State{Status: StatusFiltered, Results: resp.Results}
	s.notifyLocked()
	s.mu.Unlock()
}

// Clear abandons the active search and returns the session to idle with
// the full catalog.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	s.cancelPendingLocked()
	s.mu.Unlock()

	products, err := s.svc.Clear(ctx)
	if err != nil {
		log.Printf("clear failed: %v", err)
		products = nil
	}

	s.mu.Lock()
	s.state = State{Status: StatusIdle, Results: products}
	s.notifyLocked()
	s.mu.Unlock()
}

// State returns a snapshot of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) runSearch(ctx context.Context, gen uint64, query string) {
	resp, err := s.svc.Search(ctx, &model.SearchRequest{Query: query})

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer submission supersedes this one; drop the stale result.
	if gen != s.gen {
		return
	}

	if err != nil {
		log.Printf("search failed: %v", err)
		s.state = State{Status: StatusIdle}
		s.notifyLocked()
		return
	}

	s.state = State{
		Status:   StatusFiltered,
		Criteria: resp.Criteria,
		Results:  resp.Results,
	}
	s.notifyLocked()
}

func (s *Session) cancelPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) notifyLocked() {
	if s.consumer != nil {
		s.consumer(s.state)
	}
}

func isBlank(query string) bool {
	for _, r := range query {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
