package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"deal-engine/domain"
	"deal-engine/logger"
	"deal-engine/service"
)

// Calculator is the remote calculation call a LiveSession drives.
type Calculator interface {
	Calculate(ctx context.Context, strategy domain.Strategy, input any) (json.RawMessage, error)
}

// Update is one delivered recalculation.
type Update struct {
	Token  uint64
	Result json.RawMessage
	Err    error
}

// LiveSession recalculates a single worksheet while its inputs are being
// edited. Changes are debounced, and a response is delivered only if no
// newer request was issued after it.
type LiveSession struct {
	ctx       context.Context
	calc      Calculator
	strategy  domain.Strategy
	debouncer *service.Debouncer
	tracker   service.RequestTracker
	deliver   func(Update)
	log       logger.Logger

	mu        sync.Mutex
	idle      *sync.Cond
	pending   any
	scheduled bool
	inflight  int
}

// NewLiveSession creates a session. deliver is called from a background
// goroutine, at most once per accepted response.
func NewLiveSession(
	ctx context.Context,
	calc Calculator,
	strategy domain.Strategy,
	delay time.Duration,
	deliver func(Update),
	log logger.Logger,
) *LiveSession {
	s := &LiveSession{
		ctx:       ctx,
		calc:      calc,
		strategy:  strategy,
		debouncer: service.NewDebouncer(delay),
		deliver:   deliver,
		log:       log,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Change records new inputs. The request is sent once inputs stop changing
// for the debounce delay.
func (s *LiveSession) Change(input any) {
	s.mu.Lock()
	s.pending = input
	s.scheduled = true
	s.mu.Unlock()
	s.debouncer.Trigger(s.fire)
}

// Flush sends a still-debounced change immediately and waits until no
// request is in flight.
func (s *LiveSession) Flush() {
	s.debouncer.Stop()
	if input, ok := s.claim(); ok {
		s.send(input)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
}

// Close drops any pending change. Requests already in flight are not
// aborted; their results are discarded.
func (s *LiveSession) Close() {
	s.mu.Lock()
	s.scheduled = false
	s.mu.Unlock()
	s.debouncer.Stop()
	s.tracker.Next()
}

// fire runs when the debounce delay elapses.
func (s *LiveSession) fire() {
	if input, ok := s.claim(); ok {
		s.send(input)
	}
}

// claim takes the pending change, if it has not been sent yet, and counts
// it as in flight. The timer and Flush race for it; only one wins.
func (s *LiveSession) claim() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scheduled {
		return nil, false
	}
	s.scheduled = false
	s.inflight++
	return s.pending, true
}

func (s *LiveSession) recalculate(input any) {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.send(input)
}

// send issues one request; the caller has already counted it in flight.
func (s *LiveSession) send(input any) {
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.idle.Broadcast()
		s.mu.Unlock()
	}()

	token := s.tracker.Next()
	result, err := s.calc.Calculate(s.ctx, s.strategy, input)

	delivered := s.tracker.Apply(token, func() {
		s.deliver(Update{Token: token, Result: result, Err: err})
	})
	if !delivered {
		s.log.Debug("discarded stale response", map[string]interface{}{
			"strategy": string(s.strategy),
			"token":    token,
		})
	}
}
