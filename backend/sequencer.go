package backend

import (
	"context"
	"sync"
)

// Sequencer serializes overlapping fetches for one view: each Begin
// supersedes and cancels the previous in-flight request, and only the latest
// generation is allowed to apply its result. A slow stale response can never
// overwrite a newer one.
type Sequencer struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin starts a new fetch generation. It cancels the previous generation's
// context and returns a derived context plus a commit func: commit reports
// whether this generation is still the latest, so the caller applies the
// result only when it returns true.
func (s *Sequencer) Begin(ctx context.Context) (context.Context, func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen

	return ctx, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return gen == s.gen
	}
}
