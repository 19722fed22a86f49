package stack

import (
	"time"

	"cardstack/pkg/realtime"
)

// Event names published to stream subscribers.
const (
	EventDeck  = "deck"  // deck order changed
	EventZoom  = "zoom"  // zoom modal opened or closed
	EventState = "state" // pause / viewport flags changed
)

// Store holds widget instances and delegates to realtime.InstanceStore for
// lifecycle, broadcast, and the autoplay loop.
type Store struct {
	r *realtime.InstanceStore[*Stack]
}

// NewStore creates an in-memory instance store with stream broadcasters.
func NewStore() *Store {
	return &Store{r: realtime.NewInstanceStore[*Stack]()}
}

// CreateStack initializes an instance and registers its broadcaster.
func (s *Store) CreateStack(cards []Card, opts Options, rng RNG) *Stack {
	st := New(cards, opts, rng, time.Now().UTC())
	s.r.Create(st.ID, st)
	return st
}

// GetStack returns an instance by ID if it exists.
func (s *Store) GetStack(id string) (*Stack, bool) {
	inst, ok := s.r.Get(id)
	if !ok || inst.State == nil {
		return nil, false
	}
	return inst.State, true
}

// Broadcaster returns the stream broadcaster for an instance.
func (s *Store) Broadcaster(id string) *realtime.Broadcaster {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of an instance update with a typed event.
func (s *Store) Publish(id string, event string) {
	s.r.Publish(id, event)
}

// EnsureAutoplayLoop starts the autoplay loop for an instance if not already
// running. The loop exits whenever the schedule is ineligible (paused,
// single card, disposed), so callers invoke this again on any transition
// that could resume autoplay.
func (s *Store) EnsureAutoplayLoop(id string) {
	getState := func() *Stack {
		st, ok := s.GetStack(id)
		if !ok {
			return nil
		}
		return st
	}
	tick := func(state *Stack, now time.Time) (time.Time, []string, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		next, ok := state.NextTimer(now)
		if !ok {
			return time.Time{}, nil, true
		}
		if state.AdvanceIfNeeded(now) {
			next2, ok2 := state.NextTimer(now)
			if !ok2 {
				return time.Time{}, []string{EventDeck}, false
			}
			return next2, []string{EventDeck}, false
		}
		return next, nil, false
	}
	s.r.RunLoop(id, getState, tick)
}

// WakeAutoplayLoop unblocks the loop so it recomputes immediately, e.g.
// after the interval or deck changed under it.
func (s *Store) WakeAutoplayLoop(id string) {
	s.r.Wake(id)
}

// AutoplayLoopRunning reports whether the instance's loop is live.
func (s *Store) AutoplayLoopRunning(id string) bool {
	return s.r.LoopRunning(id)
}

// DisposeStack tears an instance down: controller disposed, loop cancelled,
// broadcaster closed, entry removed. Safe for unknown ids.
func (s *Store) DisposeStack(id string) {
	if st, ok := s.GetStack(id); ok {
		st.Dispose()
	}
	s.r.Remove(id)
}
