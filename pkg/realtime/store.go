package realtime

import (
	"context"
	"sync"
	"time"
)

// Instance holds state and a broadcaster for one widget instance.
type Instance[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// InstanceStore manages widget instances, their broadcasters, and their
// timing loops. Disposal of an instance cancels its loop and closes its
// broadcaster so no callback can touch a discarded state.
type InstanceStore[T any] struct {
	mu        sync.RWMutex
	instances map[string]*Instance[T]
	loops     map[string]context.CancelFunc
	wakes     map[string]chan struct{}
}

// NewInstanceStore creates an empty instance store.
func NewInstanceStore[T any]() *InstanceStore[T] {
	return &InstanceStore[T]{
		instances: make(map[string]*Instance[T]),
		loops:     make(map[string]context.CancelFunc),
		wakes:     make(map[string]chan struct{}),
	}
}

// Create adds an instance with the given id and state, and a new Broadcaster.
func (s *InstanceStore[T]) Create(id string, state T) *Instance[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst := &Instance[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.instances[id] = inst
	return inst
}

// Get returns the instance by ID if it exists.
func (s *InstanceStore[T]) Get(id string) (*Instance[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// Publish notifies subscribers of the instance's broadcaster.
func (s *InstanceStore[T]) Publish(id string, event string) {
	s.Broadcaster(id).Publish(event)
}

// Broadcaster returns the broadcaster for the instance, creating one for an
// unknown id so subscribers never receive nil.
func (s *InstanceStore[T]) Broadcaster(id string) *Broadcaster {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[id]
	if !ok {
		hub := NewBroadcaster()
		s.instances[id] = &Instance[T]{ID: id, hub: hub}
		return hub
	}
	if inst.hub == nil {
		inst.hub = NewBroadcaster()
	}
	return inst.hub
}

// Remove disposes the instance: cancels its loop, closes its broadcaster,
// and drops it from the store. Safe to call for an unknown id.
func (s *InstanceStore[T]) Remove(id string) {
	s.mu.Lock()
	cancel := s.loops[id]
	inst := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if inst != nil && inst.hub != nil {
		inst.hub.Close()
	}
}

// TickFunc is called by RunLoop to advance state and determine the next wake
// time and events to publish. stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []string, stop bool)

// RunLoop starts a timing loop for the instance. If a loop already exists
// for id, it is not started again, so callers may invoke it on every state
// transition that could need the timer re-armed.
func (s *InstanceStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if _, ok := s.loops[id]; ok {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	wake := make(chan struct{}, 1)
	s.loops[id] = cancel
	s.wakes[id] = wake
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.loops, id)
			delete(s.wakes, id)
			s.mu.Unlock()
		}()

		for {
			state := getState()
			now := time.Now().UTC()
			next, events, stop := tick(state, now)
			if stop {
				return
			}
			// Publish before sleeping so the UI reflects an advance as soon
			// as it happens, not when the next timer fires.
			for _, e := range events {
				s.Publish(id, e)
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				// Timer fired; loop re-runs tick.
			case <-wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				continue
			}
		}
	}()
}

// Wake unblocks the instance's loop so it recomputes immediately, e.g. after
// a manual reorder resets the autoplay clock.
func (s *InstanceStore[T]) Wake(id string) {
	s.mu.RLock()
	wake, ok := s.wakes[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}

// LoopRunning reports whether a timing loop is currently live for id.
func (s *InstanceStore[T]) LoopRunning(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}
