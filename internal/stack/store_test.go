package stack

import (
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	if s == nil {
		t.Fatal("NewStore returned nil")
	}
}

func TestStore_CreateStack_GetStack(t *testing.T) {
	s := NewStore()
	st := s.CreateStack(cardsFixture("a", "b"), DefaultOptions(), nil)
	if st == nil {
		t.Fatal("CreateStack returned nil")
	}
	if st.ID == "" {
		t.Error("stack ID is empty")
	}

	got, ok := s.GetStack(st.ID)
	if !ok {
		t.Fatal("GetStack returned false for existing stack")
	}
	if got != st {
		t.Error("GetStack returned different pointer")
	}

	_, ok = s.GetStack("nonexistent")
	if ok {
		t.Error("GetStack should return false for missing ID")
	}
}

func TestStore_Publish(t *testing.T) {
	s := NewStore()
	st := s.CreateStack(cardsFixture("a"), DefaultOptions(), nil)
	hub := s.Broadcaster(st.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish(st.ID, EventDeck)
	got := <-ch
	if got != EventDeck {
		t.Errorf("got event %q, want %q", got, EventDeck)
	}
}

func TestStore_EnsureAutoplayLoop_Idempotent(t *testing.T) {
	s := NewStore()
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.AutoplayDelay = 50 * time.Millisecond
	st := s.CreateStack(cardsFixture("a", "b"), opts, nil)

	// Calling twice should not panic or double-start.
	s.EnsureAutoplayLoop(st.ID)
	s.EnsureAutoplayLoop(st.ID)
}

func TestStore_AutoplayLoopAdvancesDeck(t *testing.T) {
	s := NewStore()
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.AutoplayDelay = 20 * time.Millisecond
	st := s.CreateStack(cardsFixture("a", "b"), opts, nil)

	hub := s.Broadcaster(st.ID)
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.EnsureAutoplayLoop(st.ID)
	select {
	case got := <-ch:
		if got != EventDeck {
			t.Errorf("got event %q, want %q", got, EventDeck)
		}
	case <-time.After(time.Second):
		t.Fatal("no deck event from the autoplay loop")
	}
}

func TestStore_WakeAutoplayLoop_NoPanicWhenNoLoop(t *testing.T) {
	s := NewStore()
	s.WakeAutoplayLoop("nonexistent")
}

func TestStore_DisposeStack(t *testing.T) {
	s := NewStore()
	opts := DefaultOptions()
	opts.Autoplay = true
	opts.AutoplayDelay = 10 * time.Millisecond
	st := s.CreateStack(cardsFixture("a", "b"), opts, nil)
	s.EnsureAutoplayLoop(st.ID)

	s.DisposeStack(st.ID)
	if !st.Disposed() {
		t.Error("stack should be disposed")
	}
	if _, ok := s.GetStack(st.ID); ok {
		t.Error("stack should be gone from the store")
	}
	deadline := time.Now().Add(time.Second)
	for s.AutoplayLoopRunning(st.ID) {
		if time.Now().After(deadline) {
			t.Fatal("autoplay loop still running after dispose")
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Disposing again is harmless.
	s.DisposeStack(st.ID)
}
