package realtime

import (
	"testing"
	"time"
)

func TestNewInstanceStore(t *testing.T) {
	s := NewInstanceStore[string]()
	if s == nil {
		t.Fatal("NewInstanceStore returned nil")
	}
}

func TestInstanceStore_Create_Get(t *testing.T) {
	s := NewInstanceStore[string]()
	s.Create("w1", "state1")
	inst, ok := s.Get("w1")
	if !ok {
		t.Fatal("Get returned false for existing instance")
	}
	if inst.ID != "w1" {
		t.Errorf("instance ID %q, want w1", inst.ID)
	}
	if inst.State != "state1" {
		t.Errorf("instance State %q, want state1", inst.State)
	}

	_, ok = s.Get("nonexistent")
	if ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestInstanceStore_Publish(t *testing.T) {
	s := NewInstanceStore[string]()
	s.Create("w1", "x")
	hub := s.Broadcaster("w1")
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s.Publish("w1", "deck")
	got := <-ch
	if got != "deck" {
		t.Errorf("got %q, want deck", got)
	}
}

func TestInstanceStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewInstanceStore[string]()
	s.Wake("nonexistent")
}

func TestInstanceStore_Remove(t *testing.T) {
	s := NewInstanceStore[string]()
	s.Create("w1", "x")
	hub := s.Broadcaster("w1")
	ch := hub.Subscribe()

	s.Remove("w1")
	if _, ok := s.Get("w1"); ok {
		t.Error("instance should be gone after Remove")
	}
	if _, open := <-ch; open {
		t.Error("subscriber channel should be closed after Remove")
	}
	// Removing again must not panic.
	s.Remove("w1")
}

func TestInstanceStore_RemoveCancelsLoop(t *testing.T) {
	s := NewInstanceStore[string]()
	s.Create("w1", "x")
	tick := func(_ string, now time.Time) (time.Time, []string, bool) {
		return now.Add(10 * time.Millisecond), nil, false
	}
	s.RunLoop("w1", func() string { return "x" }, tick)
	if !s.LoopRunning("w1") {
		t.Fatal("loop should be running after RunLoop")
	}

	s.Remove("w1")
	deadline := time.Now().Add(time.Second)
	for s.LoopRunning("w1") {
		if time.Now().After(deadline) {
			t.Fatal("loop still running after Remove")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
