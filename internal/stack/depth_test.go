package stack

import (
	"math"
	"math/rand"
	"testing"
)

func TestProjector_FrontCard(t *testing.T) {
	p := Projector{}
	got := p.Project(5, 0)
	if got.Rotation != 0 {
		t.Errorf("Rotation %v, want 0", got.Rotation)
	}
	if got.Scale != 1 {
		t.Errorf("Scale %v, want 1", got.Scale)
	}
	if got.VerticalOffset != 0 {
		t.Errorf("VerticalOffset %v, want 0", got.VerticalOffset)
	}
	if got.Opacity != 1 {
		t.Errorf("Opacity %v, want 1", got.Opacity)
	}
	if got.Blur != 0 {
		t.Errorf("Blur %v, want 0", got.Blur)
	}
	if got.StackingIndex != 5 {
		t.Errorf("StackingIndex %d, want 5", got.StackingIndex)
	}
	if !got.OriginCenter {
		t.Error("front card should pivot about its center")
	}
}

func TestProjector_DepthFormulas(t *testing.T) {
	p := Projector{}
	got := p.Project(5, 2)
	if got.Rotation != 4 {
		t.Errorf("Rotation %v, want 4", got.Rotation)
	}
	if math.Abs(got.Scale-0.94) > 1e-9 {
		t.Errorf("Scale %v, want 0.94", got.Scale)
	}
	if got.VerticalOffset != 30 {
		t.Errorf("VerticalOffset %v, want 30", got.VerticalOffset)
	}
	if math.Abs(got.Opacity-0.7) > 1e-9 {
		t.Errorf("Opacity %v, want 0.7", got.Opacity)
	}
	if math.Abs(got.Blur-2.4) > 1e-9 {
		t.Errorf("Blur %v, want 2.4", got.Blur)
	}
	if got.StackingIndex != 3 {
		t.Errorf("StackingIndex %d, want 3", got.StackingIndex)
	}
	if got.OriginCenter {
		t.Error("non-front card should pivot about its bottom edge")
	}
}

func TestProjector_OpacityClampedDeepStacks(t *testing.T) {
	p := Projector{}
	for depth := 0; depth < 12; depth++ {
		got := p.Project(12, depth)
		if got.Opacity < 0 || got.Opacity > 1 {
			t.Errorf("depth %d: Opacity %v outside [0,1]", depth, got.Opacity)
		}
	}
	if got := p.Project(12, 7); got.Opacity != 0 {
		t.Errorf("depth 7: Opacity %v, want clamped to 0", got.Opacity)
	}
}

func TestProjector_StackingIndexStrictlyDecreasing(t *testing.T) {
	p := Projector{}
	prev := p.Project(8, 0).StackingIndex
	for depth := 1; depth < 8; depth++ {
		idx := p.Project(8, depth).StackingIndex
		if idx >= prev {
			t.Fatalf("depth %d: StackingIndex %d not below previous %d", depth, idx, prev)
		}
		prev = idx
	}
}

func TestProjector_JitterBoundedAndSeeded(t *testing.T) {
	p := Projector{RandomRotation: true, Rand: rand.New(rand.NewSource(1))}
	for i := 0; i < 100; i++ {
		got := p.Project(4, 2)
		jitter := got.Rotation - 4
		if jitter < -3 || jitter > 3 {
			t.Fatalf("jitter %v outside [-3, 3]", jitter)
		}
	}

	// Same seed, same draws.
	a := Projector{RandomRotation: true, Rand: rand.New(rand.NewSource(7))}
	b := Projector{RandomRotation: true, Rand: rand.New(rand.NewSource(7))}
	for i := 0; i < 10; i++ {
		if got, want := a.Project(4, 1).Rotation, b.Project(4, 1).Rotation; got != want {
			t.Fatalf("draw %d: rotation %v != %v for identical seeds", i, got, want)
		}
	}
}

func TestProjector_NoJitterWhenDisabled(t *testing.T) {
	p := Projector{RandomRotation: false, Rand: rand.New(rand.NewSource(1))}
	for i := 0; i < 5; i++ {
		if got := p.Project(4, 3).Rotation; got != 6 {
			t.Errorf("Rotation %v, want exactly 6 with random rotation off", got)
		}
	}
}
