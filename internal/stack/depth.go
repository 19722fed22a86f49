package stack

// DepthParams are the visual parameters for a card at a given distance from
// the front of the deck (depth 0 = front). Derived on every snapshot, never
// stored.
type DepthParams struct {
	Rotation       float64 // degrees
	Scale          float64
	VerticalOffset float64 // px along the stacking axis
	Opacity        float64 // clamped to [0, 1]
	Blur           float64 // px
	StackingIndex  int     // higher nearer the front
	OriginCenter   bool    // front card pivots about its center, the rest about their bottom edge
}

// RNG is the randomness source for rotation jitter. Injectable so snapshots
// are reproducible under test.
type RNG interface {
	Float64() float64
}

// Projector derives DepthParams. When randomRotation is on, each projection
// draws a fresh jitter from rng; with it off, rotation is fully deterministic.
type Projector struct {
	RandomRotation bool
	Rand           RNG
}

// jitterRange is the rotation jitter bound in degrees: uniform(-3, 3).
const jitterRange = 3.0

// Project computes the visual parameters for a card at the given depth in a
// deck of deckSize cards.
func (p Projector) Project(deckSize, depth int) DepthParams {
	jitter := 0.0
	if p.RandomRotation && p.Rand != nil {
		jitter = (p.Rand.Float64()*2 - 1) * jitterRange
	}
	opacity := 1 - float64(depth)*0.15
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return DepthParams{
		Rotation:       float64(depth)*2 + jitter,
		Scale:          1 - float64(depth)*0.03,
		VerticalOffset: float64(depth) * 15,
		Opacity:        opacity,
		Blur:           float64(depth) * 1.2,
		StackingIndex:  deckSize - depth,
		OriginCenter:   depth == 0,
	}
}
