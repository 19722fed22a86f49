package stack

import "math"

// Verdict is the outcome of a completed drag.
type Verdict int

const (
	// SnapBack means no reorder; the gesture collaborator animates the card
	// back to its origin.
	SnapBack Verdict = iota
	// Dismiss sends the dragged card to the back of the deck.
	Dismiss
)

func (v Verdict) String() string {
	if v == Dismiss {
		return "dismiss"
	}
	return "snap_back"
}

// velocityThreshold is the vertical fling speed, in px/s, that dismisses
// regardless of how far the card travelled.
const velocityThreshold = 500.0

// horizontalFactor stiffens the horizontal threshold relative to vertical.
// Cards stack along the vertical axis, so vertical swipes are the intended
// interaction and horizontal drags must travel further to count.
const horizontalFactor = 1.5

// Classify maps a completed drag to a verdict. Rule order matters: the
// vertical path (offset or fling velocity) wins whenever its own threshold
// is met, independent of the horizontal magnitude. A sensitivity of zero or
// below makes any movement dismiss.
func Classify(offsetX, offsetY, velocityY, sensitivity float64) Verdict {
	if math.Abs(offsetY) > sensitivity || math.Abs(velocityY) > velocityThreshold {
		return Dismiss
	}
	if math.Abs(offsetX) > sensitivity*horizontalFactor {
		return Dismiss
	}
	return SnapBack
}
