package realtime

import "time"

// Autoplay holds the timing state for a periodic advance: one tick every
// Interval while armed. It does not hold widget state (cards, pause rules);
// the owner composes it, gates Advance behind its own pause logic, and
// performs the actual mutation when Advance reports a due tick.
type Autoplay struct {
	Interval time.Duration
	LastTick time.Time
}

// Arm starts the schedule at now; the first tick is due at now + Interval.
// Arming with a non-positive interval leaves the schedule inactive.
func (a *Autoplay) Arm(now time.Time) {
	if a.Interval <= 0 {
		a.LastTick = time.Time{}
		return
	}
	a.LastTick = now
}

// Disarm stops the schedule. The next Arm restarts the clock from scratch,
// so pauses never accumulate partial intervals.
func (a *Autoplay) Disarm() {
	a.LastTick = time.Time{}
}

// Armed reports whether the schedule is active.
func (a *Autoplay) Armed() bool {
	return !a.LastTick.IsZero() && a.Interval > 0
}

// NextWake returns when the next tick is due and whether the schedule is
// active. A wake already in the past collapses to now.
func (a *Autoplay) NextWake(now time.Time) (time.Time, bool) {
	if !a.Armed() {
		return time.Time{}, false
	}
	next := a.LastTick.Add(a.Interval)
	if now.After(next) {
		return now, true
	}
	return next, true
}

// Advance reports whether a tick is due at now and, if so, consumes it by
// restarting the interval from now. A long stall yields a single tick, not
// a burst, matching how a visual carousel should catch up.
func (a *Autoplay) Advance(now time.Time) bool {
	if !a.Armed() {
		return false
	}
	if now.Before(a.LastTick.Add(a.Interval)) {
		return false
	}
	a.LastTick = now
	return true
}
