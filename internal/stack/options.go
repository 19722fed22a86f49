package stack

import "time"

// DefaultMobileBreakpoint is the viewport width, in px, at or below which
// the viewport counts as mobile.
const DefaultMobileBreakpoint = 768.0

// DefaultSensitivity is the drag displacement, in px, beyond which a
// vertical drag dismisses.
const DefaultSensitivity = 200.0

// AnimationConfig is forwarded opaquely to the client-side spring
// collaborator; the core never interprets it.
type AnimationConfig struct {
	Stiffness float64
	Damping   float64
}

// Options is the configuration bundle for one widget instance.
type Options struct {
	RandomRotation    bool
	Sensitivity       float64
	Animation         AnimationConfig
	SendToBackOnClick bool
	Autoplay          bool
	AutoplayDelay     time.Duration
	PauseOnHover      bool
	MobileClickOnly   bool
	MobileBreakpoint  float64
}

// DefaultOptions mirrors the widget's out-of-the-box tuning.
func DefaultOptions() Options {
	return Options{
		Sensitivity:      DefaultSensitivity,
		Animation:        AnimationConfig{Stiffness: 260, Damping: 20},
		AutoplayDelay:    3 * time.Second,
		PauseOnHover:     true,
		MobileBreakpoint: DefaultMobileBreakpoint,
	}
}

// normalize degrades misconfigured knobs gracefully: these are visual-tuning
// inputs, not correctness-critical ones, so nothing errors.
func (o Options) normalize() Options {
	if o.AutoplayDelay <= 0 {
		o.Autoplay = false
	}
	if o.MobileBreakpoint <= 0 {
		o.MobileBreakpoint = DefaultMobileBreakpoint
	}
	// Sensitivity <= 0 is left alone: Classify degrades it to always-dismiss.
	return o
}
