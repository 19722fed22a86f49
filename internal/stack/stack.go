package stack

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"sync"
	"time"

	"cardstack/pkg/realtime"
)

// TapOutcome describes what a tap did, so callers know which events to
// publish.
type TapOutcome int

const (
	TapIgnored TapOutcome = iota
	TapZoomed
	TapDismissed
)

// Stack is one widget instance: the deck, its interaction state, and the
// autoplay schedule. All entry points serialize through one mutex, so deck
// mutations from gestures, taps, and autoplay ticks can never interleave.
type Stack struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	Options   Options

	deck      Deck
	projector Projector
	autoplay  realtime.Autoplay

	mobile      bool
	hovering    bool
	paused      bool
	zoomedImage string
	disposed    bool
}

// New creates a widget instance. rng feeds rotation jitter and may be nil
// when random rotation is off. The autoplay clock starts at now if the deck
// is eligible.
func New(cards []Card, opts Options, rng RNG, now time.Time) *Stack {
	opts = opts.normalize()
	s := &Stack{
		ID:        newID(),
		CreatedAt: now,
		Options:   opts,
		deck:      NewDeck(cards),
		projector: Projector{RandomRotation: opts.RandomRotation, Rand: rng},
		autoplay:  realtime.Autoplay{Interval: opts.AutoplayDelay},
	}
	s.syncAutoplayLocked(now)
	return s
}

// autoplayEligibleLocked gates the schedule: enabled, more than one card
// (a single-card deck would tick invisibly), and not paused.
func (s *Stack) autoplayEligibleLocked() bool {
	return s.Options.Autoplay && !s.disposed && !s.paused && s.deck.Len() > 1
}

// syncAutoplayLocked tears down or re-arms the schedule after any change to
// pause state, deck identity, or disposal. Re-arming restarts the interval
// from now.
func (s *Stack) syncAutoplayLocked(now time.Time) {
	if s.autoplayEligibleLocked() {
		if !s.autoplay.Armed() {
			s.autoplay.Arm(now)
		}
		return
	}
	s.autoplay.Disarm()
}

// ReplaceCards installs a new card set wholesale, discarding in-flight
// interaction state: the zoom modal closes and pause reverts to the hover
// rule. The autoplay clock restarts against the new deck.
func (s *Stack) ReplaceCards(cards []Card, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.deck.Replace(cards)
	s.zoomedImage = ""
	s.paused = s.Options.PauseOnHover && s.hovering
	s.autoplay.Disarm()
	s.syncAutoplayLocked(now)
}

// OnResize records the current viewport width and reports whether the
// mobile flag flipped.
func (s *Stack) OnResize(width float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	mobile := width <= s.Options.MobileBreakpoint
	changed := mobile != s.mobile
	s.mobile = mobile
	return changed
}

func (s *Stack) dragEnabledLocked() bool {
	return !(s.Options.MobileClickOnly && s.mobile)
}

func (s *Stack) clickDismissLocked() bool {
	return s.Options.SendToBackOnClick || (s.Options.MobileClickOnly && s.mobile)
}

// OnDragEnd routes a completed drag through the gesture classifier. The
// verdict goes back to the gesture collaborator to drive its snap-back
// visual; reordered reports whether the front card went to the back. Drag
// input is rejected entirely in mobile-click-only mode on a mobile viewport.
func (s *Stack) OnDragEnd(offsetX, offsetY, velocityY float64, now time.Time) (verdict Verdict, reordered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || !s.dragEnabledLocked() {
		return SnapBack, false
	}
	verdict = Classify(offsetX, offsetY, velocityY, s.Options.Sensitivity)
	if verdict != Dismiss {
		return verdict, false
	}
	front, ok := s.deck.Front()
	if !ok {
		return verdict, false
	}
	return verdict, s.deck.SendToBack(front.ID)
}

// OnTap handles a click without meaningful drag. Only the front card opens
// the zoom modal; opening it forces pause regardless of hover state. Taps on
// deeper cards fall through to click-to-dismiss when that mode is active.
func (s *Stack) OnTap(id string, now time.Time) TapOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return TapIgnored
	}
	if front, ok := s.deck.Front(); ok && front.ID == id {
		if front.Content.ImageURL == "" {
			return TapIgnored
		}
		s.zoomedImage = front.Content.ImageURL
		s.paused = true
		s.syncAutoplayLocked(now)
		return TapZoomed
	}
	if s.clickDismissLocked() && s.deck.SendToBack(id) {
		return TapDismissed
	}
	return TapIgnored
}

// OnHoverChange tracks the pointer over the widget. While the modal is open
// it always wins: pause stays forced and hover only takes effect again after
// the modal closes.
func (s *Stack) OnHoverChange(hovering bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.hovering = hovering
	if s.zoomedImage != "" {
		return
	}
	if s.Options.PauseOnHover {
		s.paused = hovering
		s.syncAutoplayLocked(now)
	}
}

// OnBackdropClick closes the zoom modal. Pause then reverts to the hover
// rule: with pause-on-hover off it resumes immediately; with it on, it
// resumes only when the pointer is not on the widget. Reports whether a
// modal was actually open.
func (s *Stack) OnBackdropClick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || s.zoomedImage == "" {
		return false
	}
	s.zoomedImage = ""
	s.paused = s.Options.PauseOnHover && s.hovering
	s.syncAutoplayLocked(now)
	return true
}

// Dispose marks the instance dead and disarms the schedule. The store
// cancels the timing loop and closes the broadcaster; after this, every
// entry point is a no-op.
func (s *Stack) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.autoplay.Disarm()
}

// Disposed reports whether Dispose has run.
func (s *Stack) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// NextTimer returns when the autoplay schedule next needs to fire.
func (s *Stack) NextTimer(now time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.autoplayEligibleLocked() {
		return time.Time{}, false
	}
	return s.autoplay.NextWake(now)
}

// AdvanceIfNeeded performs a due autoplay tick: the card that is front right
// now goes to the back. Reading the front at fire time keeps the tick valid
// even when gestures reordered the deck between ticks.
func (s *Stack) AdvanceIfNeeded(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.autoplayEligibleLocked() {
		return false
	}
	if !s.autoplay.Advance(now) {
		return false
	}
	front, ok := s.deck.Front()
	if !ok {
		return false
	}
	return s.deck.SendToBack(front.ID)
}

// CardView is one card with its projected visual parameters.
type CardView struct {
	ID      string
	Content Content
	Depth   DepthParams
}

// Snapshot is the render-ready view of the instance. Cards run back to
// front; an empty deck yields no card views at all.
type Snapshot struct {
	ID            string
	Cards         []CardView
	ZoomedImage   string
	Paused        bool
	Hovering      bool
	Mobile        bool
	DragEnabled   bool
	ClickDismiss  bool
	AutoplayArmed bool
	Options       Options
}

// Snapshot projects the whole deck. Depth parameters are recomputed on every
// call; with random rotation on, each call draws fresh jitter.
func (s *Stack) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.deck.Cards()
	var views []CardView
	if len(cards) > 0 {
		views = make([]CardView, 0, len(cards))
		for i, c := range cards {
			depth := len(cards) - 1 - i
			views = append(views, CardView{
				ID:      c.ID,
				Content: c.Content,
				Depth:   s.projector.Project(len(cards), depth),
			})
		}
	}
	return Snapshot{
		ID:            s.ID,
		Cards:         views,
		ZoomedImage:   s.zoomedImage,
		Paused:        s.paused,
		Hovering:      s.hovering,
		Mobile:        s.mobile,
		DragEnabled:   s.dragEnabledLocked(),
		ClickDismiss:  s.clickDismissLocked(),
		AutoplayArmed: s.autoplay.Armed(),
		Options:       s.Options,
	}
}

func newID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
