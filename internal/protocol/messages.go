package protocol

import "encoding/json"

// MsgType discriminates envelope payloads on the gesture channel.
type MsgType string

const (
	// Inbound, from the gesture/viewport collaborators in the browser.
	MsgDragEnd  MsgType = "drag_end"
	MsgTap      MsgType = "tap"
	MsgHover    MsgType = "hover"
	MsgResize   MsgType = "resize"
	MsgBackdrop MsgType = "backdrop_click"

	// Outbound, to the rendering collaborator.
	MsgSnapshot MsgType = "snapshot"
	MsgVerdict  MsgType = "verdict"
)

// Envelope is the wire frame for every WebSocket message.
type Envelope struct {
	Type MsgType         `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshals payload into an envelope of the given type.
func NewEnvelope(t MsgType, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: t, Data: data}, nil
}

// DragEnd summarizes a completed drag: pixel offsets from the origin and
// vertical velocity in px/s.
type DragEnd struct {
	OffsetX   float64 `json:"offsetX"`
	OffsetY   float64 `json:"offsetY"`
	VelocityY float64 `json:"velocityY"`
}

// Tap identifies the tapped card.
type Tap struct {
	CardID string `json:"cardId"`
}

// Hover reports whether the pointer is over the widget.
type Hover struct {
	Hovering bool `json:"hovering"`
}

// Resize carries the current viewport width in px.
type Resize struct {
	Width float64 `json:"width"`
}

// Verdict tells the gesture collaborator how a drag resolved, so it can
// drive its own snap-back visual.
type Verdict struct {
	Verdict string `json:"verdict"`
}
