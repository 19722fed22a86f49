package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"cardstack/internal/config"
	"cardstack/internal/protocol"
	"cardstack/internal/qrcode"
	"cardstack/internal/stack"
	"cardstack/internal/viewmodel"
	"cardstack/internal/ws"
	"cardstack/views"
)

type StackHandler struct {
	store    *stack.Store
	cfg      config.Config
	upgrader websocket.Upgrader
}

func NewStackHandler(store *stack.Store, cfg config.Config) *StackHandler {
	return &StackHandler{
		store: store,
		cfg:   cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *StackHandler) RegisterRoutes(r chi.Router) {
	r.Route("/stack/{id}", func(r chi.Router) {
		r.Get("/", h.stackPage)
		r.Post("/cards", h.replaceCards)
		r.Post("/dragend", h.dragEnd)
		r.Post("/tap", h.tap)
		r.Post("/hover", h.hover)
		r.Post("/resize", h.resize)
		r.Post("/backdrop", h.backdrop)
		r.Get("/fragment", h.fragment)
		r.Get("/stream", h.stream)
		r.Get("/ws", h.gestureChannel)
		r.Get("/qr", h.shareQR)
		r.Post("/dispose", h.dispose)
	})
}

func (h *StackHandler) stackPage(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	snapshot := instance.Snapshot(time.Now().UTC())
	data := viewmodel.StackPage{
		Title:    "Cardstack",
		StackID:  stackID,
		ShareURL: h.buildShareURL(r, stackID),
		Widget:   buildWidget(snapshot),
	}
	render(w, r, views.StackPage(data))
}

func (h *StackHandler) replaceCards(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	cards := parseCards(r.FormValue("images"))
	instance.ReplaceCards(cards, time.Now().UTC())
	h.store.Publish(stackID, stack.EventDeck)
	h.store.EnsureAutoplayLoop(stackID)
	h.store.WakeAutoplayLoop(stackID)
	http.Redirect(w, r, "/stack/"+stackID, http.StatusSeeOther)
}

func (h *StackHandler) dragEnd(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	offsetX := parseFloat(r.FormValue("offsetX"), 0)
	offsetY := parseFloat(r.FormValue("offsetY"), 0)
	velocityY := parseFloat(r.FormValue("velocityY"), 0)

	verdict, reordered := instance.OnDragEnd(offsetX, offsetY, velocityY, time.Now().UTC())
	if reordered {
		h.store.Publish(stackID, stack.EventDeck)
		h.store.WakeAutoplayLoop(stackID)
	}
	writeJSON(w, protocol.Verdict{Verdict: verdict.String()})
}

func (h *StackHandler) tap(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	switch instance.OnTap(r.FormValue("cardId"), time.Now().UTC()) {
	case stack.TapZoomed:
		h.store.Publish(stackID, stack.EventZoom)
		h.store.WakeAutoplayLoop(stackID)
	case stack.TapDismissed:
		h.store.Publish(stackID, stack.EventDeck)
		h.store.WakeAutoplayLoop(stackID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StackHandler) hover(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	instance.OnHoverChange(r.FormValue("hovering") == "true", time.Now().UTC())
	h.store.Publish(stackID, stack.EventState)
	// Hover-leave can resume a paused schedule whose loop already exited.
	h.store.EnsureAutoplayLoop(stackID)
	h.store.WakeAutoplayLoop(stackID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *StackHandler) resize(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if instance.OnResize(parseFloat(r.FormValue("width"), 0)) {
		h.store.Publish(stackID, stack.EventState)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StackHandler) backdrop(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if instance.OnBackdropClick(time.Now().UTC()) {
		h.store.Publish(stackID, stack.EventZoom)
		h.store.EnsureAutoplayLoop(stackID)
		h.store.WakeAutoplayLoop(stackID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StackHandler) fragment(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	snapshot := instance.Snapshot(time.Now().UTC())
	render(w, r, views.StackWidget(buildWidget(snapshot)))
}

func (h *StackHandler) stream(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hub := h.store.Broadcaster(stackID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendWidget := func() {
		snapshot := instance.Snapshot(time.Now().UTC())
		html := renderToString(r, views.StackWidget(buildWidget(snapshot)))
		writeSSE(w, "widget", html)
		flusher.Flush()
	}

	sendWidget()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-sub:
			if !open {
				// Instance disposed; tell the client to stop reconnecting.
				writeSSE(w, "disposed", "")
				flusher.Flush()
				return
			}
			// Every event re-renders the whole widget; the fragment is
			// small and the deck, modal, and flags render together.
			sendWidget()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// gestureChannel is the WebSocket alternative to the POST endpoints: the
// browser streams gesture/viewport envelopes up, the server pushes JSON
// snapshots down.
func (h *StackHandler) gestureChannel(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	instance, ok := h.store.GetStack(stackID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	client := ws.NewClient(conn)
	go client.WritePump()

	hub := h.store.Broadcaster(stackID)
	sub := hub.Subscribe()
	done := make(chan struct{})

	pushSnapshot := func() {
		snapshot := instance.Snapshot(time.Now().UTC())
		env, err := protocol.NewEnvelope(protocol.MsgSnapshot, buildWidget(snapshot))
		if err != nil {
			log.Printf("ws snapshot error: %v", err)
			return
		}
		client.SendEnvelope(env)
	}

	go func() {
		defer close(done)
		for range sub {
			pushSnapshot()
		}
	}()

	pushSnapshot()
	client.ReadPump(func(env protocol.Envelope) {
		h.handleEnvelope(stackID, instance, client, env)
	})

	hub.Unsubscribe(sub)
	<-done
	client.CloseSend()
}

func (h *StackHandler) handleEnvelope(stackID string, instance *stack.Stack, client *ws.Client, env protocol.Envelope) {
	now := time.Now().UTC()
	switch env.Type {
	case protocol.MsgDragEnd:
		var msg protocol.DragEnd
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			log.Printf("ws drag_end payload error: %v", err)
			return
		}
		verdict, reordered := instance.OnDragEnd(msg.OffsetX, msg.OffsetY, msg.VelocityY, now)
		if reordered {
			h.store.Publish(stackID, stack.EventDeck)
			h.store.WakeAutoplayLoop(stackID)
		}
		if out, err := protocol.NewEnvelope(protocol.MsgVerdict, protocol.Verdict{Verdict: verdict.String()}); err == nil {
			client.SendEnvelope(out)
		}
	case protocol.MsgTap:
		var msg protocol.Tap
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return
		}
		switch instance.OnTap(msg.CardID, now) {
		case stack.TapZoomed:
			h.store.Publish(stackID, stack.EventZoom)
			h.store.WakeAutoplayLoop(stackID)
		case stack.TapDismissed:
			h.store.Publish(stackID, stack.EventDeck)
			h.store.WakeAutoplayLoop(stackID)
		}
	case protocol.MsgHover:
		var msg protocol.Hover
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return
		}
		instance.OnHoverChange(msg.Hovering, now)
		h.store.Publish(stackID, stack.EventState)
		h.store.EnsureAutoplayLoop(stackID)
		h.store.WakeAutoplayLoop(stackID)
	case protocol.MsgResize:
		var msg protocol.Resize
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			return
		}
		if instance.OnResize(msg.Width) {
			h.store.Publish(stackID, stack.EventState)
		}
	case protocol.MsgBackdrop:
		if instance.OnBackdropClick(now) {
			h.store.Publish(stackID, stack.EventZoom)
			h.store.EnsureAutoplayLoop(stackID)
			h.store.WakeAutoplayLoop(stackID)
		}
	default:
		log.Printf("ws unknown message type %q", env.Type)
	}
}

func (h *StackHandler) shareQR(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	if _, ok := h.store.GetStack(stackID); !ok {
		http.NotFound(w, r)
		return
	}
	png, err := qrcode.Generate(h.buildShareURL(r, stackID))
	if err != nil {
		http.Error(w, "failed to generate QR", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (h *StackHandler) dispose(w http.ResponseWriter, r *http.Request) {
	stackID := chi.URLParam(r, "id")
	h.store.DisposeStack(stackID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *StackHandler) buildShareURL(r *http.Request, stackID string) string {
	if h.cfg.BaseURL != "" {
		return h.cfg.BaseURL + "/stack/" + stackID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/stack/" + stackID
}

// buildWidget maps a core snapshot to the CSS-ready view model.
func buildWidget(snapshot stack.Snapshot) viewmodel.StackWidget {
	cards := make([]viewmodel.CardLayer, 0, len(snapshot.Cards))
	for i, c := range snapshot.Cards {
		origin := "bottom center"
		if c.Depth.OriginCenter {
			origin = "center"
		}
		cards = append(cards, viewmodel.CardLayer{
			ID:              c.ID,
			ImageURL:        c.Content.ImageURL,
			Alt:             c.Content.Alt,
			Rotation:        c.Depth.Rotation,
			Scale:           c.Depth.Scale,
			TranslateY:      c.Depth.VerticalOffset,
			Opacity:         c.Depth.Opacity,
			Blur:            c.Depth.Blur,
			ZIndex:          c.Depth.StackingIndex,
			TransformOrigin: origin,
			IsFront:         i == len(snapshot.Cards)-1,
		})
	}
	return viewmodel.StackWidget{
		StackID:       snapshot.ID,
		Cards:         cards,
		ZoomedImage:   snapshot.ZoomedImage,
		Paused:        snapshot.Paused,
		Mobile:        snapshot.Mobile,
		DragEnabled:   snapshot.DragEnabled,
		ClickDismiss:  snapshot.ClickDismiss,
		SensitivityPx: snapshot.Options.Sensitivity,
		Stiffness:     snapshot.Options.Animation.Stiffness,
		Damping:       snapshot.Options.Animation.Damping,
	}
}
