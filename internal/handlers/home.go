package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cardstack/internal/config"
	"cardstack/internal/stack"
	"cardstack/internal/viewmodel"
	"cardstack/views"
)

type HomeHandler struct {
	store *stack.Store
	cfg   config.Config
}

func NewHomeHandler(store *stack.Store, cfg config.Config) *HomeHandler {
	return &HomeHandler{store: store, cfg: cfg}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/stacks", h.createStack)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	data := viewmodel.HomePage{
		Title: "Cardstack",
		Fields: []viewmodel.OptionField{
			{Name: "sensitivity", Label: "Drag sensitivity (px)", Value: formatFloat(h.cfg.Sensitivity)},
			{Name: "autoplayDelayMs", Label: "Autoplay delay (ms)", Value: strconv.FormatInt(h.cfg.AutoplayDelay.Milliseconds(), 10)},
			{Name: "mobileBreakpoint", Label: "Mobile breakpoint (px)", Value: formatFloat(h.cfg.MobileBreakpoint)},
			{Name: "stiffness", Label: "Spring stiffness", Value: "260"},
			{Name: "damping", Label: "Spring damping", Value: "20"},
		},
	}
	render(w, r, views.HomePage(data))
}

func (h *HomeHandler) createStack(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	cards := parseCards(r.FormValue("images"))
	if len(cards) == 0 {
		cards = demoCards()
	}

	opts := stack.Options{
		RandomRotation:    r.FormValue("randomRotation") != "",
		Sensitivity:       parseFloat(r.FormValue("sensitivity"), h.cfg.Sensitivity),
		SendToBackOnClick: r.FormValue("sendToBackOnClick") != "",
		Autoplay:          r.FormValue("autoplay") != "",
		AutoplayDelay:     time.Duration(parseInt(r.FormValue("autoplayDelayMs"), int(h.cfg.AutoplayDelay.Milliseconds()))) * time.Millisecond,
		PauseOnHover:      r.FormValue("pauseOnHover") != "",
		MobileClickOnly:   r.FormValue("mobileClickOnly") != "",
		MobileBreakpoint:  parseFloat(r.FormValue("mobileBreakpoint"), h.cfg.MobileBreakpoint),
		Animation: stack.AnimationConfig{
			Stiffness: parseFloat(r.FormValue("stiffness"), 260),
			Damping:   parseFloat(r.FormValue("damping"), 20),
		},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	instance := h.store.CreateStack(cards, opts, rng)
	h.store.EnsureAutoplayLoop(instance.ID)
	http.Redirect(w, r, "/stack/"+instance.ID, http.StatusSeeOther)
}

// parseCards builds a deck from newline-separated image URLs; the last line
// becomes the front card.
func parseCards(raw string) []stack.Card {
	var cards []stack.Card
	for i, line := range strings.Split(raw, "\n") {
		url := strings.TrimSpace(line)
		if url == "" {
			continue
		}
		cards = append(cards, stack.Card{
			ID:      fmt.Sprintf("card-%d", i+1),
			Content: stack.Content{ImageURL: url, Alt: fmt.Sprintf("card %d", i+1)},
		})
	}
	return cards
}

func demoCards() []stack.Card {
	urls := []string{
		"https://picsum.photos/id/1015/400/600",
		"https://picsum.photos/id/1016/400/600",
		"https://picsum.photos/id/1018/400/600",
		"https://picsum.photos/id/1025/400/600",
		"https://picsum.photos/id/1035/400/600",
	}
	cards := make([]stack.Card, 0, len(urls))
	for i, url := range urls {
		cards = append(cards, stack.Card{
			ID:      fmt.Sprintf("card-%d", i+1),
			Content: stack.Content{ImageURL: url, Alt: fmt.Sprintf("demo card %d", i+1)},
		})
	}
	return cards
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
