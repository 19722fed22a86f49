// Package views renders the widget's HTML as templ components. Components
// are built in Go with templ.ComponentFunc so fragments can also be rendered
// to strings for the SSE stream.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"cardstack/internal/viewmodel"
)

func css(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// StackWidget renders the card layers and, when open, the zoom modal. The
// enclosing div carries the interaction flags and spring tuning as data
// attributes for the client-side gesture and animation collaborators.
func StackWidget(vm viewmodel.StackWidget) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="stack-widget" class="stack-widget"`)
		b.WriteString(` data-stack-id="` + templ.EscapeString(vm.StackID) + `"`)
		b.WriteString(` data-drag-enabled="` + strconv.FormatBool(vm.DragEnabled) + `"`)
		b.WriteString(` data-click-dismiss="` + strconv.FormatBool(vm.ClickDismiss) + `"`)
		b.WriteString(` data-paused="` + strconv.FormatBool(vm.Paused) + `"`)
		b.WriteString(` data-sensitivity="` + css(vm.SensitivityPx) + `"`)
		b.WriteString(` data-stiffness="` + css(vm.Stiffness) + `"`)
		b.WriteString(` data-damping="` + css(vm.Damping) + `">`)
		for _, card := range vm.Cards {
			writeCardLayer(&b, card)
		}
		if vm.ZoomedImage != "" {
			b.WriteString(`<div class="zoom-backdrop" data-action="backdrop">`)
			b.WriteString(`<img class="zoom-image" src="` + templ.EscapeString(vm.ZoomedImage) + `" alt="">`)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCardLayer(b *strings.Builder, card viewmodel.CardLayer) {
	style := fmt.Sprintf(
		"transform:translateY(%spx) rotate(%sdeg) scale(%s);transform-origin:%s;opacity:%s;z-index:%d;",
		css(card.TranslateY), css(card.Rotation), css(card.Scale),
		card.TransformOrigin, css(card.Opacity), card.ZIndex,
	)
	if card.Blur > 0 {
		style += "filter:blur(" + css(card.Blur) + "px);"
	}
	class := "card-layer"
	if card.IsFront {
		class += " card-front"
	}
	b.WriteString(`<div class="` + class + `" data-card-id="` + templ.EscapeString(card.ID) + `" style="` + style + `">`)
	if card.ImageURL != "" {
		b.WriteString(`<img src="` + templ.EscapeString(card.ImageURL) + `" alt="` + templ.EscapeString(card.Alt) + `" draggable="false">`)
	}
	b.WriteString(`</div>`)
}

// StackPage renders the full widget page.
func StackPage(vm viewmodel.StackPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, vm.Title)
		b.WriteString(`<main class="page">`)
		b.WriteString(`<h1>` + templ.EscapeString(vm.Title) + `</h1>`)
		b.WriteString(`<div id="stack-root">`)
		var inner strings.Builder
		if err := renderInto(ctx, &inner, StackWidget(vm.Widget)); err != nil {
			return err
		}
		b.WriteString(inner.String())
		b.WriteString(`</div>`)
		b.WriteString(`<aside class="share">`)
		b.WriteString(`<p class="share-url">` + templ.EscapeString(vm.ShareURL) + `</p>`)
		b.WriteString(`<img class="share-qr" src="/stack/` + templ.EscapeString(vm.StackID) + `/qr" alt="share QR">`)
		b.WriteString(`</aside>`)
		b.WriteString(`</main>`)
		b.WriteString(`<script src="/static/stack.js"></script>`)
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// HomePage renders the create-widget form.
func HomePage(vm viewmodel.HomePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, vm.Title)
		b.WriteString(`<main class="page">`)
		b.WriteString(`<h1>` + templ.EscapeString(vm.Title) + `</h1>`)
		b.WriteString(`<form method="POST" action="/stacks" class="create-form">`)
		b.WriteString(`<label>Image URLs, one per line (blank for the demo deck)</label>`)
		b.WriteString(`<textarea name="images" rows="5"></textarea>`)
		for _, f := range vm.Fields {
			b.WriteString(`<label>` + templ.EscapeString(f.Label) + `</label>`)
			b.WriteString(`<input name="` + templ.EscapeString(f.Name) + `" value="` + templ.EscapeString(f.Value) + `">`)
		}
		b.WriteString(`<label><input type="checkbox" name="autoplay" checked> Autoplay</label>`)
		b.WriteString(`<label><input type="checkbox" name="pauseOnHover" checked> Pause on hover</label>`)
		b.WriteString(`<label><input type="checkbox" name="randomRotation"> Random rotation</label>`)
		b.WriteString(`<label><input type="checkbox" name="sendToBackOnClick"> Send to back on click</label>`)
		b.WriteString(`<label><input type="checkbox" name="mobileClickOnly"> Mobile click only</label>`)
		b.WriteString(`<button type="submit">Create stack</button>`)
		b.WriteString(`</form>`)
		b.WriteString(`</main></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHead(b *strings.Builder, title string) {
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
	b.WriteString(`<link rel="stylesheet" href="/static/stack.css">`)
	b.WriteString(`</head><body>`)
}

func renderInto(ctx context.Context, b *strings.Builder, c templ.Component) error {
	return c.Render(ctx, b)
}
