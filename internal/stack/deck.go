package stack

// Content is the renderable payload of a card. The core never interprets it
// beyond lifting the image reference for the zoom modal; everything else is
// the rendering layer's business.
type Content struct {
	ImageURL string
	Alt      string
}

// Card pairs a unique id with its renderable content.
type Card struct {
	ID      string
	Content Content
}

// Deck is an ordered card sequence. The last element is the visual front;
// index 0 is the most-back card. The sequence is always a permutation of
// whatever Replace installed: cards are only ever reordered, never created
// or destroyed here.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from cards in the given order (last = front).
func NewDeck(cards []Card) Deck {
	d := Deck{}
	d.Replace(cards)
	return d
}

// Replace installs a wholesale new ordering, discarding the previous one.
// No attempt is made to preserve positions of carried-over ids.
func (d *Deck) Replace(cards []Card) {
	d.cards = make([]Card, len(cards))
	copy(d.cards, cards)
}

// SendToBack moves the card with the given id to the most-back position
// (index 0). An absent id is a silent no-op: stale callbacks after a deck
// reset are expected and harmless.
func (d *Deck) SendToBack(id string) bool {
	for i, c := range d.cards {
		if c.ID == id {
			moved := d.cards[i]
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			d.cards = append([]Card{moved}, d.cards...)
			return true
		}
	}
	return false
}

// Front returns the front (top) card, or false when the deck is empty.
func (d *Deck) Front() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the sequence, back to front.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
