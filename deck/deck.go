// Package deck implements the weighted pool of piece types a run draws from.
package deck

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"
	"github.com/plus3/tetrodeck/shape"
)

// Deck is a multiset of shapes. Draws do not remove cards, so the deck only
// grows. Every stored card is an equally likely draw.
type Deck struct {
	cards  []shape.ID
	counts *intmap.Map[shape.ID, int]
}

// New returns a deck holding one card of every catalog shape.
func New() *Deck {
	d := &Deck{counts: intmap.New[shape.ID, int](shape.Count)}
	d.refill()
	return d
}

// NewFrom returns a deck holding exactly the given cards. It may be empty, in
// which case the first draw refills it.
func NewFrom(cards ...shape.ID) *Deck {
	d := &Deck{counts: intmap.New[shape.ID, int](shape.Count)}
	d.Add(cards...)
	return d
}

func (d *Deck) refill() {
	d.Add(shape.All()...)
}

// Add appends cards to the deck. Invalid shape ids are ignored.
func (d *Deck) Add(cards ...shape.ID) {
	for _, id := range cards {
		if !id.Valid() {
			continue
		}
		d.cards = append(d.cards, id)
		n, _ := d.counts.Get(id)
		d.counts.Put(id, n+1)
	}
}

// Draw picks a card uniformly over stored instances. An empty deck is first
// refilled with one of each shape.
func (d *Deck) Draw(rng *rand.Rand) shape.ID {
	if len(d.cards) == 0 {
		d.refill()
	}
	return d.cards[rng.IntN(len(d.cards))]
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Count returns how many copies of id the deck holds.
func (d *Deck) Count(id shape.ID) int {
	n, _ := d.counts.Get(id)
	return n
}

// Counts returns the number of copies per shape, indexed by shape.ID.
func (d *Deck) Counts() [shape.Count]int {
	var out [shape.Count]int
	for _, id := range shape.All() {
		out[id] = d.Count(id)
	}
	return out
}

// Cards returns a copy of the deck contents in insertion order.
func (d *Deck) Cards() []shape.ID {
	return append([]shape.ID(nil), d.cards...)
}

// Probability returns the chance that the next draw yields id.
func (d *Deck) Probability(id shape.ID) float64 {
	if len(d.cards) == 0 {
		return 1.0 / shape.Count
	}
	return float64(d.Count(id)) / float64(len(d.cards))
}
