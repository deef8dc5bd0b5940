package deck

import (
	"math/rand/v2"

	"github.com/plus3/tetrodeck/shape"
)

// Source supplies spawn shapes from a Deck with a one-piece lookahead: the
// upcoming shape is drawn before the current one is handed out.
type Source struct {
	deck *Deck
	rng  *rand.Rand
	next shape.ID
}

func NewSource(d *Deck, rng *rand.Rand) *Source {
	s := &Source{deck: d, rng: rng}
	s.Reseed()
	return s
}

// Next returns the pre-drawn shape and draws its successor.
func (s *Source) Next() shape.ID {
	id := s.next
	s.next = s.deck.Draw(s.rng)
	return id
}

// Peek returns the upcoming shape without consuming it.
func (s *Source) Peek() shape.ID {
	return s.next
}

// Reseed discards the lookahead and draws a fresh one.
func (s *Source) Reseed() {
	s.next = s.deck.Draw(s.rng)
}

func (s *Source) Deck() *Deck {
	return s.deck
}
