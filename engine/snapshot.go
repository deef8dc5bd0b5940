package engine

import (
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/shape"
)

// Snapshot is a read-only copy of everything a frontend draws.
type Snapshot struct {
	ID       string
	Mode     Mode
	Board    board.Grid
	Piece    *Piece
	Ghost    *Piece // nil unless the ghost upgrade is active
	Next     shape.ID
	Hold     HoldSlot
	Deck     [shape.Count]int
	DeckSize int
	Round    RoundState
	Upgrades UpgradeConfig
	Jokers   []Joker
	Pack     []shape.ID
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Mode:     s.mode,
		Board:    s.board.Grid(),
		Next:     s.source.Peek(),
		Hold:     s.hold,
		Deck:     s.deck.Counts(),
		DeckSize: s.deck.Len(),
		Round:    s.round,
		Upgrades: s.upgrades,
		Jokers:   s.ActiveJokers(),
		Pack:     s.Pack(),
	}
	if p, ok := s.Piece(); ok {
		snap.Piece = &p
		if s.upgrades.GhostEnabled {
			g, _ := s.Ghost()
			snap.Ghost = &g
		}
	}
	return snap
}
