package engine

import (
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/shape"
)

// kickOffsets are the horizontal shifts tried, in order, after a rotation
// that collides in place.
var kickOffsets = [...]int{1, -1, 2, -2}

func (s *Session) active() bool {
	return s.mode == ModePlaying && s.piece != nil
}

// spawn materializes the pre-drawn shape at the spawn point. A spawn that
// collides ends the run.
func (s *Session) spawn() {
	p := newPiece(s.source.Next())
	if s.upgrades.BombEnabled && s.rng.Float64() < BombChance {
		p.Special = true
	}
	s.piece = &p
	s.hold.CanHold = true

	if Collides(s.board, p, 0, 0) {
		s.mode = ModeGameOver
		s.log.Info("game over", "session", s.id, "round", s.round.RoundNumber, "score", s.round.Score)
		return
	}
	s.log.Debug("spawned", "shape", p.Shape, "bomb", p.Special, "next", s.source.Peek())
}

// Collides tests the falling piece against the board at the given offset.
func (s *Session) Collides(dx, dy int) bool {
	if s.piece == nil {
		return false
	}
	return Collides(s.board, *s.piece, dx, dy)
}

// Move shifts the falling piece. It returns false and leaves the piece
// untouched when the target position is blocked.
func (s *Session) Move(dx, dy int) bool {
	if !s.active() || Collides(s.board, *s.piece, dx, dy) {
		return false
	}
	s.piece.X += dx
	s.piece.Y += dy
	return true
}

// Rotate turns the falling piece a quarter clockwise, trying the wall kicks
// in order when the rotated piece collides in place. On failure the piece
// keeps its previous orientation and position.
func (s *Session) Rotate() bool {
	if !s.active() {
		return false
	}
	p := s.piece
	prev := p.Orientation
	p.Orientation = shape.Rotate(prev)
	if !Collides(s.board, *p, 0, 0) {
		return true
	}
	for _, dx := range kickOffsets {
		if !Collides(s.board, *p, dx, 0) {
			p.X += dx
			return true
		}
	}
	p.Orientation = prev
	return false
}

// HardDrop drops the piece as far as it goes, awards HardDropPoints per row
// and locks it.
func (s *Session) HardDrop() bool {
	if !s.active() {
		return false
	}
	rows := 0
	for s.Move(0, 1) {
		rows++
	}
	s.round.Score += rows * HardDropPoints
	s.lock()
	return true
}

// Lock settles the falling piece where it is.
func (s *Session) Lock() bool {
	if !s.active() {
		return false
	}
	s.lock()
	return true
}

func (s *Session) lock() {
	p := *s.piece
	id := p.Shape
	for _, c := range p.Cells() {
		if c.Y >= 0 {
			s.board.Set(c.X, c.Y, board.Occupied(id))
		}
	}
	s.piece = nil
	s.log.Debug("locked", "shape", id, "x", p.X, "y", p.Y, "bomb", p.Special)

	if p.Special {
		s.explode(p.X, p.Y)
	}
	s.ClearLines()
	s.spawn()
}

// explode clears the 3x3 area centered on (x, y) and awards the bomb bonus.
func (s *Session) explode(x, y int) {
	cleared := s.board.ClearArea(x, y, BombRadius)
	bonus := int(BombBonus * s.upgrades.ScoreMultiplier)
	s.round.Score += bonus
	s.log.Debug("bomb", "x", x, "y", y, "cleared", cleared, "bonus", bonus)
}

// Hold sets the falling shape aside. With an empty slot the next piece
// spawns; otherwise the falling and held shapes swap and the swapped-in piece
// restarts at the spawn point in its default orientation. Hold is allowed
// once per spawn and only with the hold upgrade.
func (s *Session) Hold() bool {
	if !s.active() || !s.upgrades.HoldEnabled || !s.hold.CanHold {
		return false
	}
	current := s.piece.Shape
	if !s.hold.Held {
		s.hold.Shape = current
		s.hold.Held = true
		s.piece = nil
		s.spawn()
	} else {
		s.piece.Shape, s.hold.Shape = s.hold.Shape, current
		s.piece.Orientation = 0
		s.piece.X = SpawnX
		s.piece.Y = SpawnY
	}
	s.hold.CanHold = false
	s.log.Debug("hold", "held", s.hold.Shape)
	return true
}

// Ghost projects the falling piece straight down without committing it.
func (s *Session) Ghost() (Piece, bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	g := *s.piece
	g.Y += DropDistance(s.board, g)
	return g, true
}
