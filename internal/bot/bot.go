// Package bot plays sessions without a human: a greedy placement search for
// the falling piece and a fixed shopping list between rounds.
package bot

import (
	"math"

	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shape"
)

// Weights score a settled board. Positive terms are rewarded.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

var DefaultWeights = Weights{Height: -0.51, Lines: 0.76, Holes: -0.36, Bumpiness: -0.18}

// Placement is a landing spot for the falling piece.
type Placement struct {
	Orientation int
	X           int
	Score       float64
}

// Best tries every orientation and column for p, dropping straight down
// from p's row. Ties keep the first candidate found. ok is false when p fits
// nowhere.
func Best(b *board.Board, p engine.Piece, w Weights) (best Placement, ok bool) {
	best.Score = math.Inf(-1)
	for o := 0; o < shape.Orientations; o++ {
		width, _ := p.Shape.Size(o)
		for x := 0; x+width <= board.Width; x++ {
			cand := p
			cand.Orientation = o
			cand.X = x
			if engine.Collides(b, cand, 0, 0) {
				continue
			}
			cand.Y += engine.DropDistance(b, cand)
			if score := evaluate(b, cand, w); score > best.Score {
				best = Placement{Orientation: o, X: x, Score: score}
				ok = true
			}
		}
	}
	return best, ok
}

// Plan turns a placement into the inputs that reach it from p, ending with a
// hard drop. Kicks are not modeled.
func Plan(p engine.Piece, target Placement) []loop.Input {
	var inputs []loop.Input
	for range (target.Orientation - p.Orientation + shape.Orientations) % shape.Orientations {
		inputs = append(inputs, loop.Rotate)
	}
	step := loop.MoveRight
	dx := target.X - p.X
	if dx < 0 {
		step, dx = loop.MoveLeft, -dx
	}
	for range dx {
		inputs = append(inputs, step)
	}
	return append(inputs, loop.HardDrop)
}

// Move plans the falling piece of s. It returns nil when there is no piece.
func Move(s *engine.Session, w Weights) []loop.Input {
	p, ok := s.Piece()
	if !ok {
		return nil
	}
	target, ok := Best(board.FromGrid(s.Board()), p, w)
	if !ok {
		return []loop.Input{loop.HardDrop}
	}
	return Plan(p, target)
}

func evaluate(b *board.Board, p engine.Piece, w Weights) float64 {
	nb := board.FromGrid(b.Grid())
	for _, c := range p.Cells() {
		if board.InBounds(c.X, c.Y) {
			nb.Set(c.X, c.Y, board.Occupied(p.Shape))
		}
	}
	lines := nb.ClearFullRows()

	var heights [board.Width]int
	holes := 0
	for x := 0; x < board.Width; x++ {
		seen := false
		for y := 0; y < board.Height; y++ {
			switch {
			case nb.IsOccupied(x, y) && !seen:
				seen = true
				heights[x] = board.Height - y
			case !nb.IsOccupied(x, y) && seen:
				holes++
			}
		}
	}
	aggregate, bumpiness := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bumpiness += abs(h - heights[x-1])
		}
	}
	return w.Height*float64(aggregate) + w.Lines*float64(lines) +
		w.Holes*float64(holes) + w.Bumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
