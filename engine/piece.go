package engine

import (
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/shape"
)

// Spawn position of every new piece: horizontal center, top row.
const (
	SpawnX = board.Width/2 - 1
	SpawnY = 0
)

// Piece is a positioned instance of a catalog shape. X and Y are the board
// coordinates of the top-left corner of the current orientation's bounding box.
type Piece struct {
	Shape       shape.ID
	Orientation int
	X, Y        int
	// Special marks a bomb piece.
	Special bool
}

func newPiece(id shape.ID) Piece {
	return Piece{Shape: id, X: SpawnX, Y: SpawnY}
}

// Cells returns the board coordinates the piece occupies.
func (p Piece) Cells() []shape.Point {
	offsets := p.Shape.Cells(p.Orientation)
	cells := make([]shape.Point, len(offsets))
	for i, o := range offsets {
		cells[i] = shape.Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return cells
}

// Collides reports whether translating p by (dx, dy) would leave the side
// walls, go below the floor, or overlap an occupied cell. Cells above the top
// row are only checked against the walls.
func Collides(b *board.Board, p Piece, dx, dy int) bool {
	for _, o := range p.Shape.Cells(p.Orientation) {
		x := p.X + o.X + dx
		y := p.Y + o.Y + dy
		if x < 0 || x >= board.Width || y >= board.Height {
			return true
		}
		if y >= 0 && b.IsOccupied(x, y) {
			return true
		}
	}
	return false
}

// DropDistance returns how many rows p can fall before it is blocked.
func DropDistance(b *board.Board, p Piece) int {
	n := 0
	for !Collides(b, p, 0, n+1) {
		n++
	}
	return n
}
