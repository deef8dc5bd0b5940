// Package board implements the fixed-size occupancy grid pieces settle into.
package board

import (
	"strings"

	"github.com/plus3/tetrodeck/shape"
)

const (
	Width  = 10
	Height = 20
)

// Cell is either Empty or the shape that settled there, stored as ID+1.
type Cell uint8

const Empty Cell = 0

// Occupied returns the cell value for a settled piece of the given shape.
func Occupied(id shape.ID) Cell {
	return Cell(id) + 1
}

func (c Cell) Empty() bool {
	return c == Empty
}

// Shape returns the shape that settled in c. ok is false for an empty cell.
func (c Cell) Shape() (id shape.ID, ok bool) {
	if c == Empty {
		return 0, false
	}
	return shape.ID(c - 1), true
}

// Grid is a value copy of the board, indexed [row][column].
type Grid [Height][Width]Cell

// Board is the playfield. Row 0 is the top.
type Board struct {
	cells Grid
}

func New() *Board {
	return &Board{}
}

// FromRows builds a board from text rows, bottom-aligned. '.' is empty and a
// catalog letter is a settled cell of that shape; any other byte is an I cell.
func FromRows(rows ...string) *Board {
	b := New()
	offset := Height - len(rows)
	for i, row := range rows {
		for x := 0; x < len(row) && x < Width; x++ {
			if row[x] == '.' {
				continue
			}
			id, ok := shape.FromLetter(row[x])
			if !ok {
				id = shape.I
			}
			b.cells[offset+i][x] = Occupied(id)
		}
	}
	return b
}

// FromGrid copies a snapshot grid into a new board.
func FromGrid(g Grid) *Board {
	return &Board{cells: g}
}

func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at (x, y). Out of bounds reads are Empty.
func (b *Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

func (b *Board) IsOccupied(x, y int) bool {
	return !b.At(x, y).Empty()
}

// Set writes c at (x, y) and ignores out of bounds writes.
func (b *Board) Set(x, y int, c Cell) {
	if !InBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if b.cells[y][x] == Empty {
			return false
		}
	}
	return true
}

// FullRows lists the rows with no empty cell, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < Height; y++ {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearFullRows removes every full row, keeps the surviving rows in order and
// inserts the same number of empty rows at the top. It returns the number of
// rows removed.
func (b *Board) ClearFullRows() int {
	var next Grid
	dst := Height - 1
	for y := Height - 1; y >= 0; y-- {
		if b.rowFull(y) {
			continue
		}
		next[dst] = b.cells[y]
		dst--
	}
	removed := dst + 1
	if removed > 0 {
		b.cells = next
	}
	return removed
}

// ClearArea empties every in-bounds cell within radius of (cx, cy) on both
// axes and returns how many occupied cells were cleared.
func (b *Board) ClearArea(cx, cy, radius int) int {
	cleared := 0
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if !InBounds(x, y) {
				continue
			}
			if b.cells[y][x] != Empty {
				cleared++
			}
			b.cells[y][x] = Empty
		}
	}
	return cleared
}

// Filled counts occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != Empty {
				n++
			}
		}
	}
	return n
}

func (b *Board) Reset() {
	b.cells = Grid{}
}

func (b *Board) Grid() Grid {
	return b.cells
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.cells {
		for x := range b.cells[y] {
			if id, ok := b.cells[y][x].Shape(); ok {
				sb.WriteByte(id.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
