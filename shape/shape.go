// Package shape holds the catalog of the seven tetromino geometries.
//
// Every orientation of every shape is computed once at init by stepping a
// clockwise quarter turn over the trimmed occupancy matrix, so rotating a
// piece is a table lookup and four steps always return to the original cells.
package shape

import "fmt"

// ID identifies one of the seven catalog shapes.
type ID uint8

const (
	I ID = iota
	O
	T
	S
	Z
	J
	L
)

// Count is the number of shapes in the catalog.
const Count = 7

// Orientations is the number of distinct rotation states per shape.
const Orientations = 4

// Point is a (column, row) offset within a shape's bounding box.
type Point struct {
	X, Y int
}

// RGB is a display color.
type RGB [3]uint8

type definition struct {
	name   string
	short  byte
	color  RGB
	matrix [][]bool
}

var definitions = [Count]definition{
	I: {"I (Straight)", 'I', RGB{0, 255, 255}, parse("XXXX")},
	O: {"O (Square)", 'O', RGB{255, 255, 0}, parse("XX", "XX")},
	T: {"T", 'T', RGB{128, 0, 128}, parse(".X.", "XXX")},
	S: {"S", 'S', RGB{0, 255, 0}, parse(".XX", "XX.")},
	Z: {"Z", 'Z', RGB{255, 0, 0}, parse("XX.", ".XX")},
	J: {"J", 'J', RGB{0, 0, 255}, parse("X..", "XXX")},
	L: {"L", 'L', RGB{255, 165, 0}, parse("..X", "XXX")},
}

// orientations[id][o] holds the occupied cells of shape id in orientation o,
// in row-major order.
var orientations [Count][Orientations][]Point

// matrices[id][o] holds the occupancy matrix for each orientation.
var matrices [Count][Orientations][][]bool

func init() {
	for id := range definitions {
		m := definitions[id].matrix
		for o := 0; o < Orientations; o++ {
			matrices[id][o] = m
			orientations[id][o] = cellsOf(m)
			m = rotateClockwise(m)
		}
	}
}

func parse(rows ...string) [][]bool {
	m := make([][]bool, len(rows))
	for y, row := range rows {
		m[y] = make([]bool, len(row))
		for x := range row {
			m[y][x] = row[x] == 'X'
		}
	}
	return m
}

// rotateClockwise reverses the row order and transposes, which is a quarter
// turn clockwise for any rectangular matrix.
func rotateClockwise(m [][]bool) [][]bool {
	rows, cols := len(m), len(m[0])
	out := make([][]bool, cols)
	for x := 0; x < cols; x++ {
		out[x] = make([]bool, rows)
		for y := 0; y < rows; y++ {
			out[x][y] = m[rows-1-y][x]
		}
	}
	return out
}

func cellsOf(m [][]bool) []Point {
	var cells []Point
	for y, row := range m {
		for x, on := range row {
			if on {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// All returns every catalog shape in catalog order.
func All() []ID {
	return []ID{I, O, T, S, Z, J, L}
}

// Valid reports whether id names a catalog shape.
func (id ID) Valid() bool {
	return id < Count
}

// Cells returns the occupied offsets of the shape in the given orientation.
// The returned slice is shared and must not be modified.
func (id ID) Cells(orientation int) []Point {
	return orientations[id][normalize(orientation)]
}

// Matrix returns a copy of the occupancy matrix for the given orientation.
func (id ID) Matrix(orientation int) [][]bool {
	src := matrices[id][normalize(orientation)]
	out := make([][]bool, len(src))
	for y := range src {
		out[y] = append([]bool(nil), src[y]...)
	}
	return out
}

// Size returns the bounding box width and height for the given orientation.
func (id ID) Size(orientation int) (width, height int) {
	m := matrices[id][normalize(orientation)]
	return len(m[0]), len(m)
}

// Rotate returns the orientation one clockwise quarter turn after o.
func Rotate(o int) int {
	return normalize(o + 1)
}

func normalize(o int) int {
	o %= Orientations
	if o < 0 {
		o += Orientations
	}
	return o
}

func (id ID) Name() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}
	return definitions[id].name
}

// Letter is the single character used by text frontends and board dumps.
func (id ID) Letter() byte {
	if !id.Valid() {
		return '?'
	}
	return definitions[id].short
}

func (id ID) Color() RGB {
	if !id.Valid() {
		return RGB{128, 128, 128}
	}
	return definitions[id].color
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}
	return string(definitions[id].short)
}

// FromLetter maps a catalog letter back to its ID.
func FromLetter(c byte) (ID, bool) {
	for id := range definitions {
		if definitions[id].short == c {
			return ID(id), true
		}
	}
	return 0, false
}
