package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shape"
)

// BoardWindow shows the grid as a table of shape letters. The falling piece
// is drawn in lowercase and the ghost as a dot.
type BoardWindow struct {
	showGhost bool
}

func NewBoardWindow() *BoardWindow {
	return &BoardWindow{showGhost: true}
}

func (bw *BoardWindow) Render(frame *loop.UpdateFrame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(330, 520), imgui.CondOnce)

	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := frame.Session.Snapshot()
	imgui.Checkbox("Show ghost", &bw.showGhost)
	imgui.Text(fmt.Sprintf("Filled: %d", countFilled(snap.Board)))
	if snap.Piece != nil {
		imgui.Text(fmt.Sprintf("Piece: %s at (%d,%d) rot %d", snap.Piece.Shape.Name(), snap.Piece.X, snap.Piece.Y, snap.Piece.Orientation))
		if snap.Piece.Special {
			imgui.SameLine()
			imgui.TextColored(imgui.NewVec4(1, 0.3, 0.2, 1), "BOMB")
		}
	}
	imgui.Separator()

	overlay := pieceOverlay(snap, bw.showGhost)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("BoardTable", board.Width, tableFlags, imgui.NewVec2(0, 0), 0) {
		for y := range board.Height {
			imgui.TableNextRow()
			for x := range board.Width {
				imgui.TableNextColumn()
				if mark, ok := overlay[shape.Point{X: x, Y: y}]; ok {
					imgui.Text(mark)
					continue
				}
				id, ok := snap.Board[y][x].Shape()
				if !ok {
					imgui.Text(" ")
					continue
				}
				imgui.TextColored(shapeColor(id), string(id.Letter()))
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}

func pieceOverlay(snap engine.Snapshot, ghost bool) map[shape.Point]string {
	out := map[shape.Point]string{}
	if ghost && snap.Ghost != nil {
		for _, c := range snap.Ghost.Cells() {
			out[c] = "."
		}
	}
	if snap.Piece != nil {
		letter := string(snap.Piece.Shape.Letter() + ('a' - 'A'))
		if snap.Piece.Special {
			letter = "*"
		}
		for _, c := range snap.Piece.Cells() {
			out[c] = letter
		}
	}
	return out
}

func countFilled(g board.Grid) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}

func shapeColor(id shape.ID) imgui.Vec4 {
	c := id.Color()
	return imgui.NewVec4(float32(c[0])/255, float32(c[1])/255, float32(c[2])/255, 1)
}
