package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shape"
)

// DeckWindow lists the deck composition with draw odds and lets cards be
// added directly.
type DeckWindow struct{}

func NewDeckWindow() *DeckWindow {
	return &DeckWindow{}
}

func (dw *DeckWindow) Render(frame *loop.UpdateFrame) {
	imgui.SetNextWindowPosV(imgui.NewVec2(350, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 260), imgui.CondOnce)

	if !imgui.BeginV("Deck", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := frame.Session
	snap := s.Snapshot()
	imgui.Text(fmt.Sprintf("Cards: %d", snap.DeckSize))
	imgui.Text(fmt.Sprintf("Next: %s", snap.Next.Name()))
	if snap.Hold.Held {
		imgui.Text(fmt.Sprintf("Held: %s", snap.Hold.Shape.Name()))
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("DeckTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Odds")
		imgui.TableSetupColumn("")
		imgui.TableHeadersRow()

		for _, id := range shape.All() {
			count := snap.Deck[id]
			odds := float32(0)
			if snap.DeckSize > 0 {
				odds = float32(count) / float32(snap.DeckSize)
			}

			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.TextColored(shapeColor(id), id.Name())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", count))
			imgui.TableNextColumn()
			imgui.ProgressBarV(odds, imgui.NewVec2(-1, 0), fmt.Sprintf("%.0f%%", odds*100))
			imgui.TableNextColumn()
			if imgui.Button(fmt.Sprintf("+##add%d", id)) {
				frame.Commands.AddCards(id)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
