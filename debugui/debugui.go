// Package debugui draws Dear ImGui inspector windows over a running session.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrodeck/loop"
)

// Window is an inspector panel drawn once per frame.
type Window interface {
	Render(frame *loop.UpdateFrame)
}

// WindowFunc adapts a plain function to Window.
type WindowFunc func(frame *loop.UpdateFrame)

func (f WindowFunc) Render(frame *loop.UpdateFrame) { f(frame) }

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input,
// so the frontend can hold back game keys while a widget has focus.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every window's render to the end of the frame, after
// the game systems have run.
type ImguiSystem struct {
	Windows []Window
	Input   InputState
}

// NewImguiSystem returns a system with the standard inspector windows.
func NewImguiSystem() *ImguiSystem {
	return &ImguiSystem{
		Windows: []Window{
			NewBoardWindow(),
			NewDeckWindow(),
			NewSessionWindow(),
			NewPerformanceWindow(120),
		},
	}
}

func (i *ImguiSystem) Execute(frame *loop.UpdateFrame) {
	io := imgui.CurrentIO()
	i.Input.WantCaptureMouse = io.WantCaptureMouse()
	i.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, w := range i.Windows {
		frame.Commands.Defer(func() { w.Render(frame) })
	}
}
