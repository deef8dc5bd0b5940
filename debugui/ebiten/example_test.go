package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrodeck/debugui"
	debugui_ebiten "github.com/plus3/tetrodeck/debugui/ebiten"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/loop"
)

// Game implements ebiten.Game and draws the inspector over the session.
type Game struct {
	scheduler    *loop.Scheduler
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Systems, including the ImguiSystem, run inside the ImGui frame.
	g.imguiBackend.Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	g.imguiBackend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	imguiBackend := debugui_ebiten.NewImguiBackend("Tetrodeck Inspector", 1280, 720)

	session := engine.New()
	session.Start()

	scheduler := loop.NewGameScheduler(session, nil)
	scheduler.Register(debugui.NewImguiSystem())

	game := &Game{
		scheduler:    scheduler,
		imguiBackend: imguiBackend,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
