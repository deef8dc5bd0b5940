package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/debugui"
	debugui_ebiten "github.com/plus3/tetrodeck/debugui/ebiten"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/internal/sound"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shop"
)

type Game struct {
	cfg       config.Config
	log       *log.Logger
	scheduler *loop.Scheduler
	sound     *sound.Player
	dt        float64

	imgui    *debugui_ebiten.ImguiBackend
	imguiSys *debugui.ImguiSystem

	shopCursor int
	notice     string
	flash      int
}

func NewGame(cfg config.Config, logger *log.Logger) *Game {
	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithStartingMoney(cfg.StartingMoney),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	session := engine.New(opts...)

	g := &Game{
		cfg:   cfg,
		log:   logger,
		sound: sound.New(logger),
		dt:    1 / float64(cfg.TickRate),
	}
	if cfg.Sound {
		if err := g.sound.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
	}
	g.scheduler = loop.NewGameScheduler(session, &loop.RoundSystem{
		OnLinesCleared: func(lines int, _ engine.RoundState) {
			g.flash = cfg.TickRate / 4
			g.sound.LinesCleared(lines)
		},
		OnRoundComplete: func(r engine.RoundState) {
			g.sound.RoundComplete()
			g.notice = fmt.Sprintf("Round %d complete: +$%d", r.RoundNumber, engine.RoundPayout(r.RoundNumber))
		},
		OnGameOver: func(r engine.RoundState) {
			g.sound.GameOver()
			g.notice = fmt.Sprintf("Game over on round %d with %d points", r.RoundNumber, r.Score)
		},
	})

	if cfg.DebugUI {
		g.imgui = debugui_ebiten.NewImguiBackend("Tetrodeck", cfg.Window.Width, cfg.Window.Height)
		g.imguiSys = debugui.NewImguiSystem()
		g.scheduler.Register(g.imguiSys)
	}
	return g
}

func (g *Game) Update() error {
	if g.imgui == nil {
		g.update()
		return nil
	}
	g.imgui.Frame(g.update)
	return nil
}

func (g *Game) update() {
	if g.imguiSys == nil || !g.imguiSys.Input.WantCaptureKeyboard {
		g.handleKeys()
	}
	if g.flash > 0 {
		g.flash--
	}
	g.scheduler.Once(g.dt)
}

func (g *Game) handleKeys() {
	switch g.scheduler.Snapshot().Mode {
	case engine.ModeMenu:
		if justPressed(ebiten.KeyEnter, ebiten.KeySpace) {
			g.notice = ""
			g.scheduler.Do(func(s *engine.Session) { s.Start() })
		}
	case engine.ModePlaying:
		pollPlayInputs(g.scheduler.Queue)
	case engine.ModeShop:
		g.handleShopKeys()
	case engine.ModePackOpening:
		if justPressed(ebiten.KeyEnter, ebiten.KeySpace) {
			g.scheduler.Do(func(s *engine.Session) { s.CollectPack() })
		}
	case engine.ModeGameOver:
		if justPressed(ebiten.KeyR, ebiten.KeyEnter) {
			g.scheduler.Do(func(s *engine.Session) { s.Reset() })
		}
	}
}

func (g *Game) handleShopKeys() {
	offers := shop.Catalog()
	switch {
	case justPressed(ebiten.KeyUp, ebiten.KeyW):
		g.shopCursor = (g.shopCursor + len(offers) - 1) % len(offers)
	case justPressed(ebiten.KeyDown, ebiten.KeyS):
		g.shopCursor = (g.shopCursor + 1) % len(offers)
	case justPressed(ebiten.KeyEnter):
		offer := offers[g.shopCursor]
		g.scheduler.Do(func(s *engine.Session) {
			g.notice = shop.PurchaseMessage(offer, shop.Buy(s, offer))
		})
	case justPressed(ebiten.KeyN):
		g.notice = ""
		g.scheduler.Do(func(s *engine.Session) { s.StartNextRound() })
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, g.scheduler.Snapshot(), g.view())
	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) view() viewState {
	return viewState{
		cellSize:   g.cfg.CellSize,
		shopCursor: g.shopCursor,
		notice:     g.notice,
		flash:      g.flash > 0,
	}
}
