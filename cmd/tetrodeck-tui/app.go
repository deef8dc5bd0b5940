package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/internal/sound"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shop"
)

type uiState struct {
	shopCursor int
	notice     string
}

// App drives a session on a terminal screen. The scheduler runs on its own
// goroutine; the event loop only queues inputs and renders snapshots.
type App struct {
	cfg       config.Config
	log       *log.Logger
	screen    tcell.Screen
	scheduler *loop.Scheduler
	sound     *sound.Player

	mu sync.Mutex
	ui uiState
}

func NewApp(cfg config.Config, logger *log.Logger) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	a := newApp(cfg, logger, screen)
	if cfg.Sound {
		if err := a.sound.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
	}
	return a, nil
}

func newApp(cfg config.Config, logger *log.Logger, screen tcell.Screen, opts ...engine.Option) *App {
	base := []engine.Option{
		engine.WithLogger(logger),
		engine.WithStartingMoney(cfg.StartingMoney),
	}
	if cfg.Seed != 0 {
		base = append(base, engine.WithSeed(cfg.Seed))
	}
	a := &App{
		cfg:    cfg,
		log:    logger,
		screen: screen,
		sound:  sound.New(logger),
	}
	a.scheduler = loop.NewGameScheduler(engine.New(append(base, opts...)...), &loop.RoundSystem{
		OnLinesCleared: func(lines int, _ engine.RoundState) {
			a.sound.LinesCleared(lines)
		},
		OnRoundComplete: func(r engine.RoundState) {
			a.sound.RoundComplete()
			a.setNotice(fmt.Sprintf("Round %d complete: +$%d", r.RoundNumber, engine.RoundPayout(r.RoundNumber)))
		},
		OnGameOver: func(r engine.RoundState) {
			a.sound.GameOver()
			a.setNotice(fmt.Sprintf("Game over on round %d with %d points", r.RoundNumber, r.Score))
		},
	})
	return a
}

func (a *App) setNotice(s string) {
	a.mu.Lock()
	a.ui.notice = s
	a.mu.Unlock()
}

func (a *App) state() uiState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ui
}

// Run blocks until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.screen.Fini()
	defer a.sound.Close()

	interval := a.cfg.FrameInterval()
	go a.scheduler.Run(ctx, interval)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	redraw := time.NewTicker(interval)
	defer redraw.Stop()

	a.log.Info("terminal session started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handle(ev) {
				a.log.Info("quit", "frames", a.scheduler.GetStats().Frames)
				return nil
			}
		case <-redraw.C:
			render(a.screen, a.scheduler.Snapshot(), a.state())
		}
	}
}

// handle reacts to one terminal event. It returns false to quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		a.handleKey(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch a.scheduler.Snapshot().Mode {
	case engine.ModeMenu:
		if isConfirm(ev) {
			a.setNotice("")
			a.scheduler.Do(func(s *engine.Session) { s.Start() })
		}
	case engine.ModePlaying:
		if in, ok := playInput(ev); ok {
			a.scheduler.Queue(in)
		}
	case engine.ModeShop:
		a.handleShopKey(ev)
	case engine.ModePackOpening:
		if isConfirm(ev) {
			a.scheduler.Do(func(s *engine.Session) { s.CollectPack() })
		}
	case engine.ModeGameOver:
		if isRune(ev, 'r') {
			a.setNotice("")
			a.scheduler.Do(func(s *engine.Session) { s.Reset() })
		}
	}
}

func (a *App) handleShopKey(ev *tcell.EventKey) {
	offers := shop.Catalog()
	a.mu.Lock()
	cursor := a.ui.shopCursor
	a.mu.Unlock()

	switch {
	case ev.Key() == tcell.KeyUp || isRune(ev, 'k'):
		cursor = (cursor + len(offers) - 1) % len(offers)
	case ev.Key() == tcell.KeyDown || isRune(ev, 'j'):
		cursor = (cursor + 1) % len(offers)
	case ev.Key() == tcell.KeyEnter:
		offer := offers[cursor]
		var err error
		a.scheduler.Do(func(s *engine.Session) { err = shop.Buy(s, offer) })
		a.setNotice(shop.PurchaseMessage(offer, err))
	case isRune(ev, 'n'):
		a.setNotice("")
		a.scheduler.Do(func(s *engine.Session) { s.StartNextRound() })
	}

	a.mu.Lock()
	a.ui.shopCursor = cursor
	a.mu.Unlock()
}
