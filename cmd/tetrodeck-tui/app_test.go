package main

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/loop"
	"github.com/plus3/tetrodeck/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, opts ...engine.Option) *App {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	scr.SetSize(100, 30)
	t.Cleanup(scr.Fini)

	cfg := config.Default()
	cfg.Seed = 3
	return newApp(cfg, log.New(io.Discard), scr, opts...)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenText(scr tcell.Screen) string {
	w, h := scr.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := scr.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestPlayInput(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want loop.Input
	}{
		{key(tcell.KeyLeft), loop.MoveLeft},
		{runeKey('l'), loop.MoveRight},
		{key(tcell.KeyDown), loop.SoftDrop},
		{runeKey('k'), loop.Rotate},
		{runeKey(' '), loop.HardDrop},
		{runeKey('c'), loop.Hold},
	}
	for _, tc := range cases {
		got, ok := playInput(tc.ev)
		require.True(t, ok, tc.want.String())
		assert.Equal(t, tc.want, got)
	}
	_, ok := playInput(runeKey('z'))
	assert.False(t, ok)
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)
	assert.False(t, a.handle(runeKey('q')))
	assert.False(t, a.handle(key(tcell.KeyEscape)))
	assert.True(t, a.handle(runeKey('z')))
}

func TestMenuStartsAndInputsQueue(t *testing.T) {
	a := newTestApp(t)
	require.True(t, a.handle(key(tcell.KeyEnter)))
	require.Equal(t, engine.ModePlaying, a.scheduler.Snapshot().Mode)

	a.handle(runeKey(' '))
	a.scheduler.Once(0)
	snap := a.scheduler.Snapshot()
	assert.Greater(t, snap.Round.Score, 0, "hard drop points")
	assert.Equal(t, engine.ModePlaying, snap.Mode)
}

func TestRenderPlaying(t *testing.T) {
	a := newTestApp(t)
	a.handle(key(tcell.KeyEnter))
	render(a.screen, a.scheduler.Snapshot(), a.state())

	text := screenText(a.screen)
	assert.Contains(t, text, "Round  1")
	assert.Contains(t, text, "Score  0 / 1000")
	assert.Contains(t, text, "Money  $500")
	assert.NotContains(t, text, "Hold")
}

func TestShopFlow(t *testing.T) {
	a := newTestApp(t, engine.WithDeck(shape.I))
	a.handle(key(tcell.KeyEnter))
	a.scheduler.Once(0)
	a.scheduler.Do(func(s *engine.Session) {
		for x := range board.Width {
			s.Rotate()
			s.Move(x-engine.SpawnX, 0)
			s.HardDrop()
		}
	})
	a.scheduler.Once(engine.InitialFallInterval.Seconds())
	require.Equal(t, engine.ModeShop, a.scheduler.Snapshot().Mode)
	assert.Contains(t, a.state().notice, "Round 1 complete")

	// Hold Piece is third in the catalog.
	a.handle(key(tcell.KeyDown))
	a.handle(key(tcell.KeyDown))
	a.handle(key(tcell.KeyEnter))
	assert.Equal(t, "Bought Hold Piece", a.state().notice)
	assert.True(t, a.scheduler.Snapshot().Upgrades.HoldEnabled)

	render(a.screen, a.scheduler.Snapshot(), a.state())
	assert.Regexp(t, `Hold Piece\s+owned`, screenText(a.screen))

	a.handle(key(tcell.KeyEnter))
	assert.Equal(t, "Hold Piece is already owned", a.state().notice)

	a.handle(runeKey('n'))
	snap := a.scheduler.Snapshot()
	assert.Equal(t, engine.ModePlaying, snap.Mode)
	assert.Equal(t, 2, snap.Round.RoundNumber)
}
