package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tetrodeck/loop"
)

// Held keys repeat after repeatDelay ticks, then every repeatRate ticks.
const (
	repeatDelay = 10
	repeatRate  = 3
)

// repeats reports whether a key held for duration ticks should fire this
// tick. The first tick always fires.
func repeats(duration, delay, rate int) bool {
	if duration == 1 {
		return true
	}
	return duration > delay && (duration-delay)%rate == 0
}

type binding struct {
	keys   []ebiten.Key
	input  loop.Input
	repeat bool
}

var playBindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}, input: loop.MoveLeft, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD}, input: loop.MoveRight, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS}, input: loop.SoftDrop, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW, ebiten.KeyX}, input: loop.Rotate},
	{keys: []ebiten.Key{ebiten.KeySpace}, input: loop.HardDrop},
	{keys: []ebiten.Key{ebiten.KeyC, ebiten.KeyShiftLeft}, input: loop.Hold},
}

// pollPlayInputs queues the inputs for keys pressed this tick.
func pollPlayInputs(queue func(loop.Input)) {
	for _, b := range playBindings {
		for _, k := range b.keys {
			if b.repeat {
				if d := inpututil.KeyPressDuration(k); d > 0 && repeats(d, repeatDelay, repeatRate) {
					queue(b.input)
					break
				}
				continue
			}
			if inpututil.IsKeyJustPressed(k) {
				queue(b.input)
				break
			}
		}
	}
}

func justPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
