package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrodeck/loop"
)

// playInput maps a key event to a player input.
func playInput(ev *tcell.EventKey) (loop.Input, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return loop.MoveLeft, true
	case tcell.KeyRight:
		return loop.MoveRight, true
	case tcell.KeyDown:
		return loop.SoftDrop, true
	case tcell.KeyUp:
		return loop.Rotate, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return loop.MoveLeft, true
		case 'l', 'd':
			return loop.MoveRight, true
		case 'j', 's':
			return loop.SoftDrop, true
		case 'k', 'w', 'x':
			return loop.Rotate, true
		case ' ':
			return loop.HardDrop, true
		case 'c':
			return loop.Hold, true
		}
	}
	return 0, false
}

func isConfirm(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
}

func isRune(ev *tcell.EventKey, r rune) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() == r
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || isRune(ev, 'q')
}
