package loop

import "github.com/plus3/tetrodeck/engine"

// CommandSystem applies the frame's player inputs in the order they arrived.
type CommandSystem struct {
	Accepted int64
	Rejected int64
}

func (c *CommandSystem) Execute(frame *UpdateFrame) {
	for _, in := range frame.Inputs {
		if Apply(frame.Session, in) {
			c.Accepted++
		} else {
			c.Rejected++
		}
	}
}

// GravitySystem advances the falling piece by the frame's elapsed time.
type GravitySystem struct {
	Steps int64
}

func (g *GravitySystem) Execute(frame *UpdateFrame) {
	if frame.Session.Tick(frame.Elapsed()) {
		g.Steps++
	}
}

// RoundSystem watches the session for progress and mode changes and reports
// them through its callbacks. Nil callbacks are skipped. A new round or a
// reset session starts its counters from zero, so clears and transitions in
// the first frame of a round are reported too.
type RoundSystem struct {
	OnLinesCleared  func(lines int, round engine.RoundState)
	OnRoundComplete func(round engine.RoundState)
	OnGameOver      func(round engine.RoundState)

	started   bool
	lastID    string
	lastMode  engine.Mode
	lastRound int
	lastLines int
}

func (r *RoundSystem) Execute(frame *UpdateFrame) {
	s := frame.Session
	id := s.ID()
	mode := s.Mode()
	round := s.Round()
	if !r.started {
		r.started = true
		r.remember(id, mode, round)
		return
	}

	prevMode, prevLines := r.lastMode, r.lastLines
	if id != r.lastID || round.RoundNumber != r.lastRound {
		// Rounds are entered through play; a reset waits in the menu.
		prevLines = 0
		prevMode = engine.ModePlaying
		if id != r.lastID && mode == engine.ModeMenu {
			prevMode = engine.ModeMenu
		}
	}

	if round.LinesCleared > prevLines && r.OnLinesCleared != nil {
		r.OnLinesCleared(round.LinesCleared-prevLines, round)
	}
	if mode != prevMode {
		switch mode {
		case engine.ModeShop:
			if prevMode == engine.ModePlaying && r.OnRoundComplete != nil {
				r.OnRoundComplete(round)
			}
		case engine.ModeGameOver:
			if r.OnGameOver != nil {
				r.OnGameOver(round)
			}
		}
	}
	r.remember(id, mode, round)
}

func (r *RoundSystem) remember(id string, mode engine.Mode, round engine.RoundState) {
	r.lastID, r.lastMode, r.lastRound, r.lastLines = id, mode, round.RoundNumber, round.LinesCleared
}
