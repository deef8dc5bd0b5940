package engine

import "time"

// Tick advances the session clock. A score at or above the round target
// moves the session to the shop before any gravity is applied. Otherwise,
// when the accumulated time reaches the fall interval exactly one step fires
// and the accumulator resets; a blocked step locks the piece. Tick returns
// true when a gravity step fired.
func (s *Session) Tick(elapsed time.Duration) bool {
	if !s.active() || s.checkRoundComplete() {
		return false
	}
	s.fallElapsed += elapsed
	if s.fallElapsed < s.round.FallInterval {
		return false
	}
	s.fallElapsed = 0
	if !s.Move(0, 1) {
		s.lock()
	}
	s.checkRoundComplete()
	return true
}

func (s *Session) checkRoundComplete() bool {
	if s.mode != ModePlaying || s.round.Score < s.round.RoundTarget {
		return false
	}
	s.completeRound()
	return true
}
