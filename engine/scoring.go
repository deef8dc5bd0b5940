package engine

// lineScores is the base award per simultaneous clear, before the level factor.
var lineScores = [...]int{0, 100, 300, 500, 800}

// LineScore computes the points for clearing n rows at the given level.
// Jokers are applied in order, then the multiplier, then the flat bonus.
func LineScore(n, level int, jokers []Joker, up UpgradeConfig) int {
	if n <= 0 {
		return 0
	}
	base := float64(lineScores[min(n, len(lineScores)-1)] * level)
	for _, j := range jokers {
		switch j {
		case JokerDoublePoints:
			base *= 2
		case JokerLineBonus:
			base += float64(50 * n)
		}
	}
	base *= up.ScoreMultiplier
	base += float64(up.ExtraLineBonus * 100)
	return int(base)
}

// ClearLines removes every full row, scores it and applies the level check.
// It returns the number of rows removed.
func (s *Session) ClearLines() int {
	n := s.board.ClearFullRows()
	if n == 0 {
		return 0
	}
	r := &s.round
	points := LineScore(n, r.Level, s.jokers, s.upgrades)
	r.Score += points
	r.LinesCleared += n
	s.log.Debug("lines cleared", "lines", n, "points", points, "score", r.Score)

	// One level per call, even if several thresholds were crossed.
	if r.LinesCleared >= r.Level*LinesPerLevel {
		r.Level++
		r.FallInterval = max(MinFallInterval, r.FallInterval-LevelFallStep)
		s.log.Debug("level up", "level", r.Level, "fall", r.FallInterval)
	}
	return n
}
