package engine

import (
	"fmt"
	"slices"
)

// UpgradeKey names a shop upgrade accepted by ApplyUpgrade.
type UpgradeKey string

const (
	UpgradeScoreMultiplier UpgradeKey = "score_multiplier"
	UpgradeExtraLines      UpgradeKey = "extra_lines"
	UpgradeHold            UpgradeKey = "hold_piece"
	UpgradeGhost           UpgradeKey = "ghost_piece"
	UpgradeBomb            UpgradeKey = "bomb_piece"
)

// UpgradeConfig holds the effects bought in the shop. The engine only reads it.
type UpgradeConfig struct {
	ScoreMultiplier float64
	ExtraLineBonus  int
	HoldEnabled     bool
	GhostEnabled    bool
	BombEnabled     bool
}

func DefaultUpgrades() UpgradeConfig {
	return UpgradeConfig{ScoreMultiplier: 1}
}

// Joker is a named scoring or leveling modifier.
type Joker string

const (
	JokerDoublePoints Joker = "Double Points"
	JokerLineBonus    Joker = "Line Bonus"
	JokerLevelBoost   Joker = "Level Boost"
)

// Jokers lists every known joker.
func Jokers() []Joker {
	return []Joker{JokerDoublePoints, JokerLineBonus, JokerLevelBoost}
}

func (j Joker) Valid() bool {
	return slices.Contains(Jokers(), j)
}

// ApplyUpgrade applies a shop effect. The score multiplier and extra line
// bonus are increased by value; the boolean upgrades are set to value.
func (s *Session) ApplyUpgrade(key UpgradeKey, value any) error {
	u := &s.upgrades
	switch key {
	case UpgradeScoreMultiplier:
		v, ok := toFloat(value)
		if !ok || u.ScoreMultiplier+v < 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidUpgradeValue, key, value)
		}
		u.ScoreMultiplier += v
	case UpgradeExtraLines:
		v, ok := value.(int)
		if !ok || u.ExtraLineBonus+v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidUpgradeValue, key, value)
		}
		u.ExtraLineBonus += v
	case UpgradeHold, UpgradeGhost, UpgradeBomb:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s=%v", ErrInvalidUpgradeValue, key, value)
		}
		switch key {
		case UpgradeHold:
			u.HoldEnabled = v
		case UpgradeGhost:
			u.GhostEnabled = v
		default:
			u.BombEnabled = v
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, key)
	}
	s.log.Debug("upgrade applied", "key", key, "value", value)
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// AddJoker appends a joker. Duplicates stack: each copy applies its rule.
func (s *Session) AddJoker(name string) error {
	j := Joker(name)
	if !j.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownJoker, name)
	}
	s.jokers = append(s.jokers, j)
	s.log.Debug("joker added", "joker", j, "count", len(s.jokers))
	return nil
}

// HasJoker reports whether at least one copy of j is active.
func (s *Session) HasJoker(j Joker) bool {
	return slices.Contains(s.jokers, j)
}
