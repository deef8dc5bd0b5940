package shop

import (
	"math/rand/v2"

	"github.com/plus3/tetrodeck/shape"
)

type PackType int

const (
	PackBasic PackType = iota
	PackPremium
	PackStraight
)

const premiumStraightChance = 0.4

func (p PackType) String() string {
	switch p {
	case PackBasic:
		return "basic"
	case PackPremium:
		return "premium"
	case PackStraight:
		return "straight"
	default:
		return "unknown"
	}
}

// OpenPack rolls the contents of a pack.
func OpenPack(p PackType, rng *rand.Rand) []shape.ID {
	var out []shape.ID
	switch p {
	case PackBasic:
		for range 3 {
			out = append(out, randomShape(rng))
		}
	case PackPremium:
		for range 5 {
			if rng.Float64() < premiumStraightChance {
				out = append(out, shape.I)
			} else {
				out = append(out, randomShape(rng))
			}
		}
	case PackStraight:
		for range 4 {
			out = append(out, shape.I)
		}
	}
	return out
}

func randomShape(rng *rand.Rand) shape.ID {
	return shape.ID(rng.IntN(shape.Count))
}
