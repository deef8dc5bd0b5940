package bot

import (
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/shop"
)

// DefaultShoppingList favors scoring effects the bot can use. It never uses
// hold, so Hold Piece is left out.
var DefaultShoppingList = []string{
	"Double Points",
	"Score Multiplier +0.5",
	"Line Bonus",
	"Extra Line Bonus",
	"Straight Pack",
}

// Shop buys each listed offer the session can afford, in list order, and
// collects packs as soon as they open. It returns the names bought.
func Shop(s *engine.Session, list []string) []string {
	var bought []string
	for _, name := range list {
		o, ok := shop.Lookup(name)
		if !ok || shop.Owned(s, o) || !shop.Affordable(s, o) {
			continue
		}
		if err := shop.Buy(s, o); err != nil {
			s.Logger().Warn("bot purchase failed", "offer", name, "err", err)
			continue
		}
		if s.Mode() == engine.ModePackOpening {
			s.CollectPack()
		}
		bought = append(bought, name)
	}
	return bought
}
