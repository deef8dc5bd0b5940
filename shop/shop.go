// Package shop sells upgrades, jokers and card packs between rounds.
package shop

import (
	"errors"
	"fmt"
	"slices"

	"github.com/plus3/tetrodeck/engine"
)

var (
	ErrNotInShop    = errors.New("shop: session is not in the shop")
	ErrAlreadyOwned = errors.New("shop: already owned")
	ErrUnknownOffer = errors.New("shop: unknown offer")
)

type Kind int

const (
	KindUpgrade Kind = iota
	KindJoker
	KindPack
)

func (k Kind) String() string {
	switch k {
	case KindUpgrade:
		return "upgrade"
	case KindJoker:
		return "joker"
	case KindPack:
		return "pack"
	default:
		return "unknown"
	}
}

// Offer is one purchasable item. Only the fields matching Kind are used.
type Offer struct {
	Name        string
	Description string
	Price       int
	Kind        Kind

	Upgrade engine.UpgradeKey
	Value   any
	Joker   engine.Joker
	Pack    PackType
}

var catalog = []Offer{
	{Name: "Score Multiplier +0.5", Description: "all line scores x0.5 more", Price: 200, Kind: KindUpgrade, Upgrade: engine.UpgradeScoreMultiplier, Value: 0.5},
	{Name: "Extra Line Bonus", Description: "+100 per line clear", Price: 150, Kind: KindUpgrade, Upgrade: engine.UpgradeExtraLines, Value: 1},
	{Name: "Hold Piece", Description: "set a piece aside", Price: 300, Kind: KindUpgrade, Upgrade: engine.UpgradeHold, Value: true},
	{Name: "Ghost Piece", Description: "show the landing spot", Price: 250, Kind: KindUpgrade, Upgrade: engine.UpgradeGhost, Value: true},
	{Name: "Bomb Pieces", Description: "10% chance to spawn a bomb", Price: 400, Kind: KindUpgrade, Upgrade: engine.UpgradeBomb, Value: true},

	{Name: "Double Points", Description: "doubles line scores", Price: 500, Kind: KindJoker, Joker: engine.JokerDoublePoints},
	{Name: "Line Bonus", Description: "+50 per cleared line", Price: 300, Kind: KindJoker, Joker: engine.JokerLineBonus},
	{Name: "Level Boost", Description: "start rounds two levels up", Price: 400, Kind: KindJoker, Joker: engine.JokerLevelBoost},

	{Name: "Basic Pack", Description: "3 random pieces", Price: 100, Kind: KindPack, Pack: PackBasic},
	{Name: "Premium Pack", Description: "5 pieces, better odds", Price: 250, Kind: KindPack, Pack: PackPremium},
	{Name: "Straight Pack", Description: "4 straight pieces", Price: 200, Kind: KindPack, Pack: PackStraight},
}

// Catalog returns every offer in display order.
func Catalog() []Offer {
	return append([]Offer(nil), catalog...)
}

// Lookup finds an offer by name.
func Lookup(name string) (Offer, bool) {
	for _, o := range catalog {
		if o.Name == name {
			return o, true
		}
	}
	return Offer{}, false
}

// Owned reports whether a one-time offer is already active on the session.
// Numeric upgrades and packs can always be bought again.
func Owned(s *engine.Session, o Offer) bool {
	return owned(s.Upgrades(), s.HasJoker, o)
}

// SnapshotOwned is Owned for frontends that only hold a snapshot.
func SnapshotOwned(snap engine.Snapshot, o Offer) bool {
	return owned(snap.Upgrades, func(j engine.Joker) bool { return slices.Contains(snap.Jokers, j) }, o)
}

func owned(u engine.UpgradeConfig, hasJoker func(engine.Joker) bool, o Offer) bool {
	switch o.Kind {
	case KindUpgrade:
		switch o.Upgrade {
		case engine.UpgradeHold:
			return u.HoldEnabled
		case engine.UpgradeGhost:
			return u.GhostEnabled
		case engine.UpgradeBomb:
			return u.BombEnabled
		}
	case KindJoker:
		return hasJoker(o.Joker)
	}
	return false
}

// Affordable reports whether the session has the money for o.
func Affordable(s *engine.Session, o Offer) bool {
	return s.Round().Money >= o.Price
}

// Buy charges the session for o and applies it. Packs move the session to
// pack opening; CollectPack on the session returns it to the shop.
func Buy(s *engine.Session, o Offer) error {
	if s.Mode() != engine.ModeShop {
		return ErrNotInShop
	}
	if Owned(s, o) {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, o.Name)
	}
	if !Affordable(s, o) {
		return fmt.Errorf("%s costs $%d: %w", o.Name, o.Price, engine.ErrInsufficientFunds)
	}

	switch o.Kind {
	case KindUpgrade:
		if err := s.ApplyUpgrade(o.Upgrade, o.Value); err != nil {
			return err
		}
	case KindJoker:
		if err := s.AddJoker(string(o.Joker)); err != nil {
			return err
		}
	case KindPack:
		s.BeginPack(OpenPack(o.Pack, s.Rand()))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOffer, o.Name)
	}

	if err := s.Spend(o.Price); err != nil {
		return err
	}
	s.Logger().Info("purchase", "session", s.ID(), "offer", o.Name, "kind", o.Kind, "price", o.Price, "money", s.Round().Money)
	return nil
}

// BuyByName looks up and buys the named offer.
func BuyByName(s *engine.Session, name string) error {
	o, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOffer, name)
	}
	return Buy(s, o)
}

// PurchaseMessage is a one-line player-facing outcome of Buy.
func PurchaseMessage(o Offer, err error) string {
	switch {
	case err == nil:
		return "Bought " + o.Name
	case errors.Is(err, engine.ErrInsufficientFunds):
		return fmt.Sprintf("Not enough money for %s ($%d)", o.Name, o.Price)
	case errors.Is(err, ErrAlreadyOwned):
		return o.Name + " is already owned"
	default:
		return err.Error()
	}
}
