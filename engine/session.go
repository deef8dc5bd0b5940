// Package engine simulates a falling-block round driven by a weighted deck.
//
// A Session owns the board, the deck, the falling piece, the hold slot and
// the round, upgrade and joker state. It is not safe for concurrent use: the
// caller processes one command or tick at a time.
package engine

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/deck"
	"github.com/plus3/tetrodeck/shape"
)

const (
	DefaultStartingMoney = 500
	InitialFallInterval  = 500 * time.Millisecond
	MinFallInterval      = 100 * time.Millisecond
	LevelFallStep        = 50 * time.Millisecond
	LevelBoostFallStep   = 100 * time.Millisecond
	LinesPerLevel        = 10
	RoundTargetStep      = 1000
	BombChance           = 0.1
	BombBonus            = 200
	BombRadius           = 1
	HardDropPoints       = 2
	LevelBoostLevels     = 2
)

// HoldSlot stores at most one shape set aside by the player.
type HoldSlot struct {
	Shape shape.ID
	Held  bool
	// CanHold is reset on every spawn and cleared when hold is used.
	CanHold bool
}

// RoundState is the per-round progress plus the money carried across rounds.
type RoundState struct {
	Score        int
	LinesCleared int
	Level        int
	FallInterval time.Duration
	RoundNumber  int
	RoundTarget  int
	Money        int
}

// RoundPayout is the money awarded for completing the given round.
func RoundPayout(round int) int {
	return 100 + 50*round
}

type Option func(*Session)

// WithRand sets the random source used for deck draws, bomb rolls and packs.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed seeds a PCG random source.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithStartingMoney(money int) Option {
	return func(s *Session) { s.startingMoney = money }
}

// WithDeck starts the session with the given cards instead of one of each.
func WithDeck(cards ...shape.ID) Option {
	return func(s *Session) { s.initialCards = cards }
}

type Session struct {
	id            string
	log           *log.Logger
	rng           *rand.Rand
	startingMoney int
	initialCards  []shape.ID

	mode     Mode
	board    *board.Board
	deck     *deck.Deck
	source   *deck.Source
	piece    *Piece
	hold     HoldSlot
	round    RoundState
	upgrades UpgradeConfig
	jokers   []Joker
	pack     []shape.ID

	fallElapsed time.Duration
}

func New(opts ...Option) *Session {
	s := &Session{startingMoney: DefaultStartingMoney}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.id = uuid.NewString()
	s.mode = ModeMenu
	s.board = board.New()
	if s.initialCards != nil {
		s.deck = deck.NewFrom(s.initialCards...)
	} else {
		s.deck = deck.New()
	}
	s.source = deck.NewSource(s.deck, s.rng)
	s.piece = nil
	s.hold = HoldSlot{CanHold: true}
	s.round = RoundState{
		Level:        1,
		FallInterval: InitialFallInterval,
		RoundNumber:  1,
		RoundTarget:  RoundTargetStep,
		Money:        s.startingMoney,
	}
	s.upgrades = DefaultUpgrades()
	s.jokers = nil
	s.pack = nil
	s.fallElapsed = 0
}

// Reset discards the whole run and returns to the menu.
func (s *Session) Reset() {
	s.reset()
	s.log.Info("session reset", "session", s.id)
}

// Start leaves the menu and spawns the first piece.
func (s *Session) Start() bool {
	if s.mode != ModeMenu {
		return false
	}
	s.board.Reset()
	s.source.Reseed()
	s.fallElapsed = 0
	s.mode = ModePlaying
	s.log.Info("round started", "session", s.id, "round", s.round.RoundNumber)
	s.spawn()
	return true
}

// StartNextRound resets the per-round progress, re-applies the Level Boost
// joker, clears the board and spawns. It is only accepted from the shop.
func (s *Session) StartNextRound() bool {
	if s.mode != ModeShop {
		return false
	}
	r := &s.round
	r.RoundNumber++
	r.RoundTarget = RoundTargetStep * r.RoundNumber
	r.Score = 0
	r.LinesCleared = 0
	r.Level = 1
	r.FallInterval = InitialFallInterval
	if s.HasJoker(JokerLevelBoost) {
		r.Level += LevelBoostLevels
		r.FallInterval = max(MinFallInterval, r.FallInterval-LevelBoostFallStep)
	}

	s.board.Reset()
	s.source.Reseed()
	s.fallElapsed = 0
	s.mode = ModePlaying
	s.log.Info("round started", "session", s.id, "round", r.RoundNumber, "target", r.RoundTarget, "level", r.Level)
	s.spawn()
	return true
}

// completeRound pays out and moves to the shop.
func (s *Session) completeRound() {
	payout := RoundPayout(s.round.RoundNumber)
	s.round.Money += payout
	s.piece = nil
	s.mode = ModeShop
	s.log.Info("round complete", "session", s.id, "round", s.round.RoundNumber, "score", s.round.Score, "payout", payout)
}

// AddCardsToDeck grows the deck. Invalid shapes are ignored.
func (s *Session) AddCardsToDeck(cards ...shape.ID) {
	s.deck.Add(cards...)
	s.log.Debug("cards added", "cards", len(cards), "deck", s.deck.Len())
}

// Spend deducts money for a purchase.
func (s *Session) Spend(amount int) error {
	if amount > s.round.Money {
		return ErrInsufficientFunds
	}
	s.round.Money -= amount
	return nil
}

// BeginPack moves from the shop to pack opening with the given contents.
func (s *Session) BeginPack(contents []shape.ID) bool {
	if s.mode != ModeShop {
		return false
	}
	s.pack = append([]shape.ID(nil), contents...)
	s.mode = ModePackOpening
	return true
}

// CollectPack adds the opened pack to the deck and returns to the shop.
func (s *Session) CollectPack() bool {
	if s.mode != ModePackOpening {
		return false
	}
	s.AddCardsToDeck(s.pack...)
	s.pack = nil
	s.mode = ModeShop
	return true
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Mode() Mode {
	return s.mode
}

// Rand exposes the session random source for shop and pack effects.
func (s *Session) Rand() *rand.Rand {
	return s.rng
}

func (s *Session) Logger() *log.Logger {
	return s.log
}

func (s *Session) Round() RoundState {
	return s.round
}

func (s *Session) Upgrades() UpgradeConfig {
	return s.upgrades
}

// ActiveJokers returns a copy of the jokers in acquisition order.
func (s *Session) ActiveJokers() []Joker {
	return append([]Joker(nil), s.jokers...)
}

func (s *Session) HoldSlot() HoldSlot {
	return s.hold
}

// Piece returns the falling piece. ok is false when there is none.
func (s *Session) Piece() (p Piece, ok bool) {
	if s.piece == nil {
		return Piece{}, false
	}
	return *s.piece, true
}

// NextShape returns the pre-drawn upcoming shape.
func (s *Session) NextShape() shape.ID {
	return s.source.Peek()
}

// DeckCounts returns the number of copies per shape in the deck.
func (s *Session) DeckCounts() [shape.Count]int {
	return s.deck.Counts()
}

func (s *Session) Pack() []shape.ID {
	return append([]shape.ID(nil), s.pack...)
}

func (s *Session) Board() board.Grid {
	return s.board.Grid()
}
