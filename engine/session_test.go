package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaying(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(append([]Option{WithSeed(7)}, opts...)...)
	require.Equal(t, ModeMenu, s.Mode())
	require.True(t, s.Start())
	require.Equal(t, ModePlaying, s.Mode())
	return s
}

// place replaces the falling piece.
func (s *Session) place(p Piece) {
	s.piece = &p
}

func fullBoard() *board.Board {
	b := board.New()
	for y := range board.Height {
		for x := range board.Width {
			b.Set(x, y, board.Occupied(shape.I))
		}
	}
	return b
}

func TestNewSessionDefaults(t *testing.T) {
	s := New()
	r := s.Round()
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Equal(t, 1, r.Level)
	assert.Equal(t, 1, r.RoundNumber)
	assert.Equal(t, 1000, r.RoundTarget)
	assert.Equal(t, 500, r.Money)
	assert.Equal(t, InitialFallInterval, r.FallInterval)
	assert.Equal(t, DefaultUpgrades(), s.Upgrades())
	assert.True(t, s.HoldSlot().CanHold)
	assert.Equal(t, 7, s.Snapshot().DeckSize)
	assert.NotEmpty(t, s.ID())

	_, ok := s.Piece()
	assert.False(t, ok)
}

func TestStartSpawnsAtCenter(t *testing.T) {
	s := newPlaying(t)
	p, ok := s.Piece()
	require.True(t, ok)
	assert.Equal(t, SpawnX, p.X)
	assert.Equal(t, SpawnY, p.Y)
	assert.Equal(t, 0, p.Orientation)
	assert.False(t, p.Special)
	assert.False(t, s.Start(), "start is only accepted from the menu")
}

func TestSameSeedSameShapes(t *testing.T) {
	a := newPlaying(t)
	b := newPlaying(t)
	for range 50 {
		pa, _ := a.Piece()
		pb, _ := b.Piece()
		require.Equal(t, pa.Shape, pb.Shape)
		require.Equal(t, a.NextShape(), b.NextShape())
		a.board.Reset()
		b.board.Reset()
		a.HardDrop()
		b.HardDrop()
	}
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestLookaheadBecomesNextPiece(t *testing.T) {
	s := newPlaying(t)
	for range 20 {
		next := s.NextShape()
		s.board.Reset()
		require.True(t, s.HardDrop())
		p, ok := s.Piece()
		require.True(t, ok)
		assert.Equal(t, next, p.Shape)
	}
}

func TestMoveAgainstRightWall(t *testing.T) {
	s := newPlaying(t)
	s.place(Piece{Shape: shape.O, X: 8, Y: 5})

	assert.False(t, s.Move(1, 0))
	p, _ := s.Piece()
	assert.Equal(t, 8, p.X)
	assert.Equal(t, 5, p.Y)

	assert.True(t, s.Move(-1, 0))
	p, _ = s.Piece()
	assert.Equal(t, 7, p.X)
}

func TestMoveBlockedByStack(t *testing.T) {
	s := newPlaying(t)
	s.board.Set(4, 10, board.Occupied(shape.Z))
	s.place(Piece{Shape: shape.O, X: 4, Y: 8})

	assert.False(t, s.Move(0, 1))
	assert.True(t, s.Move(1, 0))
	assert.True(t, s.Move(0, 1))
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, id := range shape.All() {
		t.Run(id.Name(), func(t *testing.T) {
			s := newPlaying(t)
			s.place(Piece{Shape: id, X: 3, Y: 5})
			for range 4 {
				require.True(t, s.Rotate())
			}
			p, _ := s.Piece()
			assert.Equal(t, Piece{Shape: id, X: 3, Y: 5}, p)
		})
	}
}

func TestRotateWallKicks(t *testing.T) {
	tests := []struct {
		name    string
		piece   Piece
		ok      bool
		wantX   int
		wantOri int
	}{
		{"no kick", Piece{Shape: shape.T, Orientation: 1, X: 4, Y: 5}, true, 4, 2},
		{"kick left by one", Piece{Shape: shape.T, Orientation: 1, X: 8, Y: 5}, true, 7, 2},
		{"kick left by two", Piece{Shape: shape.I, Orientation: 1, X: 8, Y: 5}, true, 6, 2},
		{"no kick fits", Piece{Shape: shape.I, Orientation: 1, X: 9, Y: 5}, false, 9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPlaying(t)
			s.place(tt.piece)
			assert.Equal(t, tt.ok, s.Rotate())
			p, _ := s.Piece()
			assert.Equal(t, tt.wantX, p.X)
			assert.Equal(t, tt.wantOri, p.Orientation)
			assert.Equal(t, tt.piece.Y, p.Y)
		})
	}
}

func TestRotateKickPrefersRight(t *testing.T) {
	s := newPlaying(t)
	s.board.Set(3, 7, board.Occupied(shape.J))
	s.place(Piece{Shape: shape.T, X: 3, Y: 5})

	// Both +1 and -1 fit; +1 is tried first.
	require.True(t, s.Rotate())
	p, _ := s.Piece()
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 1, p.Orientation)
}

func TestHardDropScoresTwoPerRow(t *testing.T) {
	s := newPlaying(t)
	p, _ := s.Piece()
	rows := DropDistance(s.board, p)
	require.Positive(t, rows)

	require.True(t, s.HardDrop())
	assert.Equal(t, 2*rows, s.Round().Score)
	assert.Equal(t, 4, s.board.Filled())
}

func TestClearOneLineAtLevelOne(t *testing.T) {
	s := newPlaying(t)
	s.board = board.FromRows("IIIIIIII..")
	s.place(Piece{Shape: shape.O, X: 8, Y: 18})

	require.True(t, s.Lock())
	r := s.Round()
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, 1, r.LinesCleared)
	assert.Equal(t, board.Occupied(shape.O), s.board.At(8, 19))
	assert.Equal(t, 2, s.board.Filled())
}

func TestClearFourLinesAtLevelTwo(t *testing.T) {
	s := newPlaying(t)
	s.board = board.FromRows(
		"IIIIIIIII.",
		"IIIIIIIII.",
		"IIIIIIIII.",
		"IIIIIIIII.",
	)
	s.round.Level = 2
	s.place(Piece{Shape: shape.I, Orientation: 1, X: 9, Y: 16})

	require.True(t, s.Lock())
	assert.Equal(t, 1600, s.Round().Score)
	assert.Equal(t, 4, s.Round().LinesCleared)
	assert.Zero(t, s.board.Filled())
}

func TestClearLinesIsIdempotent(t *testing.T) {
	s := newPlaying(t)
	s.board = board.FromRows("IIIIIIIIII", "IIIII.IIII")
	assert.Equal(t, 1, s.ClearLines())
	score := s.Round().Score
	assert.Zero(t, s.ClearLines())
	assert.Equal(t, score, s.Round().Score)
}

func TestLineScore(t *testing.T) {
	base := DefaultUpgrades()
	tests := []struct {
		name   string
		lines  int
		level  int
		jokers []Joker
		up     UpgradeConfig
		want   int
	}{
		{"none", 0, 3, nil, base, 0},
		{"single", 1, 1, nil, base, 100},
		{"double", 2, 1, nil, base, 300},
		{"triple", 3, 2, nil, base, 1000},
		{"tetris", 4, 2, nil, base, 1600},
		{"capped", 6, 1, nil, base, 800},
		{"double then bonus", 1, 1, []Joker{JokerDoublePoints, JokerLineBonus}, base, 250},
		{"bonus then double", 1, 1, []Joker{JokerLineBonus, JokerDoublePoints}, base, 300},
		{"stacked doubles", 1, 1, []Joker{JokerDoublePoints, JokerDoublePoints}, base, 400},
		{"level boost does not score", 1, 1, []Joker{JokerLevelBoost}, base, 100},
		{"multiplier then extra", 1, 1, nil, UpgradeConfig{ScoreMultiplier: 1.5, ExtraLineBonus: 1}, 250},
		{"floored", 1, 1, []Joker{JokerLineBonus}, UpgradeConfig{ScoreMultiplier: 1.5}, 225},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineScore(tt.lines, tt.level, tt.jokers, tt.up))
		})
	}
}

func TestLevelUpIsSingleCheck(t *testing.T) {
	s := newPlaying(t)
	s.round.LinesCleared = 28
	s.board = board.FromRows(
		"IIIIIIIIII",
		"IIIIIIIIII",
		"IIIIIIIIII",
		"IIIIIIIIII",
	)
	require.Equal(t, 4, s.ClearLines())
	r := s.Round()
	assert.Equal(t, 32, r.LinesCleared)
	assert.Equal(t, 2, r.Level, "only one level per clear")
	assert.Equal(t, 450*time.Millisecond, r.FallInterval)
}

func TestLevelUpFallIntervalFloor(t *testing.T) {
	s := newPlaying(t)
	s.round.Level = 9
	s.round.LinesCleared = 89
	s.round.FallInterval = 120 * time.Millisecond
	s.board = board.FromRows("IIIIIIIIII")
	require.Equal(t, 1, s.ClearLines())
	assert.Equal(t, 10, s.Round().Level)
	assert.Equal(t, MinFallInterval, s.Round().FallInterval)
}

func TestBombClearsNeighborhood(t *testing.T) {
	for _, mult := range []float64{1, 1.5} {
		s := newPlaying(t)
		s.board = fullBoard()
		s.upgrades.ScoreMultiplier = mult
		s.explode(5, 5)

		for y := range board.Height {
			for x := range board.Width {
				inside := x >= 4 && x <= 6 && y >= 4 && y <= 6
				assert.Equal(t, inside, s.board.At(x, y).Empty(), "cell %d,%d", x, y)
			}
		}
		assert.Equal(t, int(200*mult), s.Round().Score)
	}
}

func TestBombPieceLock(t *testing.T) {
	s := newPlaying(t)
	s.place(Piece{Shape: shape.O, X: 5, Y: 5, Special: true})

	require.True(t, s.Lock())
	assert.Zero(t, s.board.Filled(), "the bomb removes its own cells")
	assert.Equal(t, 200, s.Round().Score)
	assert.Zero(t, s.Round().LinesCleared)
}

func TestBombBeforeLineClear(t *testing.T) {
	s := newPlaying(t)
	s.board = board.FromRows("IIIIIIII..")
	s.place(Piece{Shape: shape.O, X: 8, Y: 18, Special: true})

	// The bomb opens the bottom row around the origin before it can clear.
	require.True(t, s.Lock())
	assert.Equal(t, 200, s.Round().Score)
	assert.Zero(t, s.Round().LinesCleared)
	assert.True(t, s.board.At(8, 19).Empty())
	assert.True(t, s.board.At(7, 19).Empty())
	assert.False(t, s.board.At(6, 19).Empty())
}

func TestBombChance(t *testing.T) {
	s := newPlaying(t)
	require.NoError(t, s.ApplyUpgrade(UpgradeBomb, true))
	bombs := 0
	const spawns = 5000
	for range spawns {
		s.spawn()
		if s.piece.Special {
			bombs++
		}
	}
	assert.InDelta(t, BombChance, float64(bombs)/spawns, 0.02)
}

func TestNoBombsWithoutUpgrade(t *testing.T) {
	s := newPlaying(t)
	for range 500 {
		s.spawn()
		require.False(t, s.piece.Special)
	}
}

func TestHold(t *testing.T) {
	s := newPlaying(t)
	first, _ := s.Piece()
	assert.False(t, s.Hold(), "hold needs the upgrade")

	require.NoError(t, s.ApplyUpgrade(UpgradeHold, true))
	next := s.NextShape()
	require.True(t, s.Hold())

	h := s.HoldSlot()
	assert.True(t, h.Held)
	assert.Equal(t, first.Shape, h.Shape)
	assert.False(t, h.CanHold)
	p, _ := s.Piece()
	assert.Equal(t, next, p.Shape)

	assert.False(t, s.Hold(), "second hold before a lock is a no-op")
	assert.Equal(t, first.Shape, s.HoldSlot().Shape)

	require.True(t, s.HardDrop())
	assert.True(t, s.HoldSlot().CanHold)
	current, _ := s.Piece()
	require.True(t, s.Move(1, 0))
	require.True(t, s.Move(0, 1))
	require.True(t, s.Rotate())

	require.True(t, s.Hold())
	swapped, _ := s.Piece()
	assert.Equal(t, first.Shape, swapped.Shape)
	assert.Equal(t, SpawnX, swapped.X)
	assert.Equal(t, SpawnY, swapped.Y)
	assert.Equal(t, 0, swapped.Orientation)
	assert.Equal(t, current.Shape, s.HoldSlot().Shape)
	assert.False(t, s.HoldSlot().CanHold)
}

func TestGravityNoCatchUp(t *testing.T) {
	s := newPlaying(t)
	assert.False(t, s.Tick(100*time.Millisecond))
	p, _ := s.Piece()
	assert.Equal(t, 0, p.Y)

	assert.True(t, s.Tick(5*time.Second))
	p, _ = s.Piece()
	assert.Equal(t, 1, p.Y, "one step regardless of elapsed time")

	assert.False(t, s.Tick(InitialFallInterval-time.Millisecond))
	assert.True(t, s.Tick(time.Millisecond))
	p, _ = s.Piece()
	assert.Equal(t, 2, p.Y)
}

func TestGravityLocksBlockedPiece(t *testing.T) {
	s := newPlaying(t)
	s.place(Piece{Shape: shape.O, X: 0, Y: 18})

	require.True(t, s.Tick(InitialFallInterval))
	assert.Equal(t, board.Occupied(shape.O), s.board.At(0, 19))
	assert.Equal(t, 4, s.board.Filled())
	p, ok := s.Piece()
	require.True(t, ok)
	assert.Equal(t, SpawnY, p.Y)
}

func TestGameOverOnSpawnCollision(t *testing.T) {
	s := newPlaying(t)
	for y := range board.Height {
		for x := 3; x < 8; x++ {
			s.board.Set(x, y, board.Occupied(shape.S))
		}
	}
	s.place(Piece{Shape: shape.O, X: 0, Y: 0})

	require.True(t, s.Lock())
	assert.Equal(t, ModeGameOver, s.Mode())
	assert.False(t, s.Move(-1, 0))
	assert.False(t, s.Rotate())
	assert.False(t, s.HardDrop())
	assert.False(t, s.Tick(time.Hour))

	s.Reset()
	assert.Equal(t, ModeMenu, s.Mode())
	assert.Zero(t, s.board.Filled())
	assert.True(t, s.Start())
}

func TestRoundCompletePaysAndOpensShop(t *testing.T) {
	s := newPlaying(t)
	s.round.Score = RoundTargetStep

	assert.False(t, s.Tick(time.Millisecond), "completing a round does not step gravity")
	assert.Equal(t, ModeShop, s.Mode())
	assert.Equal(t, 500+RoundPayout(1), s.Round().Money)
	_, ok := s.Piece()
	assert.False(t, ok)
	assert.False(t, s.Move(1, 0), "commands are rejected in the shop")

	s.board.Set(0, 19, board.Occupied(shape.L))
	require.True(t, s.StartNextRound())
	r := s.Round()
	assert.Equal(t, ModePlaying, s.Mode())
	assert.Equal(t, 2, r.RoundNumber)
	assert.Equal(t, 2000, r.RoundTarget)
	assert.Zero(t, r.Score)
	assert.Zero(t, r.LinesCleared)
	assert.Equal(t, 1, r.Level)
	assert.Equal(t, InitialFallInterval, r.FallInterval)
	assert.Zero(t, s.board.Filled())
	assert.False(t, s.StartNextRound())
}

func TestHardDropAcrossTargetCompletesOnNextTick(t *testing.T) {
	s := newPlaying(t)
	s.round.Score = RoundTargetStep - 1

	require.True(t, s.HardDrop())
	require.Greater(t, s.Round().Score, RoundTargetStep)
	assert.Equal(t, ModePlaying, s.Mode(), "the drop itself does not leave play")

	assert.False(t, s.Tick(time.Millisecond))
	assert.Equal(t, ModeShop, s.Mode())
	assert.Equal(t, 500+RoundPayout(1), s.Round().Money)
	assert.False(t, s.HardDrop(), "no more stacking once the round is won")
}

func TestLevelBoostOnNextRound(t *testing.T) {
	s := newPlaying(t)
	require.NoError(t, s.AddJoker(string(JokerLevelBoost)))
	require.NoError(t, s.AddJoker(string(JokerLevelBoost)))
	s.completeRound()

	require.True(t, s.StartNextRound())
	assert.Equal(t, 3, s.Round().Level)
	assert.Equal(t, 400*time.Millisecond, s.Round().FallInterval)
}

func TestPackFlow(t *testing.T) {
	s := newPlaying(t)
	assert.False(t, s.BeginPack([]shape.ID{shape.I}))
	s.completeRound()

	require.True(t, s.BeginPack([]shape.ID{shape.I, shape.I, shape.Z}))
	assert.Equal(t, ModePackOpening, s.Mode())
	assert.Len(t, s.Pack(), 3)
	assert.False(t, s.StartNextRound())

	require.True(t, s.CollectPack())
	assert.Equal(t, ModeShop, s.Mode())
	assert.Empty(t, s.Pack())
	counts := s.DeckCounts()
	assert.Equal(t, 3, counts[shape.I])
	assert.Equal(t, 2, counts[shape.Z])
	assert.Equal(t, 1, counts[shape.O])
}

func TestSpend(t *testing.T) {
	s := New(WithStartingMoney(100))
	assert.True(t, errors.Is(s.Spend(150), ErrInsufficientFunds))
	assert.Equal(t, 100, s.Round().Money)
	require.NoError(t, s.Spend(100))
	assert.Zero(t, s.Round().Money)
}

func TestApplyUpgrade(t *testing.T) {
	s := New()
	require.NoError(t, s.ApplyUpgrade(UpgradeScoreMultiplier, 0.5))
	require.NoError(t, s.ApplyUpgrade(UpgradeScoreMultiplier, 1))
	require.NoError(t, s.ApplyUpgrade(UpgradeExtraLines, 2))
	require.NoError(t, s.ApplyUpgrade(UpgradeGhost, true))

	u := s.Upgrades()
	assert.InDelta(t, 2.5, u.ScoreMultiplier, 1e-9)
	assert.Equal(t, 2, u.ExtraLineBonus)
	assert.True(t, u.GhostEnabled)
	assert.False(t, u.HoldEnabled)

	assert.ErrorIs(t, s.ApplyUpgrade("laser", true), ErrUnknownUpgrade)
	assert.ErrorIs(t, s.ApplyUpgrade(UpgradeHold, "yes"), ErrInvalidUpgradeValue)
	assert.ErrorIs(t, s.ApplyUpgrade(UpgradeExtraLines, 1.5), ErrInvalidUpgradeValue)
	assert.ErrorIs(t, s.ApplyUpgrade(UpgradeScoreMultiplier, -5), ErrInvalidUpgradeValue)
	assert.ErrorIs(t, s.ApplyUpgrade(UpgradeExtraLines, -3), ErrInvalidUpgradeValue)
	assert.Equal(t, u, s.Upgrades(), "rejected upgrades change nothing")
}

func TestAddJoker(t *testing.T) {
	s := New()
	require.NoError(t, s.AddJoker("Double Points"))
	require.NoError(t, s.AddJoker("Line Bonus"))
	require.NoError(t, s.AddJoker("Double Points"))
	assert.ErrorIs(t, s.AddJoker("Wild Card"), ErrUnknownJoker)

	assert.Equal(t, []Joker{JokerDoublePoints, JokerLineBonus, JokerDoublePoints}, s.ActiveJokers())
	assert.True(t, s.HasJoker(JokerLineBonus))
	assert.False(t, s.HasJoker(JokerLevelBoost))
}

func TestSnapshotGhost(t *testing.T) {
	s := newPlaying(t)
	snap := s.Snapshot()
	require.NotNil(t, snap.Piece)
	assert.Nil(t, snap.Ghost)
	assert.Equal(t, ModePlaying, snap.Mode)

	require.NoError(t, s.ApplyUpgrade(UpgradeGhost, true))
	s.place(Piece{Shape: shape.O, X: 0, Y: 0})
	snap = s.Snapshot()
	require.NotNil(t, snap.Ghost)
	assert.Equal(t, 18, snap.Ghost.Y)
	assert.Equal(t, 0, snap.Piece.Y, "the ghost never moves the piece")

	snap.Board[0][0] = board.Occupied(shape.T)
	assert.True(t, s.board.At(0, 0).Empty(), "snapshots are copies")
}
