package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/internal/bot"
	"github.com/plus3/tetrodeck/loop"
)

// SessionResult is what one bot session achieved over the run.
type SessionResult struct {
	ID        string
	Seed      uint64
	Games     int
	Pieces    int64
	Lines     int64
	Rounds    int64
	BestRound int
	BestScore int
	Purchases int
	Frames    int64
	FrameTime Stats
	Systems   []loop.SystemStats
}

// runSession drives one session with the bot until ctx is done or maxFrames
// frames have run. maxFrames <= 0 means no limit. Every frame advances the
// session clock by dt seconds regardless of wall time.
func runSession(ctx context.Context, logger *log.Logger, seed uint64, money int, dt float64, maxFrames int64) SessionResult {
	s := engine.New(engine.WithSeed(seed), engine.WithStartingMoney(money), engine.WithLogger(logger))
	res := SessionResult{ID: s.ID(), Seed: seed}

	rounds := &loop.RoundSystem{
		OnLinesCleared: func(lines int, _ engine.RoundState) {
			res.Lines += int64(lines)
		},
		OnRoundComplete: func(r engine.RoundState) {
			res.Rounds++
			res.BestRound = max(res.BestRound, r.RoundNumber)
		},
		OnGameOver: func(r engine.RoundState) {
			res.Games++
			res.BestRound = max(res.BestRound, r.RoundNumber)
			res.BestScore = max(res.BestScore, r.Score)
		},
	}
	scheduler := loop.NewGameScheduler(s, rounds)

	for maxFrames <= 0 || res.Frames < maxFrames {
		if ctx.Err() != nil {
			break
		}
		scheduler.Do(func(s *engine.Session) {
			switch s.Mode() {
			case engine.ModeMenu:
				s.Start()
			case engine.ModePlaying:
				if plan := bot.Move(s, bot.DefaultWeights); plan != nil {
					res.Pieces++
					for _, in := range plan {
						scheduler.Queue(in)
					}
				}
			case engine.ModeShop:
				res.Purchases += len(bot.Shop(s, bot.DefaultShoppingList))
				s.StartNextRound()
			case engine.ModePackOpening:
				s.CollectPack()
			case engine.ModeGameOver:
				s.Reset()
			}
		})

		start := time.Now()
		scheduler.Once(dt)
		res.FrameTime.Add(time.Since(start))
		res.Frames++
	}

	// An unfinished game still counts toward the bests.
	r := s.Round()
	res.BestRound = max(res.BestRound, r.RoundNumber)
	res.BestScore = max(res.BestScore, r.Score)
	res.FrameTime.Finalize()
	res.Systems = scheduler.GetStats().Systems
	logger.Debug("session finished", "session", res.ID, "frames", res.Frames, "games", res.Games)
	return res
}
