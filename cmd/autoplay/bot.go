package main

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/zoodrop/config"
	"github.com/pthm-cable/zoodrop/game"
	"github.com/pthm-cable/zoodrop/systems"
)

// Policy controls how the bot plays.
type Policy struct {
	DropIntervalSec float64 // time between drops
	MatchBias       float64 // chance of aiming at a piece of the same species
	Jitter          float64 // stddev of the aim error, in world units
}

// Bot drops pieces on a fixed cadence.
type Bot struct {
	policy      Policy
	rng         *rand.Rand
	interval    int32
	left, right float64
	nextDrop    int32
}

// NewBot creates a bot for the arena described by cfg.
func NewBot(policy Policy, seed int64, cfg *config.Config) *Bot {
	interval := int32(math.Round(policy.DropIntervalSec / cfg.Physics.DT))
	if interval < 1 {
		interval = 1
	}
	return &Bot{
		policy:   policy,
		rng:      rand.New(rand.NewSource(seed)),
		interval: interval,
		left:     cfg.Derived.ArenaLeft,
		right:    cfg.Derived.ArenaRight,
	}
}

// Act drops a piece if one is due. Returns whether a drop happened.
func (b *Bot) Act(g *game.Game) bool {
	if g.Phase() != systems.PhasePlaying || g.Tick() < b.nextDrop {
		return false
	}
	b.nextDrop = g.Tick() + b.interval
	return g.Drop(b.aim(g))
}

// aim picks a drop x: over the highest piece matching Next, or anywhere.
func (b *Bot) aim(g *game.Game) float64 {
	if b.rng.Float64() < b.policy.MatchBias {
		next := g.Next()
		best := math.Inf(1)
		target := math.NaN()
		for _, p := range g.Snapshot().Pieces {
			if p.Name == next.Name && p.Pos.Y < best {
				best = p.Pos.Y
				target = p.Pos.X
			}
		}
		if !math.IsNaN(target) {
			return target + b.rng.NormFloat64()*b.policy.Jitter
		}
	}
	return b.left + b.rng.Float64()*(b.right-b.left)
}
