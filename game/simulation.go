package game

import (
	"github.com/pthm-cable/zoodrop/components"
	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// Step runs a single fixed tick:
//  1. advance the physics space
//  2. drain contacts into a merge plan (only while playing)
//  3. apply the plan
//  4. credit merges
//  5. evaluate the game-over line
//  6. flush telemetry windows
//
// After game over the space keeps stepping so the pile settles, but contacts
// are discarded.
func (g *Game) Step() {
	g.perfCollector.StartTick()
	g.registry.SetTick(g.tick)
	playing := g.session.Phase == systems.PhasePlaying

	g.perfCollector.StartPhase(telemetry.PhasePhysicsStep)
	g.engine.Step(g.cfg.Physics.DT)

	g.perfCollector.StartPhase(telemetry.PhaseContacts)
	g.contacts = g.engine.DrainContacts(g.contacts[:0])
	var merges []systems.MergeEvent
	if playing {
		merges = g.resolver.Resolve(g.contacts, &g.plan)
		// Origins must be read before the consumed pieces are removed
		g.chains = g.chainFlags(merges, g.chains[:0])
	}

	g.perfCollector.StartPhase(telemetry.PhaseMutations)
	g.mutator.Apply(&g.plan)

	g.perfCollector.StartPhase(telemetry.PhaseScoring)
	for i, ev := range merges {
		points := g.session.Score.OnMerge(ev.Species)
		g.emit(telemetry.NewMergeEvent(g.tick, ev.Species, points, g.chains[i]))
	}

	g.perfCollector.StartPhase(telemetry.PhaseGameOver)
	if playing {
		g.live = g.registry.AllLive(g.live[:0])
		over, tripped := g.monitor.Evaluate(g.live, g.cfg.Derived.StepDuration, &g.session.OverLineTimer)
		g.collector.RecordOverLine(over, g.session.OverLineTimer)
		if tripped {
			g.enterGameOver()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// chainFlags reports, per merge, whether it consumed a merge product.
func (g *Game) chainFlags(merges []systems.MergeEvent, dst []bool) []bool {
	for _, ev := range merges {
		chain := false
		for _, h := range ev.Consumed {
			if o, ok := g.registry.OriginOf(h); ok && o.Kind == components.OriginMerged {
				chain = true
			}
		}
		dst = append(dst, chain)
	}
	return dst
}
