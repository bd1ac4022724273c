package systems

import (
	"log/slog"

	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
)

// Addition is a piece staged to spawn after the step.
type Addition struct {
	Pos     physics.Vec
	Species *species.Species
}

// PendingMutations is the per-step plan built from contacts.
// A handle appears in ToRemove at most once.
type PendingMutations struct {
	ToRemove []physics.Handle
	ToAdd    []Addition
}

// Has reports whether h is already staged for removal.
func (p *PendingMutations) Has(h physics.Handle) bool {
	for _, r := range p.ToRemove {
		if r == h {
			return true
		}
	}
	return false
}

// Empty reports whether nothing is staged.
func (p *PendingMutations) Empty() bool {
	return len(p.ToRemove) == 0 && len(p.ToAdd) == 0
}

// Reset clears the plan, keeping capacity.
func (p *PendingMutations) Reset() {
	p.ToRemove = p.ToRemove[:0]
	p.ToAdd = p.ToAdd[:0]
}

// MergeEvent reports one merge staged during a step.
type MergeEvent struct {
	Species  *species.Species // the evolved species
	Pos      physics.Vec
	Consumed [2]physics.Handle
}

// CollisionResolver turns raw contacts into a merge plan.
type CollisionResolver struct {
	registry *Registry
	catalog  *species.Catalog
}

// NewCollisionResolver creates a resolver over the given registry.
func NewCollisionResolver(registry *Registry, catalog *species.Catalog) *CollisionResolver {
	return &CollisionResolver{registry: registry, catalog: catalog}
}

// Resolve stages merges for contacts in order and returns the merge events.
// Nothing is mutated here; the plan is applied by Mutator after the step.
func (c *CollisionResolver) Resolve(contacts []physics.Contact, plan *PendingMutations) []MergeEvent {
	var events []MergeEvent
	for _, ct := range contacts {
		a, okA := c.registry.SpeciesOf(ct.A)
		b, okB := c.registry.SpeciesOf(ct.B)
		if !okA || !okB {
			continue
		}
		if a.Name != b.Name {
			continue
		}
		if ct.A == ct.B || plan.Has(ct.A) || plan.Has(ct.B) {
			continue
		}
		if a.Terminal() {
			continue
		}

		evolved, ok := c.catalog.Lookup(a.EvolvesTo)
		if !ok {
			slog.Error("merge_target_missing",
				"species", a.Name,
				"evolves_to", a.EvolvesTo,
			)
			continue
		}

		posA, okA := c.registry.Position(ct.A)
		posB, okB := c.registry.Position(ct.B)
		if !okA || !okB {
			continue
		}
		mid := physics.Midpoint(posA, posB)

		plan.ToRemove = append(plan.ToRemove, ct.A, ct.B)
		plan.ToAdd = append(plan.ToAdd, Addition{Pos: mid, Species: evolved})
		events = append(events, MergeEvent{
			Species:  evolved,
			Pos:      mid,
			Consumed: [2]physics.Handle{ct.A, ct.B},
		})
	}
	return events
}
