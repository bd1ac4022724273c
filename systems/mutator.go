package systems

import (
	"github.com/pthm-cable/zoodrop/components"
	"github.com/pthm-cable/zoodrop/physics"
)

// Mutator applies a merge plan to the registry once the engine has
// finished stepping.
type Mutator struct {
	registry *Registry
}

// NewMutator creates a mutator for the given registry.
func NewMutator(registry *Registry) *Mutator {
	return &Mutator{registry: registry}
}

// Apply removes every staged handle, then spawns every staged addition,
// then resets the plan. Removal of an absent handle is a no-op.
// Returns the handles of the spawned pieces.
func (m *Mutator) Apply(plan *PendingMutations) []physics.Handle {
	defer plan.Reset()

	for _, h := range plan.ToRemove {
		m.registry.Remove(h)
	}

	if len(plan.ToAdd) == 0 {
		return nil
	}
	spawned := make([]physics.Handle, 0, len(plan.ToAdd))
	for _, add := range plan.ToAdd {
		spawned = append(spawned, m.registry.SpawnFrom(add.Pos, add.Species, components.OriginMerged))
	}
	return spawned
}
