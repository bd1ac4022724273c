package systems

import "github.com/pthm-cable/zoodrop/telemetry"

// SystemInfo describes a step phase for UI display.
type SystemInfo struct {
	ID          string // perf phase name
	Name        string
	Description string
	Category    string // "physics", "rules" or "internal"
}

// SystemRegistry holds metadata about the step phases so the debug
// overlay and the perf collector use the same names.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with every step phase.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the step phases in pipeline order.
// IDs match the perf collector's phase names.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhasePhysicsStep.String(), Name: "Physics", Description: "Advances the rigid-body space one fixed step", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseContacts.String(), Name: "Contacts", Description: "Turns same-species contacts into a merge plan", Category: "rules"})
	r.Register(SystemInfo{ID: telemetry.PhaseMutations.String(), Name: "Mutations", Description: "Removes merged pieces and spawns their successors", Category: "physics"})
	r.Register(SystemInfo{ID: telemetry.PhaseScoring.String(), Name: "Scoring", Description: "Credits merges to the session score", Category: "rules"})
	r.Register(SystemInfo{ID: telemetry.PhaseGameOver.String(), Name: "Game Over", Description: "Debounces the over-line condition", Category: "rules"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry.String(), Name: "Telemetry", Description: "Flushes stats windows and bookmarks", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in pipeline order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
