package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/zoodrop/components"
	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
)

// Live is one row of the live-piece snapshot.
type Live struct {
	Handle  physics.Handle
	Species *species.Species
	Pos     physics.Vec
}

// Registry maps engine handles to species. It references bodies, the engine
// owns them. Every live handle maps to a valid species because Spawn is the
// only producer of handles.
type Registry struct {
	world   *ecs.World
	engine  physics.Engine
	catalog *species.Catalog
	body    physics.BodyParams

	mapper   *ecs.Map3[components.Piece, components.BodyRef, components.Origin]
	filter   *ecs.Filter2[components.Piece, components.BodyRef]
	pieceMap *ecs.Map1[components.Piece]
	origMap  *ecs.Map1[components.Origin]

	byHandle map[physics.Handle]ecs.Entity
	tick     int32
}

// NewRegistry creates an empty registry on its own ECS world.
func NewRegistry(engine physics.Engine, catalog *species.Catalog, body physics.BodyParams) *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:    world,
		engine:   engine,
		catalog:  catalog,
		body:     body,
		mapper:   ecs.NewMap3[components.Piece, components.BodyRef, components.Origin](world),
		filter:   ecs.NewFilter2[components.Piece, components.BodyRef](world),
		pieceMap: ecs.NewMap1[components.Piece](world),
		origMap:  ecs.NewMap1[components.Origin](world),
		byHandle: make(map[physics.Handle]ecs.Entity),
	}
}

// SetTick sets the tick stamped on pieces spawned from now on.
func (r *Registry) SetTick(tick int32) {
	r.tick = tick
}

// Spawn creates a dropped piece of species sp at pos.
func (r *Registry) Spawn(pos physics.Vec, sp *species.Species) physics.Handle {
	return r.SpawnFrom(pos, sp, components.OriginDropped)
}

// SpawnFrom creates a piece and records how it entered the arena.
func (r *Registry) SpawnFrom(pos physics.Vec, sp *species.Species, kind components.OriginKind) physics.Handle {
	h := r.engine.AddCircle(pos, sp.Radius, r.body)

	piece := components.Piece{Rank: sp.Rank, Name: sp.Name}
	ref := components.BodyRef{Handle: h}
	origin := components.Origin{Kind: kind, Tick: r.tick}
	r.byHandle[h] = r.mapper.NewEntity(&piece, &ref, &origin)
	return h
}

// Remove deletes the piece and its body. Unknown handles are a no-op.
func (r *Registry) Remove(h physics.Handle) bool {
	e, ok := r.byHandle[h]
	if !ok {
		return false
	}
	r.engine.Remove(h)
	delete(r.byHandle, h)
	if r.world.Alive(e) {
		r.world.RemoveEntity(e)
	}
	return true
}

// SpeciesOf returns the species of a live piece.
// Walls and removed pieces report false.
func (r *Registry) SpeciesOf(h physics.Handle) (*species.Species, bool) {
	e, ok := r.byHandle[h]
	if !ok {
		return nil, false
	}
	return r.catalog.At(r.pieceMap.Get(e).Rank)
}

// OriginOf returns how the piece entered the arena.
func (r *Registry) OriginOf(h physics.Handle) (components.Origin, bool) {
	e, ok := r.byHandle[h]
	if !ok {
		return components.Origin{}, false
	}
	return *r.origMap.Get(e), true
}

// Position returns the current engine position of a live piece.
func (r *Registry) Position(h physics.Handle) (physics.Vec, bool) {
	if _, ok := r.byHandle[h]; !ok {
		return physics.Vec{}, false
	}
	return r.engine.Position(h)
}

// AllLive appends a snapshot of every live piece to dst.
// Order is not significant.
func (r *Registry) AllLive(dst []Live) []Live {
	query := r.filter.Query()
	for query.Next() {
		piece, ref := query.Get()
		sp, ok := r.catalog.At(piece.Rank)
		if !ok {
			continue
		}
		pos, ok := r.engine.Position(ref.Handle)
		if !ok {
			continue
		}
		dst = append(dst, Live{Handle: ref.Handle, Species: sp, Pos: pos})
	}
	return dst
}

// Clear removes every live piece.
func (r *Registry) Clear() int {
	// Collect first; the world must not change while the query is open
	var handles []physics.Handle
	query := r.filter.Query()
	for query.Next() {
		_, ref := query.Get()
		handles = append(handles, ref.Handle)
	}

	for _, h := range handles {
		r.Remove(h)
	}
	return len(handles)
}

// Len returns the number of live pieces.
func (r *Registry) Len() int {
	return len(r.byHandle)
}
