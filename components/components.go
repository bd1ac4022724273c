// Package components defines ECS components for live pieces.
package components

import (
	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/species"
)

// Piece tags an entity with its species.
// Position and velocity live in the physics engine and are not duplicated here.
type Piece struct {
	Rank int
	Name species.Name
}

// BodyRef references the physics body owned by the engine.
type BodyRef struct {
	Handle physics.Handle
}

// Origin records how and when a piece entered the arena.
type Origin struct {
	Kind OriginKind
	Tick int32
}

// OriginKind distinguishes dropped pieces from merge products.
type OriginKind uint8

const (
	OriginDropped OriginKind = iota
	OriginMerged
)

// String returns the display name for an OriginKind.
func (k OriginKind) String() string {
	switch k {
	case OriginDropped:
		return "dropped"
	case OriginMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// ParseOriginKind is the inverse of String. Unknown names map to OriginDropped.
func ParseOriginKind(s string) OriginKind {
	if s == "merged" {
		return OriginMerged
	}
	return OriginDropped
}
