// Package physics defines the rigid-body collaborator the game logic sits on.
//
// Game code only ever sees opaque Handles. Contacts are buffered by the engine
// while it steps and handed out afterwards through DrainContacts, so nothing
// outside the engine can touch its body set mid-step.
package physics

// Handle is an opaque reference to one circular body and its shape.
// The zero Handle is never issued.
type Handle uint64

// Vec is a 2D vector in world units (y grows downward).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Midpoint returns the arithmetic midpoint of a and b.
func Midpoint(a, b Vec) Vec {
	return a.Add(b).Scale(0.5)
}

// Contact reports that two tracked shapes touched during a step.
type Contact struct {
	A, B Handle
}

// BodyParams holds the material of a dynamic circle.
type BodyParams struct {
	Mass       float64
	Elasticity float64
	Friction   float64
}

// Segment is a static wall, for drawing.
type Segment struct {
	A, B      Vec
	Thickness float64
}

// Engine is the subset of a rigid-body simulation the game consumes.
type Engine interface {
	// AddCircle creates a dynamic circular body at pos and returns its handle.
	AddCircle(pos Vec, radius float64, params BodyParams) Handle
	// Remove deletes the body and its shape. Unknown handles are a no-op
	// and report false.
	Remove(h Handle) bool
	// Position returns the current centre of the body.
	Position(h Handle) (Vec, bool)
	// Step advances the simulation by dt seconds, buffering contacts.
	Step(dt float64)
	// DrainContacts appends the contacts buffered since the last drain to dst
	// and clears the buffer.
	DrainContacts(dst []Contact) []Contact
	// Walls returns the static arena geometry.
	Walls() []Segment
}
