package physics

import (
	"github.com/jakecoffman/cp"
)

// pieceCollisionType tags every dynamic circle. Walls keep the default type,
// so only piece-piece pairs reach the post-solve callback.
const pieceCollisionType cp.CollisionType = 1

// ArenaSpec describes the static walls of the play field: a floor and two
// side walls, open at the top.
type ArenaSpec struct {
	Width, Height float64
	Inset         float64 // distance from screen edge to wall line
	Thickness     float64
	Elasticity    float64
	Friction      float64
	Gravity       Vec
	Iterations    int
}

// Space is an Engine backed by a Chipmunk2D space.
type Space struct {
	space *cp.Space

	shapes  map[Handle]*cp.Shape
	handles map[*cp.Shape]Handle
	nextID  Handle

	walls    []Segment
	contacts []Contact
}

// NewSpace creates a space with gravity and arena walls.
func NewSpace(spec ArenaSpec) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: spec.Gravity.X, Y: spec.Gravity.Y})
	if spec.Iterations > 0 {
		space.Iterations = uint(spec.Iterations)
	}

	s := &Space{
		space:   space,
		shapes:  make(map[Handle]*cp.Shape),
		handles: make(map[*cp.Shape]Handle),
		nextID:  1,
	}

	left, right := spec.Inset, spec.Width-spec.Inset
	top, floor := spec.Inset, spec.Height-spec.Inset
	// Floor, left wall, right wall
	s.walls = []Segment{
		{A: Vec{X: left, Y: floor}, B: Vec{X: right, Y: floor}, Thickness: spec.Thickness},
		{A: Vec{X: left, Y: floor}, B: Vec{X: left, Y: top}, Thickness: spec.Thickness},
		{A: Vec{X: right, Y: floor}, B: Vec{X: right, Y: top}, Thickness: spec.Thickness},
	}
	for _, w := range s.walls {
		seg := cp.NewSegment(space.StaticBody, cp.Vector{X: w.A.X, Y: w.A.Y}, cp.Vector{X: w.B.X, Y: w.B.Y}, w.Thickness)
		seg.SetElasticity(spec.Elasticity)
		seg.SetFriction(spec.Friction)
		space.AddShape(seg)
	}

	handler := space.NewCollisionHandler(pieceCollisionType, pieceCollisionType)
	handler.PostSolveFunc = s.postSolve

	return s
}

// postSolve runs inside Step. It only records; the body set is never touched here.
func (s *Space) postSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	ha, okA := s.handles[a]
	hb, okB := s.handles[b]
	if !okA || !okB {
		return
	}
	s.contacts = append(s.contacts, Contact{A: ha, B: hb})
}

// AddCircle implements Engine.
func (s *Space) AddCircle(pos Vec, radius float64, params BodyParams) Handle {
	moment := cp.MomentForCircle(params.Mass, 0, radius, cp.Vector{})
	body := cp.NewBody(params.Mass, moment)
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	s.space.AddBody(body)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(params.Elasticity)
	shape.SetFriction(params.Friction)
	shape.SetCollisionType(pieceCollisionType)
	s.space.AddShape(shape)

	h := s.nextID
	s.nextID++
	s.shapes[h] = shape
	s.handles[shape] = h
	return h
}

// Remove implements Engine.
func (s *Space) Remove(h Handle) bool {
	shape, ok := s.shapes[h]
	if !ok {
		return false
	}
	body := shape.Body()
	s.space.RemoveShape(shape)
	s.space.RemoveBody(body)
	delete(s.shapes, h)
	delete(s.handles, shape)
	return true
}

// Position implements Engine.
func (s *Space) Position(h Handle) (Vec, bool) {
	shape, ok := s.shapes[h]
	if !ok {
		return Vec{}, false
	}
	p := shape.Body().Position()
	return Vec{X: p.X, Y: p.Y}, true
}

// Step implements Engine.
func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// DrainContacts implements Engine.
func (s *Space) DrainContacts(dst []Contact) []Contact {
	dst = append(dst, s.contacts...)
	s.contacts = s.contacts[:0]
	return dst
}

// Walls implements Engine.
func (s *Space) Walls() []Segment {
	return s.walls
}

// Len returns the number of live dynamic bodies.
func (s *Space) Len() int {
	return len(s.shapes)
}
