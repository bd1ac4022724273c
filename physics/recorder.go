package physics

// Recorder is an in-memory Engine for tests and tools.
// Bodies never move on their own; tests place them with SetPosition and
// script contacts with Touch. Step delivers the scripted contacts.
type Recorder struct {
	bodies  map[Handle]*RecordedBody
	nextID  Handle
	walls   []Segment
	queued  []Contact
	pending []Contact

	Steps   int       // number of Step calls
	Removed []Handle  // every successful removal, in order
	StepDTs []float64 // dt of every Step call
}

// RecordedBody is a body held by a Recorder.
type RecordedBody struct {
	Pos    Vec
	Radius float64
	Params BodyParams
}

// NewRecorder creates an empty recorder with the given walls.
func NewRecorder(walls ...Segment) *Recorder {
	return &Recorder{
		bodies: make(map[Handle]*RecordedBody),
		nextID: 1,
		walls:  walls,
	}
}

// AddCircle implements Engine.
func (r *Recorder) AddCircle(pos Vec, radius float64, params BodyParams) Handle {
	h := r.nextID
	r.nextID++
	r.bodies[h] = &RecordedBody{Pos: pos, Radius: radius, Params: params}
	return h
}

// Remove implements Engine.
func (r *Recorder) Remove(h Handle) bool {
	if _, ok := r.bodies[h]; !ok {
		return false
	}
	delete(r.bodies, h)
	r.Removed = append(r.Removed, h)
	return true
}

// Position implements Engine.
func (r *Recorder) Position(h Handle) (Vec, bool) {
	b, ok := r.bodies[h]
	if !ok {
		return Vec{}, false
	}
	return b.Pos, true
}

// Step implements Engine. Contacts queued with Touch become drainable.
func (r *Recorder) Step(dt float64) {
	r.Steps++
	r.StepDTs = append(r.StepDTs, dt)
	r.pending = append(r.pending, r.queued...)
	r.queued = r.queued[:0]
}

// DrainContacts implements Engine.
func (r *Recorder) DrainContacts(dst []Contact) []Contact {
	dst = append(dst, r.pending...)
	r.pending = r.pending[:0]
	return dst
}

// Walls implements Engine.
func (r *Recorder) Walls() []Segment {
	return r.walls
}

// Touch queues a contact between a and b for the next Step.
func (r *Recorder) Touch(a, b Handle) {
	r.queued = append(r.queued, Contact{A: a, B: b})
}

// SetPosition moves a body. Unknown handles are ignored.
func (r *Recorder) SetPosition(h Handle, pos Vec) {
	if b, ok := r.bodies[h]; ok {
		b.Pos = pos
	}
}

// Body returns the recorded body for h.
func (r *Recorder) Body(h Handle) (*RecordedBody, bool) {
	b, ok := r.bodies[h]
	return b, ok
}

// Len returns the number of live bodies.
func (r *Recorder) Len() int {
	return len(r.bodies)
}
