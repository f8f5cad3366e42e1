package input

// Key is a logical key the demo reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyJump
	KeyEscape
	// KeyDebug toggles wireframe drawing.
	KeyDebug
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	case KeyEscape:
		return "escape"
	case KeyDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Keyboard answers continuous key-down queries.
type Keyboard interface {
	Pressed(k Key) bool
}

// Snapshot is the input for a single frame.
type Snapshot struct {
	// Axis is -1 for left, 0 for none, +1 for right.
	Axis int
	// Jump is the jump button state read this frame.
	Jump bool
	// JumpPrev is the jump button state persisted at the end of the previous frame.
	JumpPrev bool
}

// JumpEdge reports a not-pressed to pressed transition.
func (s Snapshot) JumpEdge() bool {
	return s.Jump && !s.JumpPrev
}

// State carries the jump button's previous-frame bit between frames.
// The zero value treats a key held before the first frame as a fresh press.
type State struct {
	prevJump bool
}

// Sample reads the keyboard once for the current frame.
func (s *State) Sample(kb Keyboard) Snapshot {
	snap := Snapshot{JumpPrev: s.prevJump}
	if kb == nil {
		return snap
	}
	if kb.Pressed(KeyRight) {
		snap.Axis++
	}
	if kb.Pressed(KeyLeft) {
		snap.Axis--
	}
	snap.Jump = kb.Pressed(KeyJump)
	return snap
}

// Persist records the frame's jump state as next frame's previous state.
// Call it only after the frame has been rendered.
func (s *State) Persist(snap Snapshot) {
	s.prevJump = snap.Jump
}
