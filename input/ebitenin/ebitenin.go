// Package ebitenin feeds ebiten's keyboard, gamepad and window state into the
// input package. It is kept apart from input so headless builds never link
// ebiten.
package ebitenin

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumpdemo/input"
)

const stickDeadzone = 0.3

var bindings = map[ebiten.Key]input.Key{
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeySpace:      input.KeyJump,
	ebiten.KeyW:          input.KeyJump,
	ebiten.KeyArrowUp:    input.KeyJump,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyZ:          input.KeyDebug,
}

// Bound returns the demo key for an ebiten key.
func Bound(k ebiten.Key) (input.Key, bool) {
	key, ok := bindings[k]
	return key, ok
}

// Keyboard reads key state from ebiten, with the first gamepad's left stick
// and bottom face button mapped onto the same keys.
type Keyboard struct{}

// Pressed reports whether any binding for k is held.
func (Keyboard) Pressed(k input.Key) bool {
	for ek, bound := range bindings {
		if bound == k && ebiten.IsKeyPressed(ek) {
			return true
		}
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return false
	}
	gid := ids[0]
	switch k {
	case input.KeyLeft:
		return ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal) < -stickDeadzone
	case input.KeyRight:
		return ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal) > stickDeadzone
	case input.KeyJump:
		return ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
	}
	return false
}

// Events turns ebiten's per-tick input state into an event stream.
// Layout must be forwarded from the Game so resizes are reported.
type Events struct {
	queue  input.Queue
	keys   []ebiten.Key
	width  int
	height int
}

// NewEvents returns an event source for a window of the given size.
func NewEvents(width, height int) *Events {
	return &Events{width: width, height: height}
}

// Layout records the outside window size, queueing a resize when it changes.
func (e *Events) Layout(width, height int) {
	if width <= 0 || height <= 0 || (width == e.width && height == e.height) {
		return
	}
	e.width, e.height = width, height
	e.queue.Push(input.Resize(width, height))
}

// Size returns the last known window size.
func (e *Events) Size() (int, int) {
	return e.width, e.height
}

// Poll returns events that happened since the previous tick.
func (e *Events) Poll() []input.Event {
	if ebiten.IsWindowBeingClosed() {
		e.queue.Push(input.Quit())
	}

	e.keys = inpututil.AppendJustPressedKeys(e.keys[:0])
	for _, ek := range e.keys {
		if k, ok := bindings[ek]; ok {
			e.queue.Push(input.KeyDown(k))
		}
	}
	e.keys = inpututil.AppendJustReleasedKeys(e.keys[:0])
	for _, ek := range e.keys {
		if k, ok := bindings[ek]; ok {
			e.queue.Push(input.KeyUp(k))
		}
	}
	return e.queue.Poll()
}

var (
	_ input.Keyboard    = Keyboard{}
	_ input.EventSource = (*Events)(nil)
)
