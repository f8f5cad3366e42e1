package input

import (
	"fmt"
	"strconv"
	"strings"
)

// ScriptedKeyboard replays a fixed per-frame key sequence. It is used by the
// headless runner and by tests in place of a real keyboard.
type ScriptedKeyboard struct {
	frames [][]Key
	frame  int
	polled bool
}

// NewScriptedKeyboard returns a keyboard that holds frames[i] on frame i.
func NewScriptedKeyboard(frames ...[]Key) *ScriptedKeyboard {
	return &ScriptedKeyboard{frames: frames}
}

// ParseScript builds a ScriptedKeyboard from whitespace separated frame tokens.
// Each token lists the held keys for one frame using L, R and J; "." holds
// nothing. A "*n" suffix repeats the token n times, e.g. "R*30 RJ . J*2".
func ParseScript(script string) (*ScriptedKeyboard, error) {
	var frames [][]Key
	for _, tok := range strings.Fields(script) {
		body, count := tok, 1
		if i := strings.IndexByte(tok, '*'); i >= 0 {
			n, err := strconv.Atoi(tok[i+1:])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("input: bad repeat in %q", tok)
			}
			body, count = tok[:i], n
		}

		var keys []Key
		if body != "." {
			for _, r := range strings.ToUpper(body) {
				switch r {
				case 'L':
					keys = append(keys, KeyLeft)
				case 'R':
					keys = append(keys, KeyRight)
				case 'J':
					keys = append(keys, KeyJump)
				default:
					return nil, fmt.Errorf("input: unknown key %q in %q", r, tok)
				}
			}
		}
		for i := 0; i < count; i++ {
			frames = append(frames, keys)
		}
	}
	return &ScriptedKeyboard{frames: frames}, nil
}

// Limit truncates the script to n frames, padding with empty frames when it
// is shorter.
func (s *ScriptedKeyboard) Limit(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(s.frames) {
		s.frames = s.frames[:n]
		return
	}
	s.frames = append(s.frames, make([][]Key, n-len(s.frames))...)
}

// Pressed reports whether k is held on the current frame.
func (s *ScriptedKeyboard) Pressed(k Key) bool {
	if s == nil || s.frame >= len(s.frames) {
		return false
	}
	for _, held := range s.frames[s.frame] {
		if held == k {
			return true
		}
	}
	return false
}

// Advance moves to the next frame.
func (s *ScriptedKeyboard) Advance() {
	if s != nil && s.frame < len(s.frames) {
		s.frame++
	}
}

// Frame returns the index of the current frame.
func (s *ScriptedKeyboard) Frame() int {
	return s.frame
}

// Len returns the number of scripted frames.
func (s *ScriptedKeyboard) Len() int {
	return len(s.frames)
}

// Done reports whether every scripted frame has been consumed.
func (s *ScriptedKeyboard) Done() bool {
	return s == nil || s.frame >= len(s.frames)
}

// Poll makes a ScriptedKeyboard its own event source: every Poll after the
// first advances one frame, and a quit event is returned once the script is
// exhausted.
func (s *ScriptedKeyboard) Poll() []Event {
	if s == nil {
		return []Event{Quit()}
	}
	if s.polled {
		s.Advance()
	}
	s.polled = true
	if s.Done() {
		return []Event{Quit()}
	}
	return nil
}
