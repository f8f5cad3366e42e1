package render

import (
	"image"
	"image/color"

	"github.com/jakecoffman/cp"
)

// CallKind identifies a recorded draw call.
type CallKind int

const (
	CallClear CallKind = iota + 1
	CallCircle
	CallRect
	CallPresent
	CallViewport
)

func (k CallKind) String() string {
	switch k {
	case CallClear:
		return "clear"
	case CallCircle:
		return "circle"
	case CallRect:
		return "rect"
	case CallPresent:
		return "present"
	case CallViewport:
		return "viewport"
	default:
		return "unknown"
	}
}

// Call is one recorded Renderer invocation.
type Call struct {
	Kind       CallKind
	Projection Mat4
	View       Mat4
	Center     cp.Vector
	Radius     float64
	C0, C1     cp.Vector
	Angle      float64
	Color      color.Color
	Viewport   image.Rectangle
}

// Recorder is a Renderer that draws nothing and counts every call. Unless
// CountOnly is set it also keeps each call in Calls; the headless runner sets
// it so long runs stay at a fixed size.
type Recorder struct {
	Calls     []Call
	Frames    int
	Viewport  image.Rectangle
	CountOnly bool

	counts [CallViewport + 1]int
}

func (r *Recorder) record(c Call) {
	r.counts[c.Kind]++
	if !r.CountOnly {
		r.Calls = append(r.Calls, c)
	}
}

func (r *Recorder) Clear(c color.Color) {
	r.record(Call{Kind: CallClear, Color: c})
}

func (r *Recorder) DrawFilledCircle(projection, view Mat4, center cp.Vector, radius float64) {
	r.record(Call{
		Kind:       CallCircle,
		Projection: projection,
		View:       view,
		Center:     center,
		Radius:     radius,
	})
}

func (r *Recorder) DrawRotatedRect(projection, view Mat4, c0, c1 cp.Vector, angle float64) {
	r.record(Call{
		Kind:       CallRect,
		Projection: projection,
		View:       view,
		C0:         c0,
		C1:         c1,
		Angle:      angle,
	})
}

func (r *Recorder) Present() {
	r.Frames++
	r.record(Call{Kind: CallPresent})
}

func (r *Recorder) SetViewport(x, y, width, height int) {
	r.Viewport = image.Rect(x, y, x+width, y+height)
	r.record(Call{Kind: CallViewport, Viewport: r.Viewport})
}

// Count returns how many calls of kind k were made since the last Reset.
func (r *Recorder) Count(k CallKind) int {
	if k < 0 || int(k) >= len(r.counts) {
		return 0
	}
	return r.counts[k]
}

// Kinds returns the kept call kinds in order.
func (r *Recorder) Kinds() []CallKind {
	out := make([]CallKind, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Kind)
	}
	return out
}

// Reset forgets every recorded call and zeroes the counts.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.counts = [CallViewport + 1]int{}
}

var _ Renderer = (*Recorder)(nil)
