package render

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraCentersView(t *testing.T) {
	center := cp.Vector{X: 10, Y: 5}
	cam := NewCamera(800, 600, 40, center)

	assertVec(t, cp.Vector{}, cam.Clip(center))
	// 400 px to the right edge at 40 px per unit.
	assertVec(t, cp.Vector{X: 1}, cam.Clip(center.Add(cp.Vector{X: 10})))
	// y-down world: below the center is the bottom of the screen.
	assertVec(t, cp.Vector{Y: -1}, cam.Clip(center.Add(cp.Vector{Y: 7.5})))
}

func TestCameraResizeOnlyTouchesProjection(t *testing.T) {
	cam := NewCamera(800, 600, 40, cp.Vector{})
	view := cam.View
	before := cam.Projection

	cam.Resize(1600, 600)
	assert.Equal(t, view, cam.View)
	assert.NotEqual(t, before, cam.Projection)
	w, h := cam.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 600, h)
	assertVec(t, cp.Vector{X: 0.5}, cam.Clip(cp.Vector{X: 10}))
}

func TestCameraIgnoresEmptyResize(t *testing.T) {
	cam := NewCamera(800, 600, 40, cp.Vector{})
	before := cam.Projection
	cam.Resize(0, 600)
	cam.Resize(800, -1)
	require.Equal(t, before, cam.Projection)
}

func TestRecorderCounts(t *testing.T) {
	var r Recorder
	cam := NewCamera(100, 100, 1, cp.Vector{})

	r.SetViewport(0, 0, 100, 100)
	r.Clear(Background)
	r.DrawFilledCircle(cam.Projection, cam.View, cp.Vector{X: 1}, 0.5)
	r.DrawRotatedRect(cam.Projection, cam.View, cp.Vector{}, cp.Vector{X: 1, Y: 1}, 0.3)
	r.Present()

	assert.Equal(t, []CallKind{CallViewport, CallClear, CallCircle, CallRect, CallPresent}, r.Kinds())
	assert.Equal(t, 1, r.Count(CallCircle))
	assert.Equal(t, 1, r.Frames)
	assert.Equal(t, 100, r.Viewport.Dx())

	r.Reset()
	assert.Empty(t, r.Calls)
	assert.Zero(t, r.Count(CallCircle))
}

func TestRecorderCountOnlyKeepsNoCalls(t *testing.T) {
	r := Recorder{CountOnly: true}
	cam := NewCamera(100, 100, 1, cp.Vector{})

	const frames = 1000
	for i := 0; i < frames; i++ {
		r.Clear(Background)
		r.DrawFilledCircle(cam.Projection, cam.View, cp.Vector{}, 0.5)
		r.DrawRotatedRect(cam.Projection, cam.View, cp.Vector{}, cp.Vector{X: 1, Y: 1}, 0)
		r.DrawRotatedRect(cam.Projection, cam.View, cp.Vector{}, cp.Vector{X: 2, Y: 1}, 0)
		r.Present()
	}

	assert.Nil(t, r.Calls)
	assert.Equal(t, frames, r.Frames)
	assert.Equal(t, frames, r.Count(CallCircle))
	assert.Equal(t, 2*frames, r.Count(CallRect))
	assert.Equal(t, frames, r.Count(CallPresent))
	assert.Zero(t, r.Count(CallKind(99)))
}

type lineLog struct {
	lines int
}

func (l *lineLog) DrawLine(projection, view Mat4, a, b cp.Vector, clr color.Color) {
	l.lines++
}

func TestPhysicsDrawerOutlinesSpace(t *testing.T) {
	space := cp.NewSpace()
	body := space.AddBody(cp.NewStaticBody())
	space.AddShape(cp.NewBox(body, 2, 2, 0))
	space.AddShape(cp.NewCircle(body, 1, cp.Vector{X: 5}))

	var log lineLog
	cp.DrawSpace(space, NewPhysicsDrawer(&log, NewCamera(100, 100, 10, cp.Vector{})))

	// four box edges, then a circle outline plus its angle marker
	assert.Equal(t, 4+debugCircleSegments+1, log.lines)
}
