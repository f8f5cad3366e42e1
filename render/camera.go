package render

import "github.com/jakecoffman/cp"

const (
	nearPlane = -1
	farPlane  = 1
)

// Camera holds the projection and view matrices used for every draw call.
// The projection tracks the window size; the view maps world units to pixels
// around a fixed center and is only replaced between frames.
type Camera struct {
	Projection Mat4
	View       Mat4

	width, height int
}

// NewCamera returns a camera for a width x height window that shows center in
// the middle of the screen at scale pixels per world unit.
func NewCamera(width, height int, scale float64, center cp.Vector) Camera {
	c := Camera{View: ViewMatrix(scale, center)}
	c.Resize(width, height)
	return c
}

// ViewMatrix returns the world to eye transform for a camera centered on
// center at scale pixels per world unit.
func ViewMatrix(scale float64, center cp.Vector) Mat4 {
	return Scale(scale, scale).Mul(Translate(-center.X, -center.Y))
}

// Resize rebuilds the projection for a new window size. Non-positive sizes are
// ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	hw, hh := float64(width)/2, float64(height)/2
	c.Projection = Ortho(-hw, hw, hh, -hh, nearPlane, farPlane)
}

// Size returns the window size the projection was built for.
func (c Camera) Size() (int, int) {
	return c.width, c.height
}

// Clip maps a world point to clip space.
func (c Camera) Clip(p cp.Vector) cp.Vector {
	return c.Projection.Mul(c.View).Apply(p)
}
