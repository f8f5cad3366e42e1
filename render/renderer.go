package render

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// Renderer is the drawing surface the simulation loop talks to. Both draw
// calls take the projection and view explicitly; a Renderer keeps no camera.
type Renderer interface {
	Clear(c color.Color)
	DrawFilledCircle(projection, view Mat4, center cp.Vector, radius float64)
	DrawRotatedRect(projection, view Mat4, c0, c1 cp.Vector, angle float64)
	Present()
	SetViewport(x, y, width, height int)
}

// Palette.
var (
	Background = colornames.Midnightblue
	BallColor  = colornames.Orangered
	BoxColor   = colornames.Lightsteelblue
	LineColor  = colornames.Limegreen
)
