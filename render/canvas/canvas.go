// Package canvas is the ebiten backed render.Renderer used by the windowed
// binary.
package canvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpdemo/render"
)

const wireframeStroke = 1.5

var quadIndices = []uint16{0, 1, 2, 0, 3, 2}

// unitQuad is the model-space quad a ball is drawn on. Its corners reach the
// disc shader as the custom vertex attribute.
var unitQuad = [4]cp.Vector{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

// Canvas draws into a back image and Present swaps it with the front image,
// which the game blits in Draw.
type Canvas struct {
	front *ebiten.Image
	back  *ebiten.Image

	viewport  image.Rectangle
	wireframe bool

	disc  *ebiten.Shader
	white *ebiten.Image
	verts []ebiten.Vertex

	BallColor color.Color
	BoxColor  color.Color
}

// New returns a canvas with a width x height viewport.
func New(width, height int) (*Canvas, error) {
	disc, err := ebiten.NewShader([]byte(discShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("canvas: compile disc shader: %w", err)
	}
	c := &Canvas{
		disc:      disc,
		BallColor: render.BallColor,
		BoxColor:  render.BoxColor,
		verts:     make([]ebiten.Vertex, 4),
	}
	c.SetViewport(0, 0, width, height)
	return c, nil
}

// Front returns the most recently presented image.
func (c *Canvas) Front() *ebiten.Image {
	return c.front
}

// Wireframe reports whether shapes are drawn as outlines.
func (c *Canvas) Wireframe() bool {
	return c.wireframe
}

// SetWireframe switches between filled and outline drawing.
func (c *Canvas) SetWireframe(on bool) {
	c.wireframe = on
}

func (c *Canvas) SetViewport(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.viewport = image.Rect(x, y, x+width, y+height)
	w, h := x+width, y+height
	if c.back != nil && c.back.Bounds().Dx() == w && c.back.Bounds().Dy() == h {
		return
	}
	if c.back != nil {
		c.back.Deallocate()
	}
	if c.front != nil {
		c.front.Deallocate()
	}
	c.back = ebiten.NewImage(w, h)
	c.front = ebiten.NewImage(w, h)
}

func (c *Canvas) Clear(clr color.Color) {
	c.back.Fill(clr)
}

// DrawFilledCircle covers the circle's bounding quad and lets the disc shader
// keep exactly the fragments with parametric distance <= 1.
func (c *Canvas) DrawFilledCircle(projection, view render.Mat4, center cp.Vector, radius float64) {
	if radius <= 0 {
		return
	}
	if c.wireframe {
		p := toPixels(c.viewport, render.Clip(projection, view, render.Identity(), center))
		edge := toPixels(c.viewport, render.Clip(projection, view, render.Identity(), center.Add(cp.Vector{X: radius})))
		r := float32(edge.Sub(p).Length())
		vector.StrokeCircle(c.back, float32(p.X), float32(p.Y), r, wireframeStroke, c.BallColor, true)
		return
	}

	model := render.Translate(center.X, center.Y).Mul(render.Scale(radius, radius))
	var pts [4]cp.Vector
	for i, corner := range unitQuad {
		pts[i] = toPixels(c.viewport, render.Clip(projection, view, model, corner))
	}
	discVertices(c.verts, pts, c.BallColor)
	c.back.DrawTrianglesShader(c.verts, quadIndices, c.disc, &ebiten.DrawTrianglesShaderOptions{})
}

func (c *Canvas) DrawRotatedRect(projection, view render.Mat4, c0, c1 cp.Vector, angle float64) {
	mid := c0.Add(c1).Mult(0.5)
	rot := render.RotateAbout(angle, mid)
	corners := [4]cp.Vector{c0, {X: c1.X, Y: c0.Y}, c1, {X: c0.X, Y: c1.Y}}
	var pts [4]cp.Vector
	for i, corner := range corners {
		pts[i] = toPixels(c.viewport, render.Clip(projection, view, render.Identity(), rot.Apply(corner)))
	}
	if c.wireframe {
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			vector.StrokeLine(c.back, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), wireframeStroke, c.BoxColor, true)
		}
		return
	}
	c.fillQuad(pts, c.BoxColor)
}

// DrawLine strokes a world-space segment.
func (c *Canvas) DrawLine(projection, view render.Mat4, a, b cp.Vector, clr color.Color) {
	pa := toPixels(c.viewport, render.Clip(projection, view, render.Identity(), a))
	pb := toPixels(c.viewport, render.Clip(projection, view, render.Identity(), b))
	vector.StrokeLine(c.back, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y), 1, clr, true)
}

func (c *Canvas) Present() {
	c.front, c.back = c.back, c.front
}

// toPixels maps clip space to viewport pixels, y pointing down.
func toPixels(viewport image.Rectangle, clip cp.Vector) cp.Vector {
	vx, vy := float64(viewport.Min.X), float64(viewport.Min.Y)
	vw, vh := float64(viewport.Dx()), float64(viewport.Dy())
	return cp.Vector{
		X: vx + (clip.X+1)/2*vw,
		Y: vy + (1-clip.Y)/2*vh,
	}
}

// discVertices fills dst with the quad pts, carrying the unit-quad corner of
// each vertex in Custom0 and Custom1.
func discVertices(dst []ebiten.Vertex, pts [4]cp.Vector, clr color.Color) {
	r, g, b, a := straight(clr)
	for i := range pts {
		dst[i] = ebiten.Vertex{
			DstX:    float32(pts[i].X),
			DstY:    float32(pts[i].Y),
			ColorR:  r,
			ColorG:  g,
			ColorB:  b,
			ColorA:  a,
			Custom0: float32(unitQuad[i].X),
			Custom1: float32(unitQuad[i].Y),
		}
	}
}

func (c *Canvas) fillQuad(pts [4]cp.Vector, clr color.Color) {
	src := c.whiteImage()
	r, g, b, a := straight(clr)
	for i := range c.verts {
		c.verts[i] = ebiten.Vertex{
			DstX:   float32(pts[i].X),
			DstY:   float32(pts[i].Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterNearest
	c.back.DrawTriangles(c.verts, quadIndices, src, op)
}

func (c *Canvas) whiteImage() *ebiten.Image {
	if c.white == nil {
		c.white = ebiten.NewImage(1, 1)
		c.white.Fill(color.White)
	}
	return c.white
}

// straight returns clr as non-premultiplied components in [0, 1].
func straight(clr color.Color) (r, g, b, a float32) {
	nc := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return float32(nc.R) / 0xff, float32(nc.G) / 0xff, float32(nc.B) / 0xff, float32(nc.A) / 0xff
}

var (
	_ render.Renderer   = (*Canvas)(nil)
	_ render.LineDrawer = (*Canvas)(nil)
)
