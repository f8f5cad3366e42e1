package system

import (
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/render"
)

// BodySource lists bodies and their colliders for drawing.
type BodySource interface {
	Bodies() []physics.BodyHandle
	Body(h physics.BodyHandle) (physics.BodyView, bool)
	Collider(h physics.ColliderHandle) (physics.ColliderView, bool)
}

// ShapeRenderer draws each body as the primitive matching its first
// collider's shape.
type ShapeRenderer struct{}

// DrawWorld issues one draw call per drawable body and returns how many it
// issued. Bodies without colliders and shapes with no primitive are skipped.
func (ShapeRenderer) DrawWorld(dst render.Renderer, cam render.Camera, bodies BodySource) int {
	if dst == nil || bodies == nil {
		return 0
	}

	drawn := 0
	for _, h := range bodies.Bodies() {
		body, ok := bodies.Body(h)
		if !ok || len(body.Colliders) == 0 {
			continue
		}
		col, ok := bodies.Collider(body.Colliders[0])
		if !ok {
			continue
		}

		pos := body.Pose.Position
		switch col.Shape.Kind {
		case physics.ShapeBall:
			dst.DrawFilledCircle(cam.Projection, cam.View, pos, col.Shape.Radius)
		case physics.ShapeCuboid:
			he := col.Shape.HalfExtents
			dst.DrawRotatedRect(cam.Projection, cam.View, pos.Sub(he), pos.Add(he), body.Pose.Angle)
		default:
			continue
		}
		drawn++
	}
	return drawn
}
