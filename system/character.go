package system

import (
	"github.com/milk9111/jumpdemo/input"
	"github.com/milk9111/jumpdemo/physics"
)

const (
	DefaultMoveForce   = 500.0
	DefaultJumpImpulse = 200.0
	DefaultGroundProbe = 1.5
)

// CharacterWorld is the part of the physics engine the controller needs.
type CharacterWorld interface {
	Body(h physics.BodyHandle) (physics.BodyView, bool)
	ApplyForce(body physics.BodyHandle, force physics.Vector, wake bool)
	ApplyImpulse(body physics.BodyHandle, impulse physics.Vector, wake bool)
	CastRay(ray physics.Ray, maxDistance float64, solid bool, filter physics.ColliderFilter) (physics.RayHit, bool)
}

// CharacterController turns an input snapshot into forces on the player body.
// Horizontal movement is a continuous force; jumping is a single impulse on a
// rising edge of the jump button, gated by a downward ground probe.
type CharacterController struct {
	MoveForce   float64
	JumpImpulse float64
	GroundProbe float64
	// Down is the unit ground direction. The zero vector means +Y.
	Down physics.Vector
}

// NewCharacterController returns a controller with the default tunables for a
// world whose gravity points along gravity.
func NewCharacterController(gravity physics.Vector) *CharacterController {
	return &CharacterController{
		MoveForce:   DefaultMoveForce,
		JumpImpulse: DefaultJumpImpulse,
		GroundProbe: DefaultGroundProbe,
		Down:        DownFrom(gravity),
	}
}

// DownFrom returns the unit direction of gravity, or +Y when gravity is zero.
func DownFrom(gravity physics.Vector) physics.Vector {
	l := gravity.Length()
	if l == 0 {
		return physics.Vector{Y: 1}
	}
	return physics.Vector{X: gravity.X / l, Y: gravity.Y / l}
}

// Update applies this frame's movement force and, on a jump edge while the
// player stands on something, the jump impulse. It reports whether a jump
// impulse was applied.
func (c *CharacterController) Update(w CharacterWorld, player physics.BodyHandle, collider physics.ColliderHandle, in input.Snapshot) bool {
	if w == nil {
		return false
	}

	w.ApplyForce(player, physics.Vector{X: c.MoveForce * float64(in.Axis)}, true)

	if !in.JumpEdge() {
		return false
	}
	if !c.Grounded(w, player, collider) {
		return false
	}
	w.ApplyImpulse(player, c.down().Mult(-c.JumpImpulse), true)
	return true
}

// Grounded casts a solid ray of length GroundProbe from the player's position
// toward the ground, ignoring the player's own collider.
func (c *CharacterController) Grounded(w CharacterWorld, player physics.BodyHandle, collider physics.ColliderHandle) bool {
	body, ok := w.Body(player)
	if !ok {
		return false
	}
	ray := physics.Ray{Origin: body.Pose.Position, Dir: c.down()}
	exclude := func(h physics.ColliderHandle) bool { return h != collider }
	_, hit := w.CastRay(ray, c.GroundProbe, true, exclude)
	return hit
}

func (c *CharacterController) down() physics.Vector {
	if c.Down.LengthSq() == 0 {
		return physics.Vector{Y: 1}
	}
	return c.Down
}
