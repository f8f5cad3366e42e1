package physics

import (
	"errors"

	"github.com/jakecoffman/cp"
)

var (
	ErrUnknownBody  = errors.New("physics: unknown body")
	ErrInvalidShape = errors.New("physics: invalid shape")
)

// Vector is the engine's 2D vector type.
type Vector = cp.Vector

// BodyHandle identifies a body inside an Engine. The zero value is never issued.
type BodyHandle int

// ColliderHandle identifies a collider inside an Engine. The zero value is never issued.
type ColliderHandle int

// BodyKind is the kinematic category of a body.
type BodyKind int

const (
	Dynamic BodyKind = iota
	Static
)

func (k BodyKind) String() string {
	if k == Static {
		return "static"
	}
	return "dynamic"
}

// Pose is a body's position and rotation in world space.
type Pose struct {
	Position Vector
	Angle    float64
}

// BodyView is a read-only snapshot of a body.
type BodyView struct {
	Handle    BodyHandle
	Kind      BodyKind
	Pose      Pose
	Velocity  Vector
	Colliders []ColliderHandle
}

// ColliderView is a read-only snapshot of a collider.
type ColliderView struct {
	Handle      ColliderHandle
	Body        BodyHandle
	Shape       Shape
	Restitution float64
}

// IntegrationParameters controls a single Step.
type IntegrationParameters struct {
	// Dt is the fixed time step in seconds.
	Dt float64
	// Iterations is the number of solver iterations. Zero keeps the engine default.
	Iterations int
}

// DefaultIntegrationParameters advances one 60 Hz frame.
func DefaultIntegrationParameters() IntegrationParameters {
	return IntegrationParameters{Dt: 1.0 / 60.0, Iterations: 10}
}

// Ray is a half line starting at Origin. Dir does not need to be normalised.
type Ray struct {
	Origin Vector
	Dir    Vector
}

// RayHit describes the first collider hit by a ray cast.
type RayHit struct {
	Collider ColliderHandle
	Point    Vector
	Normal   Vector
	// Distance is measured along the normalised ray direction.
	Distance float64
}

// ColliderFilter decides whether a collider takes part in a query.
type ColliderFilter func(ColliderHandle) bool

// Engine is the rigid-body service the simulation loop drives.
type Engine interface {
	InsertDynamicBody(pose Pose) BodyHandle
	InsertStaticBody(pose Pose) BodyHandle
	AttachCollider(body BodyHandle, shape Shape, restitution float64, opts ...ColliderOption) (ColliderHandle, error)

	ApplyForce(body BodyHandle, force Vector, wake bool)
	ApplyImpulse(body BodyHandle, impulse Vector, wake bool)

	Step(gravity Vector, params IntegrationParameters)
	UpdateSpatialIndex()
	CastRay(ray Ray, maxDistance float64, solid bool, filter ColliderFilter) (RayHit, bool)

	Bodies() []BodyHandle
	Body(h BodyHandle) (BodyView, bool)
	Collider(h ColliderHandle) (ColliderView, bool)
}

type colliderOptions struct {
	friction float64
	density  float64
}

// ColliderOption tunes material properties of a collider.
type ColliderOption func(*colliderOptions)

// WithFriction sets the collider's friction coefficient.
func WithFriction(f float64) ColliderOption {
	return func(o *colliderOptions) {
		if f >= 0 {
			o.friction = f
		}
	}
}

// WithDensity sets the collider's mass per unit area. Ignored on static bodies.
func WithDensity(d float64) ColliderOption {
	return func(o *colliderOptions) {
		if d > 0 {
			o.density = d
		}
	}
}
