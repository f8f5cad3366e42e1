package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

const (
	defaultFriction = 0.8
	defaultDensity  = 1.0
)

// Space is an Engine backed by a Chipmunk space. It owns every body and
// collider it hands out handles for.
type Space struct {
	space  *cp.Space
	logger *zap.Logger

	bodies    []*bodyInfo
	colliders []*colliderInfo
	byShape   map[*cp.Shape]ColliderHandle

	steps   uint64
	indexed uint64
}

type bodyInfo struct {
	handle    BodyHandle
	kind      BodyKind
	body      *cp.Body
	colliders []ColliderHandle
}

type colliderInfo struct {
	handle      ColliderHandle
	body        BodyHandle
	shape       Shape
	restitution float64
	cpShape     *cp.Shape
}

// NewSpace creates an empty Chipmunk-backed engine.
func NewSpace(logger *zap.Logger) *Space {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 10
	return &Space{
		space:   space,
		logger:  logger,
		byShape: make(map[*cp.Shape]ColliderHandle),
	}
}

// CPSpace returns the underlying Chipmunk space.
func (s *Space) CPSpace() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// InsertDynamicBody adds a body that is integrated every Step. Its mass is
// derived from the colliders attached to it; without colliders it has unit mass.
func (s *Space) InsertDynamicBody(pose Pose) BodyHandle {
	body := cp.NewBody(1, 1)
	return s.insert(body, Dynamic, pose)
}

// InsertStaticBody adds a body that never moves.
func (s *Space) InsertStaticBody(pose Pose) BodyHandle {
	return s.insert(cp.NewStaticBody(), Static, pose)
}

func (s *Space) insert(body *cp.Body, kind BodyKind, pose Pose) BodyHandle {
	body.SetAngle(pose.Angle)
	body.SetPosition(pose.Position)
	s.space.AddBody(body)

	h := BodyHandle(len(s.bodies) + 1)
	body.UserData = h
	s.bodies = append(s.bodies, &bodyInfo{handle: h, kind: kind, body: body})
	s.logger.Debug("body inserted", zap.Int("body", int(h)), zap.Stringer("kind", kind),
		zap.Float64("x", pose.Position.X), zap.Float64("y", pose.Position.Y))
	return h
}

// AttachCollider creates a collider for shape on body.
func (s *Space) AttachCollider(body BodyHandle, shape Shape, restitution float64, opts ...ColliderOption) (ColliderHandle, error) {
	info := s.lookup(body)
	if info == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBody, body)
	}
	if err := shape.Validate(); err != nil {
		return 0, err
	}

	o := colliderOptions{friction: defaultFriction, density: defaultDensity}
	for _, opt := range opts {
		opt(&o)
	}

	cpShape := shape.build(info.body)
	cpShape.SetElasticity(restitution)
	cpShape.SetFriction(o.friction)
	s.space.AddShape(cpShape)
	if info.kind == Dynamic {
		cpShape.SetDensity(o.density)
	}

	h := ColliderHandle(len(s.colliders) + 1)
	cpShape.UserData = h
	s.colliders = append(s.colliders, &colliderInfo{
		handle:      h,
		body:        body,
		shape:       shape,
		restitution: restitution,
		cpShape:     cpShape,
	})
	s.byShape[cpShape] = h
	info.colliders = append(info.colliders, h)

	s.logger.Debug("collider attached", zap.Int("body", int(body)), zap.Int("collider", int(h)),
		zap.Stringer("shape", shape.Kind), zap.Float64("restitution", restitution))
	return h, nil
}

// ApplyForce adds a world-space force through the body's centre of gravity.
// The force is consumed by the next Step.
func (s *Space) ApplyForce(body BodyHandle, force Vector, wake bool) {
	b := s.movable(body, wake)
	if b == nil {
		return
	}
	b.ApplyForceAtWorldPoint(force, b.LocalToWorld(b.CenterOfGravity()))
}

// ApplyImpulse changes the body's velocity immediately.
func (s *Space) ApplyImpulse(body BodyHandle, impulse Vector, wake bool) {
	b := s.movable(body, wake)
	if b == nil {
		return
	}
	b.ApplyImpulseAtWorldPoint(impulse, b.LocalToWorld(b.CenterOfGravity()))
}

func (s *Space) movable(h BodyHandle, wake bool) *cp.Body {
	info := s.lookup(h)
	if info == nil || info.kind != Dynamic {
		return nil
	}
	if !wake && info.body.IsSleeping() {
		return nil
	}
	return info.body
}

// Step advances every dynamic body by params.Dt.
func (s *Space) Step(gravity Vector, params IntegrationParameters) {
	if params.Dt <= 0 {
		return
	}
	if params.Iterations > 0 {
		s.space.Iterations = uint(params.Iterations)
	}
	s.space.SetGravity(gravity)
	s.space.Step(params.Dt)
	s.steps++
}

// UpdateSpatialIndex refreshes the cached world geometry of every dynamic
// collider from its body's current pose, so queries see post-step positions
// even if a body was moved outside Step.
func (s *Space) UpdateSpatialIndex() {
	for _, info := range s.bodies {
		if info.kind != Dynamic {
			continue
		}
		t := cp.NewTransformRigid(info.body.Position(), info.body.Angle())
		for _, ch := range info.colliders {
			if c := s.collider(ch); c != nil {
				c.cpShape.Update(t)
			}
		}
	}
	s.indexed = s.steps
}

// IndexCurrent reports whether UpdateSpatialIndex ran since the last Step.
func (s *Space) IndexCurrent() bool {
	return s.indexed == s.steps
}

// CastRay returns the closest collider accepted by filter along ray within
// maxDistance. With solid set, a ray starting inside a collider hits it at
// distance zero; otherwise the hit is where the ray leaves that collider.
func (s *Space) CastRay(ray Ray, maxDistance float64, solid bool, filter ColliderFilter) (RayHit, bool) {
	if maxDistance <= 0 || ray.Dir.LengthSq() == 0 {
		return RayHit{}, false
	}
	dir := ray.Dir.Normalize()
	start := ray.Origin
	end := start.Add(dir.Mult(maxDistance))

	best := RayHit{Distance: math.Inf(1)}
	found := false
	s.space.SegmentQuery(start, end, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		h, ok := s.byShape[shape]
		if !ok || shape.Sensor() {
			return
		}
		if filter != nil && !filter(h) {
			return
		}
		if !solid && alpha == 0 {
			var exit cp.SegmentQueryInfo
			if !shape.SegmentQuery(end, start, 0, &exit) {
				return
			}
			point, normal, alpha = exit.Point, exit.Normal, 1-exit.Alpha
		}
		d := alpha * maxDistance
		if d < best.Distance {
			best = RayHit{Collider: h, Point: point, Normal: normal, Distance: d}
			found = true
		}
	}, nil)
	if !found {
		return RayHit{}, false
	}
	return best, true
}

// Bodies lists every body handle in insertion order.
func (s *Space) Bodies() []BodyHandle {
	out := make([]BodyHandle, 0, len(s.bodies))
	for _, info := range s.bodies {
		out = append(out, info.handle)
	}
	return out
}

// Body returns a snapshot of the body.
func (s *Space) Body(h BodyHandle) (BodyView, bool) {
	info := s.lookup(h)
	if info == nil {
		return BodyView{}, false
	}
	return BodyView{
		Handle:    h,
		Kind:      info.kind,
		Pose:      Pose{Position: info.body.Position(), Angle: info.body.Angle()},
		Velocity:  info.body.Velocity(),
		Colliders: append([]ColliderHandle(nil), info.colliders...),
	}, true
}

// Collider returns a snapshot of the collider.
func (s *Space) Collider(h ColliderHandle) (ColliderView, bool) {
	c := s.collider(h)
	if c == nil {
		return ColliderView{}, false
	}
	return ColliderView{Handle: h, Body: c.body, Shape: c.shape, Restitution: c.restitution}, true
}

// DebugDraw renders every shape and contact of the space through d.
func (s *Space) DebugDraw(d cp.Drawer) {
	if s == nil || d == nil {
		return
	}
	cp.DrawSpace(s.space, d)
}

func (s *Space) lookup(h BodyHandle) *bodyInfo {
	if s == nil || h <= 0 || int(h) > len(s.bodies) {
		return nil
	}
	return s.bodies[h-1]
}

func (s *Space) collider(h ColliderHandle) *colliderInfo {
	if s == nil || h <= 0 || int(h) > len(s.colliders) {
		return nil
	}
	return s.colliders[h-1]
}

var _ Engine = (*Space)(nil)
