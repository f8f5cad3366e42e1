package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumpdemo/input"
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rayCall struct {
	ray      physics.Ray
	max      float64
	solid    bool
	selfSeen bool
}

// fakeWorld answers ray casts against a flat floor at floorY and records
// every force and impulse.
type fakeWorld struct {
	floorY   float64
	self     physics.ColliderHandle
	floor    physics.ColliderHandle
	bodies   []physics.BodyView
	shapes   map[physics.ColliderHandle]physics.Shape
	forces   []physics.Vector
	impulses []physics.Vector
	rays     []rayCall
}

func newFakeWorld(playerY float64) *fakeWorld {
	return &fakeWorld{
		floorY: 10,
		self:   1,
		floor:  2,
		bodies: []physics.BodyView{
			{Handle: 1, Kind: physics.Dynamic, Pose: physics.Pose{Position: physics.Vector{Y: playerY}}, Colliders: []physics.ColliderHandle{1}},
		},
		shapes: map[physics.ColliderHandle]physics.Shape{1: physics.Ball(0.5)},
	}
}

func (f *fakeWorld) Bodies() []physics.BodyHandle {
	out := make([]physics.BodyHandle, 0, len(f.bodies))
	for _, b := range f.bodies {
		out = append(out, b.Handle)
	}
	return out
}

func (f *fakeWorld) Body(h physics.BodyHandle) (physics.BodyView, bool) {
	for _, b := range f.bodies {
		if b.Handle == h {
			return b, true
		}
	}
	return physics.BodyView{}, false
}

func (f *fakeWorld) Collider(h physics.ColliderHandle) (physics.ColliderView, bool) {
	s, ok := f.shapes[h]
	if !ok {
		return physics.ColliderView{}, false
	}
	return physics.ColliderView{Handle: h, Shape: s}, true
}

func (f *fakeWorld) ApplyForce(_ physics.BodyHandle, force physics.Vector, _ bool) {
	f.forces = append(f.forces, force)
}

func (f *fakeWorld) ApplyImpulse(_ physics.BodyHandle, impulse physics.Vector, _ bool) {
	f.impulses = append(f.impulses, impulse)
}

func (f *fakeWorld) CastRay(ray physics.Ray, maxDistance float64, solid bool, filter physics.ColliderFilter) (physics.RayHit, bool) {
	call := rayCall{ray: ray, max: maxDistance, solid: solid}
	call.selfSeen = filter == nil || filter(f.self)
	f.rays = append(f.rays, call)

	if call.selfSeen {
		return physics.RayHit{Collider: f.self, Point: ray.Origin}, true
	}
	d := f.floorY - ray.Origin.Y
	if ray.Dir.Y <= 0 || d < 0 || d > maxDistance || (filter != nil && !filter(f.floor)) {
		return physics.RayHit{}, false
	}
	return physics.RayHit{Collider: f.floor, Point: physics.Vector{X: ray.Origin.X, Y: f.floorY}, Distance: d}, true
}

func TestGroundingGate(t *testing.T) {
	cases := []struct {
		name     string
		height   float64
		impulses int
	}{
		{"one_unit_above_floor", 1.0, 1},
		{"two_units_above_floor", 2.0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newFakeWorld(10 - c.height)
			ctrl := NewCharacterController(physics.Vector{Y: 9.81})

			jumped := ctrl.Update(w, 1, 1, input.Snapshot{Jump: true})
			assert.Equal(t, c.impulses == 1, jumped)
			require.Len(t, w.impulses, c.impulses)
			if c.impulses == 1 {
				assert.InDelta(t, -DefaultJumpImpulse, w.impulses[0].Y, 1e-9)
				assert.Zero(t, w.impulses[0].X)
			}

			require.Len(t, w.rays, 1)
			ray := w.rays[0]
			assert.Equal(t, physics.Vector{Y: 1}, ray.ray.Dir)
			assert.Equal(t, DefaultGroundProbe, ray.max)
			assert.True(t, ray.solid)
			assert.False(t, ray.selfSeen, "ground probe must exclude the player's collider")
		})
	}
}

func TestJumpOnlyOnRisingEdge(t *testing.T) {
	w := newFakeWorld(9)
	ctrl := NewCharacterController(physics.Vector{Y: 9.81})
	kb := input.NewScriptedKeyboard(
		[]input.Key{input.KeyJump},
		[]input.Key{input.KeyJump},
		[]input.Key{input.KeyJump},
		nil,
		[]input.Key{input.KeyJump},
	)

	var st input.State
	var jumps []int
	for frame := 1; !kb.Done(); frame++ {
		snap := st.Sample(kb)
		if ctrl.Update(w, 1, 1, snap) {
			jumps = append(jumps, frame)
		}
		st.Persist(snap)
		kb.Advance()
	}

	assert.Equal(t, []int{1, 5}, jumps)
	assert.Len(t, w.impulses, 2)
	assert.Len(t, w.rays, 2, "ray cast only on edges")
}

func TestMoveForceEveryFrame(t *testing.T) {
	w := newFakeWorld(9)
	ctrl := NewCharacterController(physics.Vector{Y: 9.81})

	for _, axis := range []int{1, 0, -1, -1} {
		ctrl.Update(w, 1, 1, input.Snapshot{Axis: axis})
	}

	require.Len(t, w.forces, 4)
	assert.Equal(t, []float64{500, 0, -500, -500}, []float64{w.forces[0].X, w.forces[1].X, w.forces[2].X, w.forces[3].X})
	for _, f := range w.forces {
		assert.Zero(t, f.Y)
	}
	assert.Empty(t, w.impulses)
	assert.Empty(t, w.rays)
}

func TestDownFrom(t *testing.T) {
	assert.Equal(t, physics.Vector{Y: 1}, DownFrom(physics.Vector{}))
	assert.Equal(t, physics.Vector{Y: 1}, DownFrom(physics.Vector{Y: 9.81}))
	assert.Equal(t, physics.Vector{Y: -1}, DownFrom(physics.Vector{Y: -9.81}))

	// Inverted gravity flips both the probe and the impulse.
	w := newFakeWorld(9)
	ctrl := NewCharacterController(physics.Vector{Y: -9.81})
	ctrl.Update(w, 1, 1, input.Snapshot{Jump: true})
	require.Len(t, w.rays, 1)
	assert.Equal(t, physics.Vector{Y: -1}, w.rays[0].ray.Dir)
	assert.Empty(t, w.impulses)

	zero := &CharacterController{JumpImpulse: 10, GroundProbe: 1.5}
	zero.Update(w, 1, 1, input.Snapshot{Jump: true})
	require.Len(t, w.impulses, 1)
	assert.Equal(t, physics.Vector{Y: -10}, w.impulses[0])
}

func TestGroundingGateOnSpace(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		jump   bool
	}{
		{"within_probe", 1.0, true},
		{"beyond_probe", 2.0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := physics.NewSpace(nil)
			floor := s.InsertStaticBody(physics.Pose{Position: physics.Vector{Y: 10.5}})
			_, err := s.AttachCollider(floor, physics.Cuboid(20, 0.5), 0)
			require.NoError(t, err)
			player := s.InsertDynamicBody(physics.Pose{Position: physics.Vector{Y: 10 - c.height}})
			pc, err := s.AttachCollider(player, physics.Ball(0.5), 0, physics.WithDensity(20))
			require.NoError(t, err)

			ctrl := NewCharacterController(physics.Vector{Y: 9.81})
			assert.Equal(t, c.jump, ctrl.Update(s, player, pc, input.Snapshot{Jump: true}))

			view, ok := s.Body(player)
			require.True(t, ok)
			if c.jump {
				assert.Less(t, view.Velocity.Y, 0.0)
			} else {
				assert.Zero(t, view.Velocity.Y)
			}
		})
	}
}

func TestShapeDispatch(t *testing.T) {
	w := &fakeWorld{
		bodies: []physics.BodyView{
			{Handle: 1, Pose: physics.Pose{Position: physics.Vector{X: 1, Y: 2}}, Colliders: []physics.ColliderHandle{1}},
			{Handle: 2, Pose: physics.Pose{Position: physics.Vector{X: 5, Y: 5}, Angle: 0.25}, Colliders: []physics.ColliderHandle{2}},
			{Handle: 3, Pose: physics.Pose{Position: physics.Vector{X: 9}}},
		},
		shapes: map[physics.ColliderHandle]physics.Shape{
			1: physics.Ball(0.5),
			2: physics.Cuboid(2, 1),
		},
	}
	cam := render.NewCamera(800, 600, 40, cp.Vector{})
	var rec render.Recorder

	n := ShapeRenderer{}.DrawWorld(&rec, cam, w)

	assert.Equal(t, 2, n)
	require.Equal(t, []render.CallKind{render.CallCircle, render.CallRect}, rec.Kinds())

	circle := rec.Calls[0]
	assert.Equal(t, physics.Vector{X: 1, Y: 2}, circle.Center)
	assert.Equal(t, 0.5, circle.Radius)
	assert.Equal(t, cam.Projection, circle.Projection)
	assert.Equal(t, cam.View, circle.View)

	rect := rec.Calls[1]
	assert.Equal(t, physics.Vector{X: 3, Y: 4}, rect.C0)
	assert.Equal(t, physics.Vector{X: 7, Y: 6}, rect.C1)
	assert.Equal(t, 0.25, rect.Angle)
}

func TestShapeDispatchSkipsUndrawable(t *testing.T) {
	w := &fakeWorld{
		bodies: []physics.BodyView{
			{Handle: 1, Colliders: []physics.ColliderHandle{1, 2}},
			{Handle: 2, Colliders: []physics.ColliderHandle{3}},
			{Handle: 3, Colliders: []physics.ColliderHandle{99}},
		},
		shapes: map[physics.ColliderHandle]physics.Shape{
			// only the first collider counts
			1: physics.Segment(physics.Vector{}, physics.Vector{X: 1}, 0),
			2: physics.Ball(1),
			3: {Kind: physics.ShapeKind(42)},
		},
	}
	var rec render.Recorder

	n := ShapeRenderer{}.DrawWorld(&rec, render.NewCamera(10, 10, 1, cp.Vector{}), w)

	assert.Zero(t, n)
	assert.Empty(t, rec.Calls)
}

func TestShapeDispatchUsesCallersCamera(t *testing.T) {
	w := &fakeWorld{
		bodies: []physics.BodyView{{Handle: 1, Colliders: []physics.ColliderHandle{1}}},
		shapes: map[physics.ColliderHandle]physics.Shape{1: physics.Ball(1)},
	}
	var rec render.Recorder
	cam := render.NewCamera(800, 600, 40, cp.Vector{})

	ShapeRenderer{}.DrawWorld(&rec, cam, w)
	cam.Resize(1024, 768)
	ShapeRenderer{}.DrawWorld(&rec, cam, w)

	require.Len(t, rec.Calls, 2)
	assert.NotEqual(t, rec.Calls[0].Projection, rec.Calls[1].Projection)
	assert.Equal(t, cam.Projection, rec.Calls[1].Projection)
}
