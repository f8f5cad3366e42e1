package sim

import (
	"context"
	"image/color"

	"github.com/milk9111/jumpdemo/config"
	"github.com/milk9111/jumpdemo/input"
	"github.com/milk9111/jumpdemo/levels"
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/render"
	"github.com/milk9111/jumpdemo/system"
	"go.uber.org/zap"
)

type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Wireframer is implemented by renderers that can switch to outline drawing.
type Wireframer interface {
	SetWireframe(on bool)
}

// Params wires a Loop to its collaborators.
type Params struct {
	Events      input.EventSource
	Keyboard    input.Keyboard
	Engine      physics.Engine
	Renderer    render.Renderer
	Camera      render.Camera
	Scene       levels.Scene
	Gravity     physics.Vector
	Integration physics.IntegrationParameters
	Controller  *system.CharacterController
	// Tunables, when set, is drained at the start of every frame.
	Tunables <-chan config.Tunables
	// Overlay, when set, draws after the world and before Present.
	Overlay    func(cam render.Camera)
	Background color.Color
	Logger     *zap.Logger
}

// Loop runs the demo one frame at a time. All of its state is owned by the
// goroutine calling Frame.
type Loop struct {
	logger     *zap.Logger
	events     input.EventSource
	keyboard   input.Keyboard
	engine     physics.Engine
	renderer   render.Renderer
	controller *system.CharacterController
	shapes     system.ShapeRenderer
	overlay    func(cam render.Camera)
	tunables   <-chan config.Tunables
	background color.Color

	camera  render.Camera
	input   input.State
	gravity physics.Vector
	params  physics.IntegrationParameters

	player   physics.BodyHandle
	collider physics.ColliderHandle

	state     State
	wireframe bool
	frame     int
	jumps     int
	drawn     int
}

func New(p Params) *Loop {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctrl := p.Controller
	if ctrl == nil {
		ctrl = system.NewCharacterController(p.Gravity)
	}
	bg := p.Background
	if bg == nil {
		bg = render.Background
	}
	return &Loop{
		logger:     logger,
		events:     p.Events,
		keyboard:   p.Keyboard,
		engine:     p.Engine,
		renderer:   p.Renderer,
		controller: ctrl,
		overlay:    p.Overlay,
		tunables:   p.Tunables,
		background: bg,
		camera:     p.Camera,
		gravity:    p.Gravity,
		params:     p.Integration,
		player:     p.Scene.Player,
		collider:   p.Scene.PlayerCollider,
	}
}

// Frame runs one iteration: events, physics step, spatial index refresh,
// input and control, drawing, then persisting the jump bit. It returns false
// once the loop has terminated; a terminating event stops the frame before
// the physics step.
func (l *Loop) Frame() bool {
	if l.state == Terminated {
		return false
	}
	if !l.handleEvents() {
		return false
	}
	l.drainTunables()

	l.engine.Step(l.gravity, l.params)
	l.engine.UpdateSpatialIndex()

	snap := l.input.Sample(l.keyboard)
	if l.controller.Update(l.engine, l.player, l.collider, snap) {
		l.jumps++
		l.logger.Debug("jump", zap.Int("frame", l.frame))
	}

	l.renderer.Clear(l.background)
	l.drawn = l.shapes.DrawWorld(l.renderer, l.camera, l.engine)
	if l.overlay != nil {
		l.overlay(l.camera)
	}
	l.renderer.Present()

	l.input.Persist(snap)
	l.frame++
	return true
}

// Run calls Frame until the loop terminates or ctx is done, pacing frames
// with pacer when it is not nil.
func (l *Loop) Run(ctx context.Context, pacer *Pacer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.Frame() {
			return nil
		}
		if pacer == nil {
			continue
		}
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
	}
}

func (l *Loop) handleEvents() bool {
	if l.events == nil {
		return true
	}
	for _, ev := range l.events.Poll() {
		switch ev.Kind {
		case input.EventQuit:
			l.terminate("quit")
			return false
		case input.EventKeyDown:
			switch ev.Key {
			case input.KeyEscape:
				l.terminate("escape")
				return false
			case input.KeyDebug:
				l.toggleWireframe()
			}
		case input.EventResize:
			l.camera.Resize(ev.Width, ev.Height)
			l.renderer.SetViewport(0, 0, ev.Width, ev.Height)
			l.logger.Debug("resize", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
		}
	}
	return true
}

func (l *Loop) drainTunables() {
	for {
		select {
		case t, ok := <-l.tunables:
			if !ok {
				l.tunables = nil
				return
			}
			l.apply(t)
		default:
			return
		}
	}
}

func (l *Loop) apply(t config.Tunables) {
	l.gravity = t.Gravity.Vector()
	l.controller.MoveForce = t.Player.MoveForce
	l.controller.JumpImpulse = t.Player.JumpImpulse
	l.controller.GroundProbe = t.Player.GroundProbe
	l.controller.Down = system.DownFrom(l.gravity)
	l.camera.View = render.ViewMatrix(t.Camera.Scale, physics.Vector{X: t.Camera.X, Y: t.Camera.Y})
	l.logger.Info("tunables applied",
		zap.Float64("move_force", t.Player.MoveForce),
		zap.Float64("jump_impulse", t.Player.JumpImpulse),
		zap.Float64("ground_probe", t.Player.GroundProbe),
		zap.Float64("gravity_x", l.gravity.X),
		zap.Float64("gravity_y", l.gravity.Y),
	)
}

func (l *Loop) toggleWireframe() {
	l.wireframe = !l.wireframe
	if w, ok := l.renderer.(Wireframer); ok {
		w.SetWireframe(l.wireframe)
	}
}

func (l *Loop) terminate(reason string) {
	l.state = Terminated
	l.logger.Info("loop terminated", zap.String("reason", reason), zap.Int("frames", l.frame))
}

func (l *Loop) State() State { return l.state }

func (l *Loop) Camera() render.Camera { return l.camera }

func (l *Loop) Gravity() physics.Vector { return l.gravity }

func (l *Loop) Wireframe() bool { return l.wireframe }

// Stats reports counters for the debug HUD.
func (l *Loop) Stats() render.Stats {
	return render.Stats{
		Frame:     l.frame,
		Jumps:     l.jumps,
		Drawn:     l.drawn,
		Wireframe: l.wireframe,
	}
}
