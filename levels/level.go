package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/jumpdemo/physics"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoPlayer   = errors.New("levels: level has no player")
	ErrBadBody    = errors.New("levels: bad body")
	defaultPlayer = ShapeSpec{Type: "ball", Radius: 0.5}
)

const (
	defaultPlayerDensity = 25.0
	defaultBoundsRadius  = 0.1
)

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Vector() physics.Vector {
	return physics.Vector{X: v.X, Y: v.Y}
}

type Spec struct {
	Name    string      `yaml:"name"`
	Gravity *Vec2       `yaml:"gravity"`
	Bounds  *BoundsSpec `yaml:"bounds"`
	Player  *PlayerSpec `yaml:"player"`
	Bodies  []BodySpec  `yaml:"bodies"`
	Script  string      `yaml:"script"`
}

// BoundsSpec closes the world with four static segments.
type BoundsSpec struct {
	Min    Vec2    `yaml:"min"`
	Max    Vec2    `yaml:"max"`
	Radius float64 `yaml:"radius"`
}

type PlayerSpec struct {
	Position    Vec2      `yaml:"position"`
	Shape       ShapeSpec `yaml:"shape"`
	Density     float64   `yaml:"density"`
	Restitution float64   `yaml:"restitution"`
}

type BodySpec struct {
	Kind        string    `yaml:"kind"`
	Position    Vec2      `yaml:"position"`
	Angle       float64   `yaml:"angle"`
	Shape       ShapeSpec `yaml:"shape"`
	Restitution float64   `yaml:"restitution"`
	Friction    *float64  `yaml:"friction"`
	Density     float64   `yaml:"density"`
}

type ShapeSpec struct {
	Type        string  `yaml:"type"`
	Radius      float64 `yaml:"radius"`
	HalfExtents Vec2    `yaml:"half_extents"`
	A           Vec2    `yaml:"a"`
	B           Vec2    `yaml:"b"`
}

func (s ShapeSpec) Shape() (physics.Shape, error) {
	var shape physics.Shape
	switch strings.ToLower(s.Type) {
	case "ball", "circle":
		shape = physics.Ball(s.Radius)
	case "cuboid", "box":
		shape = physics.Cuboid(s.HalfExtents.X, s.HalfExtents.Y)
	case "segment":
		shape = physics.Segment(s.A.Vector(), s.B.Vector(), s.Radius)
	default:
		return physics.Shape{}, fmt.Errorf("%w: unknown shape type %q", ErrBadBody, s.Type)
	}
	if err := shape.Validate(); err != nil {
		return physics.Shape{}, err
	}
	return shape, nil
}

// Scene is what Build put into the engine.
type Scene struct {
	Name           string
	Player         physics.BodyHandle
	PlayerCollider physics.ColliderHandle
	// Gravity is set when the level overrides the configured gravity.
	Gravity *physics.Vector
	Bodies  int
}

// Parse decodes a level spec.
func Parse(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return spec, nil
}

// LoadSpec loads, parses and expands a named level. A level's script runs
// here and its bodies are appended to the returned Spec.
func LoadSpec(name string) (Spec, error) {
	data, err := Load(name)
	if err != nil {
		return Spec{}, fmt.Errorf("levels: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return Spec{}, fmt.Errorf("levels: load %s: %w", name, err)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanLevelPath(name), ".yaml")
	}
	if spec.Script != "" {
		src, err := LoadScript(spec.Script)
		if err != nil {
			return Spec{}, fmt.Errorf("levels: load script %s: %w", spec.Script, err)
		}
		extra, err := RunScript(src, spec)
		if err != nil {
			return Spec{}, fmt.Errorf("levels: run script %s: %w", spec.Script, err)
		}
		spec.Bodies = append(spec.Bodies, extra...)
	}
	return spec, nil
}

// Build inserts the level into engine: bounds first, then bodies in file
// order, then the player.
func Build(engine physics.Engine, spec Spec, logger *zap.Logger) (Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec.Player == nil {
		return Scene{}, ErrNoPlayer
	}
	scene := Scene{Name: spec.Name}
	if spec.Gravity != nil {
		g := spec.Gravity.Vector()
		scene.Gravity = &g
	}

	if spec.Bounds != nil {
		if err := buildBounds(engine, *spec.Bounds); err != nil {
			return Scene{}, err
		}
		scene.Bodies++
	}

	for i, b := range spec.Bodies {
		if err := buildBody(engine, b); err != nil {
			return Scene{}, fmt.Errorf("levels: body %d: %w", i, err)
		}
		scene.Bodies++
	}

	p := *spec.Player
	if p.Shape.Type == "" {
		p.Shape = defaultPlayer
	}
	if p.Density == 0 {
		p.Density = defaultPlayerDensity
	}
	shape, err := p.Shape.Shape()
	if err != nil {
		return Scene{}, fmt.Errorf("levels: player: %w", err)
	}
	scene.Player = engine.InsertDynamicBody(physics.Pose{Position: p.Position.Vector()})
	scene.PlayerCollider, err = engine.AttachCollider(scene.Player, shape, p.Restitution, physics.WithDensity(p.Density))
	if err != nil {
		return Scene{}, fmt.Errorf("levels: player: %w", err)
	}
	scene.Bodies++

	logger.Info("level built",
		zap.String("level", scene.Name),
		zap.Int("bodies", scene.Bodies),
		zap.Int("player", int(scene.Player)),
	)
	return scene, nil
}

func buildBody(engine physics.Engine, b BodySpec) error {
	shape, err := b.Shape.Shape()
	if err != nil {
		return err
	}
	pose := physics.Pose{Position: b.Position.Vector(), Angle: b.Angle}

	var h physics.BodyHandle
	switch strings.ToLower(b.Kind) {
	case "", "static":
		h = engine.InsertStaticBody(pose)
	case "dynamic":
		h = engine.InsertDynamicBody(pose)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrBadBody, b.Kind)
	}

	opts := []physics.ColliderOption{}
	if b.Friction != nil {
		opts = append(opts, physics.WithFriction(*b.Friction))
	}
	if b.Density > 0 {
		opts = append(opts, physics.WithDensity(b.Density))
	}
	_, err = engine.AttachCollider(h, shape, b.Restitution, opts...)
	return err
}

func buildBounds(engine physics.Engine, b BoundsSpec) error {
	r := b.Radius
	if r <= 0 {
		r = defaultBoundsRadius
	}
	minX, minY, maxX, maxY := b.Min.X, b.Min.Y, b.Max.X, b.Max.Y
	if maxX <= minX || maxY <= minY {
		return fmt.Errorf("%w: empty bounds", ErrBadBody)
	}

	h := engine.InsertStaticBody(physics.Pose{})
	edges := [][2]physics.Vector{
		{{X: minX, Y: minY}, {X: maxX, Y: minY}},
		{{X: maxX, Y: minY}, {X: maxX, Y: maxY}},
		{{X: maxX, Y: maxY}, {X: minX, Y: maxY}},
		{{X: minX, Y: maxY}, {X: minX, Y: minY}},
	}
	for _, e := range edges {
		if _, err := engine.AttachCollider(h, physics.Segment(e[0], e[1], r), 0); err != nil {
			return err
		}
	}
	return nil
}
