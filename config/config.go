package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/jumpdemo/physics"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Camera  CameraConfig  `yaml:"camera"`
	Frame   FrameConfig   `yaml:"frame"`
	Level   string        `yaml:"level"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PhysicsConfig struct {
	Gravity    Vec2    `yaml:"gravity"`
	TimeStep   float64 `yaml:"time_step"`
	Iterations int     `yaml:"iterations"`
}

type PlayerConfig struct {
	MoveForce   float64 `yaml:"move_force"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	GroundProbe float64 `yaml:"ground_probe"`
}

// CameraConfig places the camera: Scale is pixels per world unit and (X, Y)
// is the world point shown at the center of the window.
type CameraConfig struct {
	Scale float64 `yaml:"scale"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

type FrameConfig struct {
	TargetHz int `yaml:"target_hz"`
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Vector() physics.Vector {
	return physics.Vector{X: v.X, Y: v.Y}
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "jumpdemo"},
		Physics: PhysicsConfig{
			Gravity:    Vec2{Y: 9.81},
			TimeStep:   1.0 / 60.0,
			Iterations: 10,
		},
		Player: PlayerConfig{
			MoveForce:   500,
			JumpImpulse: 200,
			GroundProbe: 1.5,
		},
		Camera: CameraConfig{Scale: 40},
		Frame:  FrameConfig{TargetHz: 60},
		Level:  "default",
	}
}

// Load reads a YAML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Physics.TimeStep <= 0:
		return fmt.Errorf("%w: physics.time_step must be positive", ErrInvalid)
	case c.Physics.Iterations < 0:
		return fmt.Errorf("%w: physics.iterations must not be negative", ErrInvalid)
	case c.Frame.TargetHz <= 0:
		return fmt.Errorf("%w: frame.target_hz must be positive", ErrInvalid)
	case c.Camera.Scale <= 0:
		return fmt.Errorf("%w: camera.scale must be positive", ErrInvalid)
	}
	return c.Tunables().Validate()
}

// IntegrationParameters returns the per-step physics settings.
func (c Config) IntegrationParameters() physics.IntegrationParameters {
	return physics.IntegrationParameters{Dt: c.Physics.TimeStep, Iterations: c.Physics.Iterations}
}

// Tunables are the values that may change while the demo runs.
type Tunables struct {
	Player  PlayerConfig
	Gravity Vec2
	Camera  CameraConfig
}

func (c Config) Tunables() Tunables {
	return Tunables{Player: c.Player, Gravity: c.Physics.Gravity, Camera: c.Camera}
}

func (t Tunables) Validate() error {
	switch {
	case t.Player.MoveForce < 0:
		return fmt.Errorf("%w: player.move_force must not be negative", ErrInvalid)
	case t.Player.JumpImpulse < 0:
		return fmt.Errorf("%w: player.jump_impulse must not be negative", ErrInvalid)
	case t.Player.GroundProbe <= 0:
		return fmt.Errorf("%w: player.ground_probe must be positive", ErrInvalid)
	case t.Camera.Scale <= 0:
		return fmt.Errorf("%w: camera.scale must be positive", ErrInvalid)
	}
	return nil
}
