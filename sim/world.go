package sim

import (
	"fmt"

	"github.com/milk9111/jumpdemo/config"
	"github.com/milk9111/jumpdemo/levels"
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/system"
	"go.uber.org/zap"
)

// World is a populated physics space ready to be driven by a Loop.
type World struct {
	Space   *physics.Space
	Scene   levels.Scene
	Gravity physics.Vector
}

// NewWorld loads cfg.Level into a fresh space. A level's own gravity wins
// over the configured one.
func NewWorld(cfg config.Config, logger *zap.Logger) (*World, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	spec, err := levels.LoadSpec(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	space := physics.NewSpace(logger.Named("physics"))
	scene, err := levels.Build(space, spec, logger.Named("levels"))
	if err != nil {
		return nil, fmt.Errorf("sim: build level %s: %w", cfg.Level, err)
	}

	gravity := cfg.Physics.Gravity.Vector()
	if scene.Gravity != nil {
		gravity = *scene.Gravity
	}
	return &World{Space: space, Scene: scene, Gravity: gravity}, nil
}

// Params returns loop parameters for w with the engine, scene, gravity,
// integration settings and controller filled in.
func (w *World) Params(cfg config.Config) Params {
	ctrl := system.NewCharacterController(w.Gravity)
	ctrl.MoveForce = cfg.Player.MoveForce
	ctrl.JumpImpulse = cfg.Player.JumpImpulse
	ctrl.GroundProbe = cfg.Player.GroundProbe

	return Params{
		Engine:      w.Space,
		Scene:       w.Scene,
		Gravity:     w.Gravity,
		Integration: cfg.IntegrationParameters(),
		Controller:  ctrl,
	}
}
