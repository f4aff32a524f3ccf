// cmd/sim4d/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-physics4d/pkg/config"
	"github.com/opd-ai/go-physics4d/pkg/event"
	"github.com/opd-ai/go-physics4d/pkg/host"
	"github.com/opd-ai/go-physics4d/pkg/logging"
	"github.com/opd-ai/go-physics4d/pkg/physics"
	"github.com/opd-ai/go-physics4d/pkg/trace"
	"github.com/opd-ai/go-physics4d/pkg/vecmath"
)

func main() {
	configPath := flag.String("config", "sim4d.yaml", "Path to configuration file (.yaml, .yml or .json)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	steps := flag.Int("steps", -1, "Number of fixed steps to run (overrides configuration)")
	tracePath := flag.String("trace", "", "Write a MessagePack trace of every step to this file")
	standalone := flag.Bool("standalone", false, "Run the lightweight player controller instead of the full world")
	logLevel := flag.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR); overrides "+logging.LevelEnvVar)
	flag.Parse()

	logger := logging.NewLogger()
	if *logLevel != "" {
		logger = logging.NewLoggerWithWriter(os.Stdout, logging.ParseLevel(*logLevel))
	}
	ctx := logging.WithRunID(context.Background(), "")

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	if *steps >= 0 {
		cfg.Simulation.Steps = *steps
	}

	switch {
	case *standalone:
		runStandalone(ctx, logger, cfg)
	case *tracePath != "":
		err = runWithTrace(ctx, logger, cfg, *tracePath)
	default:
		err = run(ctx, logger, cfg, nil)
	}
	if err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
}

// loadConfig reads path, falling back to defaults when it does not exist.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// runWithTrace runs the world simulation recording every step to path. The
// file is closed before returning and a close failure is reported.
func runWithTrace(ctx context.Context, logger *logging.Logger, cfg *config.Config, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return logging.WrapError(err, "create trace file %s", path)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = logging.WrapError(closeErr, "close trace file %s", path)
		}
	}()
	return run(ctx, logger, cfg, trace.NewRecorder(file))
}

// run builds the demo scene and advances it cfg.Simulation.Steps times.
func run(ctx context.Context, logger *logging.Logger, cfg *config.Config, recorder *trace.Recorder) error {
	bus := event.NewEventBus()
	bus.Subscribe(event.PlayerGrounded, func(e event.Event) {
		logger.Debug(ctx, "Player landed", logging.Body(physics.BodyKeyFromID(e.(*event.PlayerEvent).BodyID)))
	})
	bus.Subscribe(event.PlayerAirborne, func(e event.Event) {
		logger.Debug(ctx, "Player left the ground", logging.Body(physics.BodyKeyFromID(e.(*event.PlayerEvent).BodyID)))
	})

	world := physics.NewPhysicsWorld(cfg.PhysicsConfig(),
		physics.WithLogger(logger),
		physics.WithEventBus(bus),
	)
	stepper := host.NewFixedStepper(world, cfg.Simulation.TimeStep, cfg.Simulation.MaxSubSteps)
	system := host.NewPhysicsSystem(stepper, logger)
	ecsWorld := &ecs.World{}
	ecsWorld.AddSystem(system)

	player := buildScene(world, system, cfg)
	logger.Info(ctx, "Simulation starting",
		"bodies", world.BodyCount(),
		"statics", len(world.StaticColliders()),
		"steps", cfg.Simulation.Steps,
		"time_step", cfg.Simulation.TimeStep,
	)

	// Walk the player along +W so it leaves the W-bounded floor.
	walk := physics.Vec4{0, 0, 0, cfg.Player.MoveSpeed}
	for i := 0; i < cfg.Simulation.Steps; i++ {
		world.ApplyPlayerMovement(walk)
		ecsWorld.Update(cfg.Simulation.TimeStep)

		if recorder != nil {
			frame := trace.Capture(world, float32(world.StepCount())*cfg.Simulation.TimeStep)
			if err := recorder.Record(frame); err != nil {
				return logging.WrapError(err, "record trace at step %d", i)
			}
		}
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			return err
		}
		logger.Info(ctx, "Trace written", "frames", recorder.Frames())
	}

	position, _ := world.PlayerPosition()
	logger.Info(ctx, "Simulation finished",
		logging.Step(world.StepCount()),
		logging.Body(player),
		logging.Vec("player_position", position),
		"player_grounded", world.PlayerIsGrounded(),
	)
	return nil
}

// runStandalone steps a lone PlayerPhysics over the plane y=0, walking along
// +W and jumping whenever it lands. It returns the controller and the number
// of jumps taken.
func runStandalone(ctx context.Context, logger *logging.Logger, cfg *config.Config) (*physics.PlayerPhysics, int) {
	player := cfg.PlayerPhysics(physics.Vec4{0, cfg.Player.Radius + 1, 0, 0})
	floor := physics.Floor(0)
	walk := physics.Vec4{0, 0, 0, cfg.Player.MoveSpeed}

	logger.Info(ctx, "Standalone simulation starting",
		"steps", cfg.Simulation.Steps,
		"jump_velocity", player.JumpVelocity,
		"ground_margin", player.GroundMargin,
	)

	jumps := 0
	for i := 0; i < cfg.Simulation.Steps; i++ {
		player.ApplyMovement(walk)
		if player.Jump() {
			jumps++
		}
		player.Step(cfg.Simulation.TimeStep, cfg.Physics.Gravity, floor)
	}

	logger.Info(ctx, "Standalone simulation finished",
		"jumps", jumps,
		logging.Vec("player_position", player.Position),
		"player_grounded", player.IsGrounded(),
	)
	return player, jumps
}

// buildScene adds the demo geometry: a floor box bounded in W, a bouncy
// sphere, two stacked boxes and the player sphere.
func buildScene(world *physics.PhysicsWorld, system *host.PhysicsSystem, cfg *config.Config) physics.BodyKey {
	world.AddStaticCollider(physics.NewStaticCollider(
		physics.NewAABB(physics.Vec4{-20, -1, -20, -5}, physics.Vec4{20, 0, 20, 5}),
		physics.DefaultMaterial,
	))

	link := func(body physics.RigidBody4D) physics.BodyKey {
		key := world.AddBody(body)
		basic := ecs.NewBasic()
		system.Add(&basic, key, &host.TransformComponent{})
		return key
	}

	half := vecmath.Splat(0.5)
	link(physics.NewRigidBody(physics.NewSphere(physics.Vec4{3, 4, 0, 0}, 0.5)).
		WithMaterial(physics.Bouncy))
	link(physics.NewRigidBody(physics.NewAABBFromCenter(physics.Vec4{-3, 0.5, 0, 1}, half)).
		WithMaterial(physics.Metal).WithMass(2))
	link(physics.NewRigidBody(physics.NewAABBFromCenter(physics.Vec4{-3, 2, 0, 1}, half)).
		WithMaterial(physics.Rubber))

	player := link(physics.NewRigidBody(physics.NewSphere(physics.Vec4{0, cfg.Player.Radius, 0, 0}, cfg.Player.Radius)).
		WithFilter(physics.NewFilter(physics.LayerPlayer, physics.LayerAll)))
	world.SetPlayerBody(player)
	return player
}
