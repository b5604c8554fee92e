// Package game wires the physics world, course, vehicle and telemetry into a
// runnable game with graphical and headless modes.
package game

import (
	"fmt"
	"log/slog"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/config"
	"github.com/G36maid/flipside/physics"
	"github.com/G36maid/flipside/telemetry"
	"github.com/G36maid/flipside/track"
	"github.com/G36maid/flipside/vehicle"
)

// Options configures game construction.
type Options struct {
	OutputDir      string // CSV logs and config snapshot; empty disables output
	Headless       bool
	StepsPerUpdate int
	LogStats       bool // Emit window stats via slog
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	world  *physics.World
	course *track.Course
	car    *vehicle.Assembly

	collector *telemetry.Collector
	output    *telemetry.OutputManager

	camera camera

	tick           int32
	paused         bool
	stepsPerUpdate int
	logStats       bool

	// Debug overlay state
	debugOverlay bool
	showSensors  bool
	showNormal   bool
}

// NewGame builds the world, course and vehicle from the loaded config.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	world := physics.NewWorld(cfg.Physics.Gravity, cfg.Physics.Iterations, cfg.Physics.Damping)

	course, err := track.Build(world, cfg.Track)
	if err != nil {
		return nil, fmt.Errorf("building course: %w", err)
	}

	car := vehicle.NewAssembly(world, course.Spawn, vehicle.ParamsFromConfig(cfg))

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("snapshotting config: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		world:          world,
		course:         course,
		car:            car,
		collector:      telemetry.NewCollector(cfg.Derived.TicksPerWindow, cfg.Physics.DT),
		output:         output,
		stepsPerUpdate: steps,
		logStats:       opts.LogStats,
		showSensors:    true,
		showNormal:     true,
	}

	if !opts.Headless {
		g.camera = newCamera(cfg.Screen.Width, cfg.Screen.Height, course.Spawn)
	}

	return g, nil
}

// step advances the simulation by one fixed physics tick. The controller runs
// before the space integrates so the forces it queues are consumed this tick.
func (g *Game) step(axis float64) {
	g.car.Step(g.world, axis)
	g.world.Step(g.cfg.Physics.DT)
	g.tick++

	g.collector.Record(g.car.Adhered(), g.car.Contact(), g.car.Speed())
	if g.collector.WindowReady() {
		g.flushWindow()
	}
}

// flushWindow emits the completed stats window to the log and CSV output.
func (g *Game) flushWindow() {
	ws := g.collector.Flush(g.tick)

	if g.logStats {
		slog.Info("window stats",
			"tick", ws.WindowEndTick,
			"mean_speed", ws.MeanSpeed,
			"p90_speed", ws.P90Speed,
			"adhered_frac", ws.AdheredFrac,
			"ground_frac", ws.GroundFrac,
			"transitions", ws.Transitions,
		)
	}
	if err := g.output.WriteWindow(ws); err != nil {
		slog.Error("writing telemetry window", "error", err)
	}
}

// Update runs one graphical frame: input sampling plus the configured number
// of fixed physics steps.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}

	axis := readAxis()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(axis)
	}

	g.camera.follow(g.car.Position())
}

// UpdateHeadless runs fixed steps with a scripted full-throttle axis. Used by
// batch runs and the tuning CLI, where there is no input device.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(1.0)
	}
}

// Tick returns the number of physics ticks simulated so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Car exposes the vehicle's read-only state for external inspection.
func (g *Game) Car() *vehicle.Assembly {
	return g.car
}

// Unload flushes telemetry output. Call before exit.
func (g *Game) Unload() {
	if g.collector != nil && g.output != nil {
		// Final partial window so short runs still produce a row.
		if err := g.output.WriteWindow(g.collector.Flush(g.tick)); err != nil {
			slog.Error("writing final telemetry window", "error", err)
		}
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}

// spawnPoint is where the vehicle (re)spawns.
func (g *Game) spawnPoint() cp.Vector {
	return g.course.Spawn
}
