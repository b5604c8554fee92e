// Package main searches the adhesion and drive tunables with CMA-ES,
// maximizing distance covered on the configured course in a fixed tick
// budget of headless, full-throttle simulation.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/G36maid/flipside/config"
	"github.com/G36maid/flipside/game"
)

// ParamSpec maps one optimized dimension onto a config tunable.
type ParamSpec struct {
	Name     string
	Min, Max float64
	Default  float64
	Apply    func(cfg *config.Config, v float64)
}

// tunables are the dimensions the optimizer searches. Hysteresis is expressed
// as a fraction of the threshold so every candidate satisfies the
// hysteresis < threshold invariant by construction.
var tunables = []ParamSpec{
	{
		Name: "velocity_threshold", Min: 100, Max: 600, Default: 300,
		Apply: func(cfg *config.Config, v float64) { cfg.Adhesion.VelocityThreshold = v },
	},
	{
		Name: "hysteresis_frac", Min: 0.05, Max: 0.9, Default: 0.17,
		Apply: func(cfg *config.Config, v float64) {
			cfg.Adhesion.Hysteresis = v * cfg.Adhesion.VelocityThreshold
		},
	},
	{
		Name: "force_multiplier", Min: 100, Max: 3000, Default: 900,
		Apply: func(cfg *config.Config, v float64) { cfg.Adhesion.ForceMultiplier = v },
	},
	{
		Name: "wheel_torque", Min: 10000, Max: 200000, Default: 60000,
		Apply: func(cfg *config.Config, v float64) { cfg.Vehicle.WheelTorque = v },
	},
}

// denormalize maps optimizer coordinates from [0, 1] into tunable ranges.
func denormalize(x []float64) []float64 {
	raw := make([]float64, len(x))
	for i, spec := range tunables {
		v := x[i]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		raw[i] = spec.Min + v*(spec.Max-spec.Min)
	}
	return raw
}

// evaluate runs one headless simulation with the given raw tunables and
// returns negated distance covered (the optimizer minimizes).
func evaluate(raw []float64, ticks int) float64 {
	cfg := config.Cfg()
	for i, spec := range tunables {
		spec.Apply(cfg, raw[i])
	}
	if err := cfg.Reapply(); err != nil {
		return math.Inf(1)
	}

	g, err := game.NewGame(game.Options{Headless: true, StepsPerUpdate: 1})
	if err != nil {
		return math.Inf(1)
	}

	distance := 0.0
	prev := g.Car().Position()
	for int(g.Tick()) < ticks {
		g.UpdateHeadless()
		pos := g.Car().Position()
		distance += pos.Sub(prev).Length()
		prev = pos
	}

	return -distance
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 18000, "Simulation ticks per evaluation (18000 = 5 min at 60 Hz)")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Eval log
	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "distance"}
	for _, spec := range tunables {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	eval := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := denormalize(x)
			fitness := evaluate(raw, *ticks)
			eval++

			row := []string{strconv.Itoa(eval), strconv.FormatFloat(-fitness, 'f', 1, 64)}
			for _, v := range raw {
				row = append(row, strconv.FormatFloat(v, 'f', 3, 64))
			}
			logWriter.Write(row)
			logWriter.Flush()

			fmt.Printf("eval %3d  distance %10.1f\n", eval, -fitness)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // evaluations share the global config, keep sequential
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*len(tunables)/2
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Start from the defaults, normalized into [0, 1]
	initX := make([]float64, len(tunables))
	for i, spec := range tunables {
		initX[i] = (spec.Default - spec.Min) / (spec.Max - spec.Min)
	}

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	// Apply the best candidate and snapshot it as a usable config
	best := denormalize(result.X)
	cfg := config.Cfg()
	for i, spec := range tunables {
		spec.Apply(cfg, best[i])
	}
	if err := cfg.Reapply(); err != nil {
		log.Fatalf("best candidate failed validation: %v", err)
	}
	bestPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(bestPath); err != nil {
		log.Fatalf("failed to write best config: %v", err)
	}

	fmt.Printf("best distance %.1f after %d evals, config written to %s\n",
		-result.F, eval, bestPath)
	for i, spec := range tunables {
		fmt.Printf("  %-20s %.3f\n", spec.Name, best[i])
	}
}
