// Package telemetry accumulates per-tick controller observations into
// windowed statistics and writes them out as CSV experiment logs.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats is one row of the telemetry log, covering one stats window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end_tick"`
	TimeSec       float64 `csv:"time_sec"`
	MeanSpeed     float64 `csv:"mean_speed"`
	P50Speed      float64 `csv:"p50_speed"`
	P90Speed      float64 `csv:"p90_speed"`
	MaxSpeed      float64 `csv:"max_speed"`
	AdheredFrac   float64 `csv:"adhered_frac"`
	GroundFrac    float64 `csv:"ground_frac"`
	Transitions   int     `csv:"adhesion_transitions"`
}

// Collector accumulates controller state within a window of fixed tick count.
type Collector struct {
	windowTicks int
	dt          float64

	speeds       []float64
	ticks        int
	adheredTicks int
	groundTicks  int
	transitions  int
	prevAdhered  bool
	havePrev     bool
}

// NewCollector creates a collector producing one WindowStats every
// windowTicks ticks; dt converts ticks to simulation seconds.
func NewCollector(windowTicks int, dt float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		dt:          dt,
		speeds:      make([]float64, 0, windowTicks),
	}
}

// Record logs one tick of controller state.
func (c *Collector) Record(adhered, grounded bool, speed float64) {
	c.ticks++
	c.speeds = append(c.speeds, speed)
	if adhered {
		c.adheredTicks++
	}
	if grounded {
		c.groundTicks++
	}
	if c.havePrev && adhered != c.prevAdhered {
		c.transitions++
	}
	c.prevAdhered = adhered
	c.havePrev = true
}

// WindowReady reports whether a full window has been accumulated.
func (c *Collector) WindowReady() bool {
	return c.ticks >= c.windowTicks
}

// Flush computes the stats for the accumulated window and resets the
// counters. Transition tracking carries the last adhesion value across
// windows so a flush boundary never counts as a transition.
func (c *Collector) Flush(windowEndTick int32) WindowStats {
	ws := WindowStats{
		WindowEndTick: windowEndTick,
		TimeSec:       float64(windowEndTick) * c.dt,
		Transitions:   c.transitions,
	}

	if c.ticks > 0 {
		sort.Float64s(c.speeds)
		ws.MeanSpeed = stat.Mean(c.speeds, nil)
		ws.P50Speed = stat.Quantile(0.5, stat.Empirical, c.speeds, nil)
		ws.P90Speed = stat.Quantile(0.9, stat.Empirical, c.speeds, nil)
		ws.MaxSpeed = c.speeds[len(c.speeds)-1]
		ws.AdheredFrac = float64(c.adheredTicks) / float64(c.ticks)
		ws.GroundFrac = float64(c.groundTicks) / float64(c.ticks)
	}

	c.speeds = c.speeds[:0]
	c.ticks = 0
	c.adheredTicks = 0
	c.groundTicks = 0
	c.transitions = 0

	return ws
}
