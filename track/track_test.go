package track

import (
	"testing"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/config"
	"github.com/G36maid/flipside/physics"
)

func testTrackConfig() config.TrackConfig {
	return config.TrackConfig{
		Points: [][2]float64{
			{0, 0}, {1000, 0}, {1000, 500}, {0, 500},
		},
		Friction:   1.2,
		Elasticity: 0,
		SpawnX:     100,
		SpawnY:     50,
	}
}

func TestBuildClosedCourse(t *testing.T) {
	w := physics.NewWorld(900, 20, 1.0)

	c, err := Build(w, testTrackConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if c.SegmentCount() != 4 {
		t.Errorf("segment count = %d, want 4", c.SegmentCount())
	}
	if c.Spawn.X != 100 || c.Spawn.Y != 50 {
		t.Errorf("spawn = %v, want (100, 50)", c.Spawn)
	}

	// The course must be queryable: a downward ray from inside hits the
	// floor with an upward normal.
	hit, ok := w.CastRay(cp.Vector{X: 500, Y: 100}, cp.Vector{X: 0, Y: -1}, 200, cp.SHAPE_FILTER_ALL)
	if !ok {
		t.Fatal("ray toward the floor missed the built course")
	}
	if hit.Normal.Y <= 0 {
		t.Errorf("floor normal = %v, want upward-pointing", hit.Normal)
	}

	// The loop is closed: an upward ray from inside hits the ceiling too.
	hit, ok = w.CastRay(cp.Vector{X: 500, Y: 400}, cp.Vector{X: 0, Y: 1}, 200, cp.SHAPE_FILTER_ALL)
	if !ok {
		t.Fatal("ray toward the ceiling missed; course is not closed")
	}
	if hit.Normal.Y >= 0 {
		t.Errorf("ceiling normal = %v, want downward-pointing", hit.Normal)
	}
}

func TestBuildRejectsDegenerateCourse(t *testing.T) {
	w := physics.NewWorld(900, 20, 1.0)

	cfg := testTrackConfig()
	cfg.Points = [][2]float64{{0, 0}, {100, 0}}

	if _, err := Build(w, cfg); err == nil {
		t.Error("expected error for a 2-point course")
	}
}
