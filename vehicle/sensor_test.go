package vehicle

import (
	"math"
	"testing"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/physics"
)

// stubCaster answers ray casts with a fixed function, no collision space.
type stubCaster struct {
	fn func(origin, dir cp.Vector, length float64) (physics.RayHit, bool)
}

func (s stubCaster) CastRay(origin, dir cp.Vector, length float64, _ cp.ShapeFilter) (physics.RayHit, bool) {
	return s.fn(origin, dir, length)
}

// missAll never hits anything.
var missAll = stubCaster{fn: func(cp.Vector, cp.Vector, float64) (physics.RayHit, bool) {
	return physics.RayHit{}, false
}}

// hitDownWith answers downward rays with the given normal and misses the rest.
func hitDownWith(normal cp.Vector) stubCaster {
	return stubCaster{fn: func(_ cp.Vector, dir cp.Vector, _ float64) (physics.RayHit, bool) {
		if dir.Y < 0 {
			return physics.RayHit{Normal: normal}, true
		}
		return physics.RayHit{}, false
	}}
}

func testSensors(n int) []GroundSensor {
	frame := cp.NewBody(1, 1) // angle zero, frame rotation is identity
	sensors := make([]GroundSensor, 0, n)
	dirs := []cp.Vector{{X: 0, Y: -1}, {X: 0, Y: 1}}
	for i := 0; i < n; i++ {
		body := cp.NewBody(1, 1)
		body.SetPosition(cp.Vector{X: float64(i) * 56, Y: 0})
		sensors = append(sensors, GroundSensor{Body: body, Frame: frame, Dir: dirs[i%len(dirs)], Length: 30})
	}
	return sensors
}

func TestSensorDirectionFollowsFrame(t *testing.T) {
	frame := cp.NewBody(1, 1)
	wheel := cp.NewBody(1, 1)
	s := GroundSensor{Body: wheel, Frame: frame, Dir: cp.Vector{X: 0, Y: -1}, Length: 30}

	if d := s.WorldDir(); math.Abs(d.X) > 1e-9 || math.Abs(d.Y-(-1)) > 1e-9 {
		t.Errorf("unrotated world dir = %v, want (0, -1)", d)
	}

	// Banked a quarter turn onto a wall to the right, the same floor sensor
	// must cast along +X toward that wall.
	frame.SetAngle(math.Pi / 2)
	if d := s.WorldDir(); math.Abs(d.X-1) > 1e-9 || math.Abs(d.Y) > 1e-9 {
		t.Errorf("world dir at quarter turn = %v, want (1, 0)", d)
	}
}

func TestAggregateNoHitsFallsBack(t *testing.T) {
	contact, normal := aggregateSensors(testSensors(4), missAll)

	if contact {
		t.Error("no hits should report no contact")
	}
	if normal != DefaultNormal {
		t.Errorf("fallback normal = %v, want exactly %v", normal, DefaultNormal)
	}
}

func TestAggregateSingleHit(t *testing.T) {
	contact, normal := aggregateSensors(testSensors(2), hitDownWith(cp.Vector{X: 0, Y: 1}))

	if !contact {
		t.Fatal("one hit should report contact")
	}
	if math.Abs(normal.X) > 1e-9 || math.Abs(normal.Y-1) > 1e-9 {
		t.Errorf("normal = %v, want (0, 1)", normal)
	}
}

func TestAggregateAveragesOrthogonalNormals(t *testing.T) {
	// Two sensors, one reporting a ceiling normal (0,-1) and one a wall
	// normal (1,0). The mean renormalizes to (0.707, -0.707).
	normals := []cp.Vector{{X: 0, Y: -1}, {X: 1, Y: 0}}
	i := 0
	rc := stubCaster{fn: func(cp.Vector, cp.Vector, float64) (physics.RayHit, bool) {
		n := normals[i%len(normals)]
		i++
		return physics.RayHit{Normal: n}, true
	}}

	sensors := testSensors(2)
	contact, normal := aggregateSensors(sensors, rc)

	if !contact {
		t.Fatal("expected contact")
	}
	inv := 1 / math.Sqrt2
	if math.Abs(normal.X-inv) > 1e-6 || math.Abs(normal.Y-(-inv)) > 1e-6 {
		t.Errorf("normal = %v, want (%v, %v)", normal, inv, -inv)
	}
	if math.Abs(normal.Length()-1) > 1e-9 {
		t.Errorf("aggregated normal is not unit length: %v", normal.Length())
	}
}

func TestAggregateCancellingNormalsFallBack(t *testing.T) {
	// Floor and ceiling hit at once with exactly opposing normals; the sum is
	// the zero vector, which must fall back rather than divide by zero.
	rc := stubCaster{fn: func(_ cp.Vector, dir cp.Vector, _ float64) (physics.RayHit, bool) {
		return physics.RayHit{Normal: dir.Neg()}, true
	}}

	contact, normal := aggregateSensors(testSensors(2), rc)

	if !contact {
		t.Error("cancelling normals are still contact")
	}
	if normal != DefaultNormal {
		t.Errorf("normal = %v, want fallback %v", normal, DefaultNormal)
	}
}
