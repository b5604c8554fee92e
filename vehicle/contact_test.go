package vehicle

import (
	"math"
	"testing"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/physics"
)

// These tests run the assembled sensor set against a real collision space
// instead of a stub caster, so the full chain is exercised: chassis-frame
// ray directions, the assembly's own collision group, and cp's segment
// queries.

func addSegment(w *physics.World, a, b cp.Vector) {
	w.Space.AddShape(cp.NewSegment(w.Space.StaticBody, a, b, 0))
}

func TestContactOnRealFloor(t *testing.T) {
	w := physics.NewWorld(900, 20, 1.0)
	addSegment(w, cp.Vector{X: -500, Y: 0}, cp.Vector{X: 500, Y: 0})

	// Wheels resting on the floor, moving fast enough to attach.
	p := testParams()
	a := NewAssembly(w, cp.Vector{X: 0, Y: p.WheelRadius}, p)
	setWheelVelocity(a, 400, 0)

	a.Step(w, 0)

	if !a.Contact() {
		t.Fatal("wheels over a real floor must report contact")
	}
	n := a.SurfaceNormal()
	if math.Abs(n.X) > 1e-6 || math.Abs(n.Y-1) > 1e-6 {
		t.Errorf("floor normal = %v, want (0, 1)", n)
	}
	if a.Mode() != ModeGround {
		t.Errorf("mode = %v, want ground", a.Mode())
	}
	if !a.Adhered() {
		t.Error("fast grounded tick on a real floor should attach")
	}
}

func TestNoContactInEmptySpace(t *testing.T) {
	w := physics.NewWorld(900, 20, 1.0)
	a := NewAssembly(w, cp.Vector{X: 0, Y: 100}, testParams())
	setWheelVelocity(a, 400, 0) // above attach speed, but airborne

	// Several full ticks: the vehicle's own shapes are the only ones in the
	// space and must never register as surface contact.
	for i := 0; i < 5; i++ {
		a.Step(w, 0)
		w.Step(testDT)

		if a.Contact() {
			t.Fatalf("tick %d: contact reported in an empty space", i)
		}
		if a.Adhered() {
			t.Fatalf("tick %d: adhesion engaged airborne", i)
		}
		if a.Mode() != ModeAir {
			t.Fatalf("tick %d: mode = %v, want air", i, a.Mode())
		}
		if a.SurfaceNormal() != DefaultNormal {
			t.Fatalf("tick %d: normal = %v, want fallback %v", i, a.SurfaceNormal(), DefaultNormal)
		}
	}

	pos := a.Position()
	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
		t.Fatalf("chassis position degenerated to %v", pos)
	}
}

func TestContactOnRealWall(t *testing.T) {
	w := physics.NewWorld(900, 20, 1.0)
	addSegment(w, cp.Vector{X: 100, Y: -300}, cp.Vector{X: 100, Y: 300})

	p := testParams()
	a := NewAssembly(w, cp.Vector{X: 0, Y: 0}, p)

	// Pose the vehicle riding the wall: wheel line vertical, both wheels
	// touching the surface at x=100, chassis banked a quarter turn so its
	// floor sensors face the wall.
	x := 100 - p.WheelRadius
	a.chassis.SetPosition(cp.Vector{X: x, Y: 0})
	a.chassis.SetAngle(math.Pi / 2)
	a.wheelLeft.SetPosition(cp.Vector{X: x, Y: -p.WheelBase / 2})
	a.wheelRight.SetPosition(cp.Vector{X: x, Y: p.WheelBase / 2})

	a.Step(w, 0)

	if !a.Contact() {
		t.Fatal("wheels against a real wall must report contact")
	}
	n := a.SurfaceNormal()
	if math.Abs(n.X-(-1)) > 1e-6 || math.Abs(n.Y) > 1e-6 {
		t.Errorf("wall normal = %v, want (-1, 0)", n)
	}
	if a.Mode() != ModeGround {
		t.Errorf("mode = %v, want ground on a wall", a.Mode())
	}
}
