// Package physics wraps the cp space behind the narrow capability surface the
// vehicle controller consumes: ray casts, force and torque accumulation, and a
// fixed-timestep step call. The controller never integrates anything itself.
package physics

import (
	cp "github.com/jakecoffman/cp/v2"
)

// RayHit describes the first surface a ray cast encountered.
type RayHit struct {
	Point  cp.Vector // World-space point of impact
	Normal cp.Vector // Unit surface normal at the impact point
	Alpha  float64   // Normalized distance along the ray in [0, 1]
}

// RayCaster is the query surface ground sensors read through.
// The World implements it against the collision space; tests substitute fakes.
type RayCaster interface {
	CastRay(origin, dir cp.Vector, length float64, filter cp.ShapeFilter) (RayHit, bool)
}

// World owns the cp space and the gravity the space integrates with.
type World struct {
	Space *cp.Space

	gravity cp.Vector
}

// NewWorld creates a physics world with gravity acting along -Y.
func NewWorld(gravityMagnitude float64, iterations int, damping float64) *World {
	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{X: 0, Y: -gravityMagnitude})
	space.SetDamping(damping)

	return &World{
		Space:   space,
		gravity: cp.Vector{X: 0, Y: -gravityMagnitude},
	}
}

// Gravity returns the gravity vector the space applies to every dynamic body.
func (w *World) Gravity() cp.Vector {
	return w.gravity
}

// Step advances the space by one fixed timestep. Forces and torques
// accumulated since the previous step are consumed and cleared here.
func (w *World) Step(dt float64) {
	w.Space.Step(dt)
}

// CastRay casts a ray of the given length from origin along dir (unit vector)
// and reports the first shape hit. A miss is the common case, not an error.
// The filter carries the caller's collision group: rays cast from inside a
// body's own shape would otherwise hit it at alpha zero with a degenerate
// normal, so callers must pass the filter of the shapes they own.
func (w *World) CastRay(origin, dir cp.Vector, length float64, filter cp.ShapeFilter) (RayHit, bool) {
	end := origin.Add(dir.Mult(length))
	info := w.Space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return RayHit{}, false
	}
	return RayHit{Point: info.Point, Normal: info.Normal, Alpha: info.Alpha}, true
}

// ApplyTorque accumulates a pure torque on a body for the current tick.
// cp exposes force accumulation but no torque setter, so the torque is
// realized as an equal and opposite force couple about the center of gravity;
// the net linear force contribution is zero.
func ApplyTorque(body *cp.Body, torque float64) {
	half := torque / 2
	body.ApplyForceAtLocalPoint(cp.Vector{X: 0, Y: half}, cp.Vector{X: 1, Y: 0})
	body.ApplyForceAtLocalPoint(cp.Vector{X: 0, Y: -half}, cp.Vector{X: -1, Y: 0})
}

// ApplyCentralForce accumulates a force through a body's center of gravity
// for the current tick, adding momentum without spin.
func ApplyCentralForce(body *cp.Body, force cp.Vector) {
	body.ApplyForceAtWorldPoint(force, body.Position())
}
