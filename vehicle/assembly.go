// Package vehicle implements the per-physics-step adhesion and control state
// machine for the dumbbell vehicle: one collision-free chassis pinned to two
// driven wheels, holding to floor, wall and ceiling through velocity-gated
// custom gravity.
package vehicle

import (
	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/physics"
)

// nextGroup hands out one collision group per assembly so a vehicle's own
// parts never collide with each other. Construction is single-threaded.
var nextGroup uint

// Assembly is the owning aggregate for one vehicle. It references bodies the
// space owns, and is stepped exactly once per physics tick.
type Assembly struct {
	chassis    *cp.Body
	wheelLeft  *cp.Body
	wheelRight *cp.Body

	sensors []GroundSensor
	params  Params
	gravity cp.Vector

	state   State
	contact bool // current-tick contact, drives mode selection
	mode    Mode
}

// NewAssembly builds the dumbbell at the given position and registers its
// bodies, shapes and joints with the world. The vehicle spawns free (not
// adhered, air control) until its first grounded, fast-enough tick.
func NewAssembly(w *physics.World, at cp.Vector, p Params) *Assembly {
	space := w.Space
	nextGroup++
	filter := cp.NewShapeFilter(nextGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)

	// The chassis has no collision footprint, so the engine cannot derive a
	// moment from shape; assign the analytic box moment explicitly. Torque
	// application assumes this is non-zero.
	chassis := space.AddBody(cp.NewBody(p.ChassisMass,
		cp.MomentForBox(p.ChassisMass, p.ChassisWidth, p.ChassisHeight)))
	chassis.SetPosition(at)

	makeWheel := func(offset float64) *cp.Body {
		moment := cp.MomentForCircle(p.WheelMass, 0, p.WheelRadius, cp.Vector{})
		wheel := space.AddBody(cp.NewBody(p.WheelMass, moment))
		wheel.SetPosition(at.Add(cp.Vector{X: offset, Y: 0}))

		shape := space.AddShape(cp.NewCircle(wheel, p.WheelRadius, cp.Vector{}))
		shape.SetFriction(p.WheelFriction)
		shape.SetElasticity(0)
		shape.SetFilter(filter)
		return wheel
	}
	wheelLeft := makeWheel(-p.WheelBase / 2)
	wheelRight := makeWheel(p.WheelBase / 2)

	// Positional pins at the wheel centers keep the dumbbell rigid while
	// leaving each wheel free to spin.
	space.AddConstraint(cp.NewPivotJoint(chassis, wheelLeft, wheelLeft.Position()))
	space.AddConstraint(cp.NewPivotJoint(chassis, wheelRight, wheelRight.Position()))

	a := &Assembly{
		chassis:    chassis,
		wheelLeft:  wheelLeft,
		wheelRight: wheelRight,
		params:     p,
		gravity:    w.Gravity(),
		state:      State{Normal: DefaultNormal},
		mode:       ModeAir,
	}

	// Floor- and ceiling-facing ray per wheel, fixed in the chassis frame so
	// they keep facing the ridden surface as the vehicle banks onto walls.
	// The assembly filter keeps the rays from hitting the vehicle itself.
	for _, wheel := range []*cp.Body{wheelLeft, wheelRight} {
		for _, dir := range []cp.Vector{{X: 0, Y: -1}, {X: 0, Y: 1}} {
			a.sensors = append(a.sensors, GroundSensor{
				Body:   wheel,
				Frame:  chassis,
				Dir:    dir,
				Length: p.SensorLength,
				Filter: filter,
			})
		}
	}

	return a
}

// Step runs one controller tick: sensor aggregation, the adhesion state
// machine, mode-dependent actuation, then force application. Forces queued
// here are consumed by the engine's next integration pass, so Step must run
// before the space steps each tick.
func (a *Assembly) Step(rc physics.RayCaster, axis float64) {
	contact, normal := aggregateSensors(a.sensors, rc)
	a.contact = contact
	a.state.Normal = normal
	a.state.Speed = a.wheelSpeed()

	a.state.Adhered = updateAdhesion(a.state.Adhered, a.state.Speed, contact, a.params)

	a.mode = modeForContact(contact)
	a.applyControl(a.mode, axis)
	a.applyAdhesionForces()
}

// Respawn teleports the assembly back to a spawn point at rest and clears the
// controller state, as if freshly spawned.
func (a *Assembly) Respawn(at cp.Vector) {
	a.chassis.SetPosition(at)
	a.wheelLeft.SetPosition(at.Add(cp.Vector{X: -a.params.WheelBase / 2, Y: 0}))
	a.wheelRight.SetPosition(at.Add(cp.Vector{X: a.params.WheelBase / 2, Y: 0}))

	for _, b := range a.bodies() {
		b.SetVelocity(0, 0)
		b.SetAngularVelocity(0)
		b.SetAngle(0)
	}

	a.state = State{Normal: DefaultNormal}
	a.contact = false
	a.mode = ModeAir
}

// wheelSpeed is the magnitude of the arithmetic mean of the two wheel linear
// velocities. The chassis velocity is not used; it diverges from the wheels
// under rotation.
func (a *Assembly) wheelSpeed() float64 {
	return a.wheelLeft.Velocity().Add(a.wheelRight.Velocity()).Mult(0.5).Length()
}

func (a *Assembly) bodies() [3]*cp.Body {
	return [3]*cp.Body{a.chassis, a.wheelLeft, a.wheelRight}
}

// Position is the chassis position, used for camera tracking.
func (a *Assembly) Position() cp.Vector {
	return a.chassis.Position()
}

// Adhered reports whether custom gravity is active this tick.
func (a *Assembly) Adhered() bool {
	return a.state.Adhered
}

// SurfaceNormal is the aggregated surface normal, unit length.
func (a *Assembly) SurfaceNormal() cp.Vector {
	return a.state.Normal
}

// Speed is the mean wheel speed in units/s.
func (a *Assembly) Speed() float64 {
	return a.state.Speed
}

// Contact reports whether any ground sensor hit this tick.
func (a *Assembly) Contact() bool {
	return a.contact
}

// Mode is the control law selected this tick.
func (a *Assembly) Mode() Mode {
	return a.mode
}

// Chassis exposes the chassis body for rendering.
func (a *Assembly) Chassis() *cp.Body {
	return a.chassis
}

// Wheels exposes the wheel bodies for rendering, left then right.
func (a *Assembly) Wheels() (*cp.Body, *cp.Body) {
	return a.wheelLeft, a.wheelRight
}

// Params returns the tunables the assembly was spawned with.
func (a *Assembly) Params() Params {
	return a.params
}

// Sensors exposes the sensor set for debug overlays.
func (a *Assembly) Sensors() []GroundSensor {
	return a.sensors
}
