package vehicle

import "github.com/G36maid/flipside/physics"

// Mode is the currently active input-to-actuation mapping.
type Mode int

const (
	// ModeAir steers the chassis orientation while airborne.
	ModeAir Mode = iota
	// ModeGround drives the wheels against the contacted surface.
	ModeGround
)

func (m Mode) String() string {
	if m == ModeGround {
		return "ground"
	}
	return "air"
}

// modeForContact selects the control law from the current-tick contact
// signal, not the hysteresis-delayed adhesion flag. The hysteresis smooths
// gravity substitution; control authority tracks actual contact immediately.
func modeForContact(contact bool) Mode {
	if contact {
		return ModeGround
	}
	return ModeAir
}

// applyControl converts the input axis in [-1, 1] into torque for this tick.
// Positive axis drives toward +X along the floor, which needs clockwise wheel
// spin, hence the negated torque in cp's counterclockwise-positive convention.
func (a *Assembly) applyControl(mode Mode, axis float64) {
	if mode == ModeGround {
		// Identical signed torque on both wheels; propulsion happens through
		// the friction contact, never by assigning velocities.
		torque := -axis * a.params.WheelTorque
		physics.ApplyTorque(a.wheelLeft, torque)
		physics.ApplyTorque(a.wheelRight, torque)
		return
	}
	// Airborne: orient the chassis before landing, wheels get nothing.
	physics.ApplyTorque(a.chassis, -axis*a.params.AirTorque)
}
