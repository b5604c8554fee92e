package vehicle

import cp "github.com/jakecoffman/cp/v2"

// State is the per-tick controller state. It is created once at spawn and
// mutated in place every physics tick; Adhered persists across ticks and is
// the only field whose update depends on its own previous value.
type State struct {
	Speed   float64   // Magnitude of the mean wheel velocity, units/s
	Normal  cp.Vector // Aggregated surface normal, always unit length
	Adhered bool      // Custom gravity active
}

// updateAdhesion is the two-state hysteresis machine deciding whether custom
// gravity stays active. The dead band around the threshold prevents chatter
// when the speed oscillates near it; contact loss is never hysteresis-gated
// and clears adhesion on the same tick.
func updateAdhesion(adhered bool, speed float64, contact bool, p Params) bool {
	if !contact {
		return false
	}
	if adhered {
		if speed < p.detachSpeed() {
			return false
		}
		return true
	}
	if speed > p.attachSpeed() {
		return true
	}
	return false
}
