package vehicle

import "github.com/G36maid/flipside/physics"

// applyAdhesionForces substitutes custom gravity for this tick. The engine
// clears accumulated forces after integrating, so this runs every tick the
// vehicle is adhered; nothing is cached.
//
// Two additive terms per body rather than a gravity-scale toggle: cancelling
// gravity explicitly composes predictably with the engine's own gravity
// bookkeeping, and the adhesion term stays independently tunable.
func (a *Assembly) applyAdhesionForces() {
	if !a.state.Adhered {
		// Free: native gravity acts unmodified.
		return
	}

	// Contact-pressure correction, identical for all bodies, not mass-scaled.
	downforce := a.state.Normal.Neg().Mult(a.params.ForceMultiplier)

	for _, b := range a.bodies() {
		cancel := a.gravity.Neg().Mult(b.Mass())
		physics.ApplyCentralForce(b, cancel.Add(downforce))
	}
}
