package vehicle

import (
	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/physics"
)

// DefaultNormal is the surface normal reported when no sensor has contact, or
// when hit normals cancel exactly. Falling back to "up" is deliberate policy:
// the aggregator never produces an unnormalizable vector, and downstream code
// can rely on the normal always being unit length.
var DefaultNormal = cp.Vector{X: 0, Y: 1}

// GroundSensor is a directional ray query anchored to a wheel body. It is a
// read-only view into the collision world; probing has no side effects.
//
// Dir is expressed in the frame body's local space and rotates with it. The
// pivot pins keep the chassis aligned with the wheel line, so with the chassis
// as frame a local -Y sensor keeps facing the ridden surface on walls and
// ceilings, not just on floors.
type GroundSensor struct {
	Body   *cp.Body       // Wheel the ray originates from
	Frame  *cp.Body       // Body whose orientation the cast direction follows
	Dir    cp.Vector      // Frame-local cast direction, unit length
	Length float64
	Filter cp.ShapeFilter // Excludes the vehicle's own shapes from the query
}

// WorldDir is the cast direction in world space for the frame's current angle.
func (s GroundSensor) WorldDir() cp.Vector {
	return s.Dir.Rotate(s.Frame.Rotation())
}

// Probe casts the sensor ray from the wheel's current position. The ray
// starts inside the wheel's own circle, so the sensor's filter must reject
// the assembly's shapes or the cast would self-hit.
func (s GroundSensor) Probe(rc physics.RayCaster) (physics.RayHit, bool) {
	return rc.CastRay(s.Body.Position(), s.WorldDir(), s.Length, s.Filter)
}

// aggregateSensors reduces all sensor readings to a single contact flag and a
// mean surface normal. Zero sensors hitting is a common, valid state.
func aggregateSensors(sensors []GroundSensor, rc physics.RayCaster) (anyContact bool, normal cp.Vector) {
	var sum cp.Vector
	hits := 0
	for _, s := range sensors {
		if hit, ok := s.Probe(rc); ok {
			sum = sum.Add(hit.Normal)
			hits++
		}
	}

	if hits == 0 {
		return false, DefaultNormal
	}

	mean := sum.Mult(1 / float64(hits))
	if mean.LengthSq() < 1e-12 {
		// Opposing normals cancelled (floor and ceiling hit at once).
		return true, DefaultNormal
	}
	return true, mean.Normalize()
}
