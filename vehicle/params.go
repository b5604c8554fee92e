package vehicle

import "github.com/G36maid/flipside/config"

// Params holds the tunables the controller runs with. They are copied out of
// the loaded config at spawn and treated as immutable for the session.
type Params struct {
	// Assembly geometry and masses
	WheelRadius   float64
	WheelMass     float64
	WheelFriction float64
	WheelBase     float64
	ChassisMass   float64
	ChassisWidth  float64
	ChassisHeight float64

	// Actuation
	WheelTorque float64 // Drive torque per wheel at full input
	AirTorque   float64 // Chassis orientation torque at full input

	// Adhesion
	VelocityThreshold float64 // Speed around which adhesion engages, units/s
	Hysteresis        float64 // Dead band half-width, units/s
	ForceMultiplier   float64 // Normal-aligned downforce magnitude, not mass-scaled
	SensorLength      float64 // Ground sensor ray length in units
}

// ParamsFromConfig copies the vehicle and adhesion tunables out of cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		WheelRadius:       cfg.Vehicle.WheelRadius,
		WheelMass:         cfg.Vehicle.WheelMass,
		WheelFriction:     cfg.Vehicle.WheelFriction,
		WheelBase:         cfg.Vehicle.WheelBase,
		ChassisMass:       cfg.Vehicle.ChassisMass,
		ChassisWidth:      cfg.Vehicle.ChassisWidth,
		ChassisHeight:     cfg.Vehicle.ChassisHeight,
		WheelTorque:       cfg.Vehicle.WheelTorque,
		AirTorque:         cfg.Vehicle.AirTorque,
		VelocityThreshold: cfg.Adhesion.VelocityThreshold,
		Hysteresis:        cfg.Adhesion.Hysteresis,
		ForceMultiplier:   cfg.Adhesion.ForceMultiplier,
		SensorLength:      cfg.Adhesion.SensorLength,
	}
}

// attachSpeed is the speed above which a free, grounded vehicle adheres.
func (p Params) attachSpeed() float64 {
	return p.VelocityThreshold + p.Hysteresis
}

// detachSpeed is the speed below which an adhered vehicle lets go.
func (p Params) detachSpeed() float64 {
	return p.VelocityThreshold - p.Hysteresis
}
