package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	cp "github.com/jakecoffman/cp/v2"
)

// camera wraps rl.Camera2D with smooth vehicle tracking. World coordinates
// are Y-up; the screen is Y-down, so world points are flipped on conversion.
type camera struct {
	rl rl.Camera2D
}

// followLerp controls how quickly the camera catches up to the vehicle per
// frame; 1 would snap, small values trail smoothly.
const followLerp = 0.12

func newCamera(screenW, screenH int, target cp.Vector) camera {
	return camera{rl: rl.Camera2D{
		Target:   toScreen(target),
		Offset:   rl.NewVector2(float32(screenW)/2, float32(screenH)/2),
		Rotation: 0,
		Zoom:     1,
	}}
}

// toScreen converts a world-space point to raylib's Y-down coordinates.
func toScreen(v cp.Vector) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(-v.Y))
}

// follow eases the camera target toward the vehicle position.
func (c *camera) follow(target cp.Vector) {
	goal := toScreen(target)
	c.rl.Target.X += (goal.X - c.rl.Target.X) * followLerp
	c.rl.Target.Y += (goal.Y - c.rl.Target.Y) * followLerp
}

// zoomBy scales the zoom, clamped to a usable range.
func (c *camera) zoomBy(factor float32) {
	z := c.rl.Zoom * factor
	if z < 0.25 {
		z = 0.25
	}
	if z > 4 {
		z = 4
	}
	c.rl.Zoom = z
}
