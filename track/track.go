// Package track builds the static course the vehicle drives on. Geometry is
// data: a closed polyline from config becomes a loop of static segment shapes
// in the collision space. Courses are driven on the inside, so walls and
// ceiling are reachable once the vehicle is fast enough to adhere.
package track

import (
	"fmt"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/G36maid/flipside/config"
	"github.com/G36maid/flipside/physics"
)

// segmentRadius fattens the collision segments slightly so wheels do not
// catch on the joints between consecutive segments.
const segmentRadius = 2.0

// Course is the built course: static shapes in the space plus the data the
// renderer and spawner need.
type Course struct {
	Points []cp.Vector // Closed polyline, in order
	Spawn  cp.Vector
}

// Build creates the course's static segment shapes in the world.
func Build(w *physics.World, cfg config.TrackConfig) (*Course, error) {
	if len(cfg.Points) < 3 {
		return nil, fmt.Errorf("track: need at least 3 points for a closed course, got %d", len(cfg.Points))
	}

	c := &Course{
		Points: make([]cp.Vector, 0, len(cfg.Points)),
		Spawn:  cp.Vector{X: cfg.SpawnX, Y: cfg.SpawnY},
	}
	for _, p := range cfg.Points {
		c.Points = append(c.Points, cp.Vector{X: p[0], Y: p[1]})
	}

	static := w.Space.StaticBody
	for i, a := range c.Points {
		b := c.Points[(i+1)%len(c.Points)]
		shape := w.Space.AddShape(cp.NewSegment(static, a, b, segmentRadius))
		shape.SetFriction(cfg.Friction)
		shape.SetElasticity(cfg.Elasticity)
	}

	return c, nil
}

// SegmentCount is the number of wall segments in the closed loop.
func (c *Course) SegmentCount() int {
	return len(c.Points)
}
