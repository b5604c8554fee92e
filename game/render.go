package game

import (
	"fmt"

	cp "github.com/jakecoffman/cp/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	backgroundColor = rl.NewColor(24, 26, 33, 255)
	trackColor      = rl.NewColor(90, 98, 120, 255)
	chassisColor    = rl.NewColor(235, 200, 80, 255)
	wheelColor      = rl.NewColor(210, 215, 225, 255)
	adheredColor    = rl.NewColor(110, 220, 130, 255)
	freeColor       = rl.NewColor(230, 120, 110, 255)
)

// Draw renders one frame. Rendering is a read-only view of controller state;
// nothing here mutates the simulation.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode2D(g.camera.rl)
	g.drawCourse()
	g.drawVehicle()
	if g.debugOverlay {
		g.drawDebugWorld()
	}
	rl.EndMode2D()

	g.drawHUD()
	if g.debugOverlay {
		g.drawOverlayPanel()
	}

	rl.EndDrawing()
}

func (g *Game) drawCourse() {
	pts := g.course.Points
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		rl.DrawLineEx(toScreen(a), toScreen(b), 4, trackColor)
	}
}

func (g *Game) drawVehicle() {
	left, right := g.car.Wheels()
	radius := float32(g.car.Params().WheelRadius)

	for _, wheel := range []*cp.Body{left, right} {
		center := toScreen(wheel.Position())
		rl.DrawCircleLinesV(center, radius, wheelColor)
		// Spoke shows wheel spin
		rot := wheel.Rotation()
		spoke := toScreen(wheel.Position().Add(rot.Mult(float64(radius))))
		rl.DrawLineV(center, spoke, wheelColor)
	}

	// Chassis bar between the wheels
	rl.DrawLineEx(toScreen(left.Position()), toScreen(right.Position()), 6, chassisColor)
	rl.DrawCircleV(toScreen(g.car.Position()), 5, chassisColor)
}

// drawDebugWorld draws the world-space debug overlays: sensor rays and the
// aggregated surface normal.
func (g *Game) drawDebugWorld() {
	if g.showSensors {
		for _, s := range g.car.Sensors() {
			origin := s.Body.Position()
			end := origin.Add(s.WorldDir().Mult(s.Length))
			rl.DrawLineV(toScreen(origin), toScreen(end), rl.NewColor(120, 160, 255, 180))
		}
	}

	if g.showNormal && g.car.Contact() {
		origin := g.car.Position()
		tip := origin.Add(g.car.SurfaceNormal().Mult(50))
		color := freeColor
		if g.car.Adhered() {
			color = adheredColor
		}
		rl.DrawLineEx(toScreen(origin), toScreen(tip), 3, color)
	}
}

func (g *Game) drawHUD() {
	stateColor := freeColor
	stateText := "FREE"
	if g.car.Adhered() {
		stateColor = adheredColor
		stateText = "ADHERED"
	}

	rl.DrawText(fmt.Sprintf("speed %6.0f u/s", g.car.Speed()), 16, 16, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("mode  %s", g.car.Mode()), 16, 40, 20, rl.RayWhite)
	rl.DrawText(stateText, 16, 64, 20, stateColor)
	rl.DrawText(fmt.Sprintf("tick %d  x%d", g.tick, g.stepsPerUpdate), 16, 88, 20, rl.Gray)

	if g.paused {
		rl.DrawText("PAUSED", int32(g.cfg.Screen.Width/2)-40, 16, 20, rl.Yellow)
	}
}
