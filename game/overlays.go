package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawOverlayPanel renders the debug panel with overlay toggles and the raw
// controller readouts the core exposes.
func (g *Game) drawOverlayPanel() {
	x := float32(g.cfg.Screen.Width - 250)
	y := float32(16)

	gui.Panel(rl.Rectangle{X: x, Y: y, Width: 234, Height: 190}, "Debug")
	y += 32

	g.showSensors = gui.CheckBox(rl.Rectangle{X: x + 10, Y: y, Width: 18, Height: 18},
		"sensor rays", g.showSensors)
	y += 26
	g.showNormal = gui.CheckBox(rl.Rectangle{X: x + 10, Y: y, Width: 18, Height: 18},
		"surface normal", g.showNormal)
	y += 30

	n := g.car.SurfaceNormal()
	gui.Label(rl.Rectangle{X: x + 10, Y: y, Width: 214, Height: 18},
		fmt.Sprintf("normal  (%.2f, %.2f)", n.X, n.Y))
	y += 22
	gui.Label(rl.Rectangle{X: x + 10, Y: y, Width: 214, Height: 18},
		fmt.Sprintf("contact %v  adhered %v", g.car.Contact(), g.car.Adhered()))
	y += 22
	gui.Label(rl.Rectangle{X: x + 10, Y: y, Width: 214, Height: 18},
		fmt.Sprintf("speed   %.1f u/s", g.car.Speed()))
	y += 28

	if gui.Button(rl.Rectangle{X: x + 10, Y: y, Width: 100, Height: 24}, "Respawn") {
		g.car.Respawn(g.spawnPoint())
	}
}
