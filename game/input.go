package game

import rl "github.com/gen2brain/raylib-go/raylib"

// readAxis samples the drive axis from the keyboard, normalized to [-1, 1].
// Right/D drives toward +X, Left/A toward -X; both held cancel out.
func readAxis() float64 {
	axis := 0.0
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		axis += 1
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		axis -= 1
	}
	return axis
}

// handleInput processes non-driving keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.car.Respawn(g.spawnPoint())
	}

	// Simulation speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Debug overlay toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		g.debugOverlay = !g.debugOverlay
	}

	// Camera zoom: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.zoomBy(1 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.zoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.zoomBy(0.8)
	}
}
