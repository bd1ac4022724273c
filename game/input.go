package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/ui"
)

// keyBindings is what handleInput responds to, for the controls panel.
var keyBindings = []ui.KeyBinding{
	{Input: "Click", Action: "Drop piece"},
	{Input: "R", Action: "Restart"},
	{Input: "Space", Action: "Pause"},
	{Input: ", .", Action: "Slower / faster"},
	{Input: "S", Action: "Save snapshot"},
	{Input: "F11", Action: "Fullscreen"},
}

// handleInput processes mouse and keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	mouse := rl.GetMousePosition()
	wx, _ := g.cam.ScreenToWorld(mouse.X, mouse.Y)
	g.pointerX = float64(wx)

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handleOverlayKeys()

	if rl.IsKeyPressed(rl.KeyS) {
		dir := g.snapshotDir
		if dir == "" {
			dir = "snapshots"
		}
		if path, err := g.SaveSnapshot(dir); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", g.tick)
		}
	}

	switch g.session.Phase {
	case systems.PhasePlaying:
		if !g.paused && rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overPanel(mouse) {
			g.Drop(g.pointerX)
		}
	case systems.PhaseGameOver:
		// The button is drawn in Draw, so its press lands here a frame later
		if rl.IsKeyPressed(rl.KeyR) || g.restartRequested {
			g.Restart()
		}
	}
	g.restartRequested = false
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// handleResize refits the arena when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// overPanel reports whether a click at the mouse position belongs to the
// controls panel rather than the arena.
func (g *Game) overPanel(mouse rl.Vector2) bool {
	return g.overlays.IsEnabled(ui.OverlayControls) &&
		g.controlsPanel.Contains(g.overlays, mouse.X, mouse.Y)
}
