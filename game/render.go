package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/zoodrop/physics"
	"github.com/pthm-cable/zoodrop/ui"
)

var (
	backgroundColor = rl.Color{R: 24, G: 28, B: 36, A: 255}
	wallColor       = rl.Color{R: 120, G: 130, B: 145, A: 255}
	lineColor       = rl.Color{R: 220, G: 60, B: 60, A: 200}
)

const controlsLegend = "Click: drop | R: restart | Space: pause | ,/.: speed | S: snapshot | H: overlays"

// Draw renders the current frame.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	snap := g.Snapshot()
	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: g.cam.ViewportW / 2, Y: g.cam.ViewportH / 2},
		Target: rl.Vector2{X: g.cam.X, Y: g.cam.Y},
		Zoom:   g.cam.Zoom,
	})
	for _, w := range snap.Walls {
		drawSegment(w)
	}
	g.drawLine(snap)

	showLabels := g.overlays.IsEnabled(ui.OverlayLabels)
	for _, p := range snap.Pieces {
		x, y := int32(p.Pos.X), int32(p.Pos.Y)
		rl.DrawCircle(x, y, float32(p.Radius), ui.RGBA(p.Color.R, p.Color.G, p.Color.B))
		rl.DrawCircleLines(x, y, float32(p.Radius), rl.Black)
		if showLabels {
			label := string(p.Name)
			w := rl.MeasureText(label, 10)
			rl.DrawText(label, x-w/2, y-5, 10, rl.Black)
		}
	}

	if !snap.GameOver && snap.Next != nil {
		c := snap.Next.Color
		rl.DrawCircleLines(int32(snap.Preview.X), int32(snap.Preview.Y), float32(snap.Next.Radius), ui.RGBA(c.R, c.G, c.B))
	}
	rl.EndMode2D()

	g.drawUI(snap, sw, sh)

	rl.EndDrawing()
}

func drawSegment(s physics.Segment) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(s.A.X), Y: float32(s.A.Y)},
		rl.Vector2{X: float32(s.B.X), Y: float32(s.B.Y)},
		float32(s.Thickness*2),
		wallColor,
	)
}

// drawLine draws the dashed game-over line across the arena.
func (g *Game) drawLine(snap Snapshot) {
	const dash, gap = 10, 6
	y := int32(snap.LineY)
	left := int32(g.cfg.Derived.ArenaLeft)
	right := int32(g.cfg.Derived.ArenaRight)
	for x := left; x < right; x += dash + gap {
		end := min(x+dash, right)
		rl.DrawLine(x, y, end, y, lineColor)
	}
}

func (g *Game) drawUI(snap Snapshot, sw, sh int32) {
	hud := ui.HUDData{
		Title:     g.cfg.Screen.Title,
		Score:     snap.Score,
		HighScore: snap.HighScore,
		Tick:      snap.Tick,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    snap.Paused,
	}
	if snap.Next != nil {
		hud.NextName = string(snap.Next.Name)
		hud.NextColor = ui.RGBA(snap.Next.Color.R, snap.Next.Color.G, snap.Next.Color.B)
	}
	g.hud.Draw(hud)
	g.hud.DrawControls(sw, sh, controlsLegend)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), g.cfg.Derived.StepDuration)
	}
	if g.overlays.IsEnabled(ui.OverlayDebug) {
		g.debugPanel.Draw(ui.DebugData{
			Phase:         snap.Phase.String(),
			LivePieces:    len(snap.Pieces),
			OverLineTimer: snap.OverLineTimer,
			Grace:         snap.Grace,
			Session:       g.collector.Session(),
			Merges:        g.session.Score.Merges(),
		})
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controlsPanel.Draw(g.overlays)
	}

	if snap.GameOver {
		pressed := g.gameOverPanel.Draw(sw, sh, ui.GameOverData{
			Score:        snap.Score,
			HighScore:    snap.HighScore,
			NewHighScore: snap.NewHighScore,
		})
		if pressed {
			g.restartRequested = true
		}
	}
}
