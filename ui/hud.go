package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/zoodrop/systems"
	"github.com/pthm-cable/zoodrop/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Score     int
	HighScore int
	NextName  string
	NextColor rl.Color
	Tick      int32
	Speed     int
	FPS       int32
	Paused    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Score: %d", data.Score), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Best: %d", data.HighScore), 10, 58, 16, rl.LightGray)

	rl.DrawText("Next:", 10, 82, 16, rl.LightGray)
	rl.DrawCircle(62, 90, 8, data.NextColor)
	rl.DrawText(data.NextName, 76, 82, 16, rl.LightGray)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 104, 14, rl.Gray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 122, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// GameOverData holds what the game-over panel shows.
type GameOverData struct {
	Score        int
	HighScore    int
	NewHighScore bool
}

// GameOverPanel renders the end-of-session overlay.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewGameOverPanel creates a centred panel of the given size.
func NewGameOverPanel(width, height int32) *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    width,
		height:   height,
	}
}

// Draw renders the panel centred on the screen and reports whether the
// restart button was pressed.
func (p *GameOverPanel) Draw(screenWidth, screenHeight int32, data GameOverData) bool {
	r := p.renderer
	x := (screenWidth - p.width) / 2
	y := (screenHeight - p.height) / 2

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.Color{R: 0, G: 0, B: 0, A: 120})
	r.DrawPanel(x, y, p.width, p.height)

	centred := func(text string, ty, size int32, color rl.Color) {
		w := rl.MeasureText(text, size)
		rl.DrawText(text, x+(p.width-w)/2, ty, size, color)
	}

	ty := y + r.Theme.Padding*2
	centred("Game Over", ty, 32, rl.White)
	ty += 44
	centred(fmt.Sprintf("Score: %d", data.Score), ty, 20, rl.LightGray)
	ty += 26
	if data.NewHighScore {
		centred("New High Score!", ty, 20, rl.Gold)
	} else {
		centred(fmt.Sprintf("Best: %d", data.HighScore), ty, 20, rl.Gray)
	}
	ty += 34

	bw := float32(140)
	pressed := gui.Button(rl.Rectangle{
		X:      float32(x) + (float32(p.width)-bw)/2,
		Y:      float32(ty),
		Width:  bw,
		Height: 30,
	}, "Restart")
	ty += 40
	centred("Press R to Restart", ty, 14, rl.Gray)

	return pressed
}

// PerfPanel renders the step-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases over 20% of the tick are red.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, step time.Duration) {
	x := p.x
	y := p.y

	rl.DrawText("Step Timing", x, y, 16, rl.White)
	y += 20

	totalColor := rl.Yellow
	if stats.OverBudget(step) {
		totalColor = rl.Red
	}
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, totalColor)
	y += 16

	for _, phase := range p.registry.IDs() {
		avg, pct, ok := stats.ByName(phase)
		if !ok {
			continue
		}
		color := rl.LightGray
		if pct > 20 {
			color = rl.Red
		} else if pct > 10 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(phase), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// DebugData holds the values shown by the debug panel.
type DebugData struct {
	Phase         string
	LivePieces    int
	OverLineTimer time.Duration
	Grace         time.Duration
	Session       int
	Merges        int
}

// DebugPanel shows the game-over timer and piece counts.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewDebugPanel creates a new debug panel.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the debug panel.
func (d *DebugPanel) Draw(data DebugData) {
	r := d.renderer
	padding := r.Theme.Padding
	inner := d.width - padding*2

	r.DrawPanel(d.x, d.y, d.width, r.Theme.LineHeight*6+padding*2)

	y := d.y + padding
	y = r.DrawSectionHeader(d.x+padding, y, "Debug")
	y = r.DrawLabelValue(d.x+padding, y, "Phase", data.Phase)
	y = r.DrawLabelValue(d.x+padding, y, "Session", fmt.Sprintf("%d", data.Session))
	y = r.DrawLabelValue(d.x+padding, y, "Pieces", fmt.Sprintf("%d", data.LivePieces))
	y = r.DrawLabelValue(d.x+padding, y, "Merges", fmt.Sprintf("%d", data.Merges))
	r.DrawBar(d.x+padding, y, "Over line", float32(data.OverLineTimer.Seconds()), float32(data.Grace.Seconds()), inner)
}
