package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBinding is one game command and the input that triggers it.
type KeyBinding struct {
	Input  string // e.g. "Click", "R"
	Action string
}

// ControlsPanel lists the game's key bindings and a checkbox per overlay.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	bindings []KeyBinding
}

// NewControlsPanel creates a controls panel for the given bindings.
func NewControlsPanel(x, y, width int32, bindings []KeyBinding) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		bindings: bindings,
	}
}

// Height returns the panel height for the current overlay set.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := len(c.bindings) + len(overlays.All()) + len(overlays.Categories())
	// Two section headers
	return int32(rows+2)*t.LineHeight + t.Padding*3
}

// Contains reports whether the screen point lies on the panel.
func (c *ControlsPanel) Contains(overlays *OverlayRegistry, x, y float32) bool {
	return rl.CheckCollisionPointRec(
		rl.Vector2{X: x, Y: y},
		rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.Height(overlays))},
	)
}

// Draw renders the panel and returns the Y below it. Clicking an overlay's
// checkbox toggles it like its key does.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	height := c.Height(overlays)

	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + padding
	y := c.y + padding
	inner := c.width - padding*2

	y = r.DrawSectionHeader(x, y, "Controls")
	for _, b := range c.bindings {
		rl.DrawText(b.Action, x, y, r.Theme.FontSize, r.Theme.LabelColor)
		c.drawKey(x+inner, y, b.Input)
		y += lineHeight
	}

	y += padding
	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			box := rl.Rectangle{X: float32(x), Y: float32(y), Width: 10, Height: 10}
			if checked := gui.CheckBox(box, desc.Name, enabled); checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			c.drawKey(x+inner, y, desc.KeyLabel)
			y += lineHeight
		}
	}

	return c.y + height
}

// drawKey right-aligns "[key]" so its last character ends at right.
func (c *ControlsPanel) drawKey(right, y int32, key string) {
	if key == "" {
		return
	}
	size := c.renderer.Theme.FontSize
	text := fmt.Sprintf("[%s]", key)
	rl.DrawText(text, right-rl.MeasureText(text, size), y, size, rl.Color{R: 150, G: 150, B: 150, A: 255})
}

func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Board"
	case "debug":
		return "Diagnostics"
	default:
		return cat
	}
}
