package ui

import "testing"

func TestControlsPanelHeight(t *testing.T) {
	overlays := NewOverlayRegistry()
	bindings := []KeyBinding{{Input: "Click", Action: "Drop piece"}, {Input: "R", Action: "Restart"}}
	panel := NewControlsPanel(10, 20, 200, bindings)

	theme := DefaultTheme()
	// 2 bindings + 4 overlays + 2 categories + 2 section headers
	want := 10*theme.LineHeight + theme.Padding*3
	if got := panel.Height(overlays); got != want {
		t.Errorf("Height = %d, want %d", got, want)
	}

	overlays.Register(OverlayDescriptor{ID: "extra", Name: "Extra", Category: "debug"})
	if got := panel.Height(overlays); got != want+theme.LineHeight {
		t.Errorf("Height after register = %d, want %d", got, want+theme.LineHeight)
	}
}

func TestControlsPanelContains(t *testing.T) {
	overlays := NewOverlayRegistry()
	panel := NewControlsPanel(10, 20, 200, nil)
	h := float32(panel.Height(overlays))

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 50, 30, true},
		{"left of panel", 5, 30, false},
		{"above panel", 50, 10, false},
		{"below panel", 50, 20 + h + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := panel.Contains(overlays, tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestOverlayRegistry(t *testing.T) {
	r := NewOverlayRegistry()

	if cats := r.Categories(); len(cats) != 2 || cats[0] != "info" || cats[1] != "debug" {
		t.Errorf("Categories = %v", cats)
	}
	if r.IsEnabled(OverlayPerf) {
		t.Error("perf overlay enabled by default")
	}
	if !r.Toggle(OverlayPerf) || !r.IsEnabled(OverlayPerf) {
		t.Error("Toggle did not enable perf overlay")
	}
	r.SetEnabled(OverlayPerf, false)
	if r.IsEnabled(OverlayPerf) {
		t.Error("SetEnabled(false) ignored")
	}
	if r.Toggle("missing") {
		t.Error("Toggle of unknown overlay reported enabled")
	}
	if got := categoryLabel("debug"); got != "Diagnostics" {
		t.Errorf("categoryLabel(debug) = %q", got)
	}
}
