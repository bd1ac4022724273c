package camera

import (
	"math"
	"testing"
)

func TestNewFitsWorld(t *testing.T) {
	tests := []struct {
		name     string
		vw, vh   float32
		ww, wh   float32
		wantZoom float32
	}{
		{"same size", 600, 800, 600, 800, 1},
		{"wider window", 1200, 800, 600, 800, 1},
		{"taller window", 600, 1600, 600, 800, 1},
		{"double", 1200, 1600, 600, 800, 2},
		{"half height", 600, 400, 600, 800, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, tt.ww, tt.wh)
			if cam.Zoom != tt.wantZoom {
				t.Errorf("Zoom = %v, want %v", cam.Zoom, tt.wantZoom)
			}
			if cam.X != tt.ww/2 || cam.Y != tt.wh/2 {
				t.Errorf("center = (%v, %v)", cam.X, cam.Y)
			}
		})
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1200, 800, 600, 800)

	// World centre maps to screen centre; the arena is letterboxed horizontally
	sx, sy := cam.WorldToScreen(300, 400)
	if sx != 600 || sy != 400 {
		t.Errorf("centre -> (%v, %v), want (600, 400)", sx, sy)
	}
	sx, _ = cam.WorldToScreen(0, 0)
	if sx != 300 {
		t.Errorf("left edge -> %v, want 300", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1000, 700, 600, 800)

	testCases := []struct{ sx, sy float32 }{
		{500, 350},
		{100, 100},
		{950, 650},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestResizeRefits(t *testing.T) {
	cam := New(600, 800, 600, 800)
	cam.Resize(300, 400)
	if cam.Zoom != 0.5 {
		t.Errorf("Zoom = %v after shrink, want 0.5", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(600, 800)
	if sx != 300 || sy != 400 {
		t.Errorf("far corner -> (%v, %v), want (300, 400)", sx, sy)
	}
}
