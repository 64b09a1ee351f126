package water

import (
	"math"
	"testing"

	"github.com/Faultbox/terragen/pkg/terrain"
)

func TestBuildPlane(t *testing.T) {
	p := BuildPlane(0, 10, 0, 20, 3)

	if len(p.Vertices) != 12 {
		t.Fatalf("expected 12 floats, got %d", len(p.Vertices))
	}
	for i := 1; i < 12; i += 3 {
		if p.Vertices[i] != 3 {
			t.Errorf("vertex %d: expected y 3, got %f", i/3, p.Vertices[i])
		}
	}
	if p.Vertices[6] != 10 || p.Vertices[8] != 20 {
		t.Errorf("expected far corner (10,20), got (%f,%f)", p.Vertices[6], p.Vertices[8])
	}
}

func TestBuildPlaneWithPadding(t *testing.T) {
	p := BuildPlaneWithPadding(0, 10, 0, 10, 0, 5)
	if p.Vertices[0] != -5 || p.Vertices[2] != -5 || p.Vertices[6] != 15 {
		t.Errorf("padding not applied: %v", p.Vertices)
	}
}

func TestForTile(t *testing.T) {
	dims := terrain.Dimensions{Width: 65, Height: 33, Depth: 20}
	p := ForTile(dims, 0.2, 2, 0)

	if math.Abs(float64(p.Level)-3.9) > 1e-5 {
		t.Errorf("expected level 3.9, got %f", p.Level)
	}
	if p.Vertices[6] != 128 || p.Vertices[8] != 64 {
		t.Errorf("expected extent 128x64, got %fx%f", p.Vertices[6], p.Vertices[8])
	}
}

func TestCoverage(t *testing.T) {
	hf := terrain.NewHeightfield(2, 2)
	hf.Values = []float64{0.05, 0.1, 0.3, 0.9}

	tests := []struct {
		level float64
		want  float64
	}{
		{0, 0},
		{0.1, 0.5},
		{0.5, 0.75},
		{1, 1},
	}
	for _, tc := range tests {
		if got := Coverage(hf, tc.level); got != tc.want {
			t.Errorf("Coverage(%v): expected %v, got %v", tc.level, tc.want, got)
		}
	}

	if got := Coverage(&terrain.Heightfield{}, 0.5); got != 0 {
		t.Errorf("expected 0 for empty grid, got %v", got)
	}
}
