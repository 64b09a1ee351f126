package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Distance(t *testing.T) {
	got := Vec2{1, 1}.Distance(Vec2{4, 5})
	if got != 5 {
		t.Errorf("Vec2.Distance() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeDegenerate(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != Up {
		t.Errorf("zero vector normalized to %v, want %v", got, Up)
	}
}

func TestSlopeDegrees(t *testing.T) {
	tests := []struct {
		normal Vec3
		want   float64
	}{
		{Vec3{0, 1, 0}, 0},
		{Vec3{1, 1, 0}, 45},
		{Vec3{0, 0, 1}, 90},
		{Vec3{0, 5, 0}, 0},
	}

	for _, tc := range tests {
		got := SlopeDegrees(tc.normal)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("SlopeDegrees(%v) = %v, want %v", tc.normal, got, tc.want)
		}
	}
}

func TestLerpClamp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2, 4, 0.5) = %v, want 3", got)
	}
	if got := Clamp01(-0.5); got != 0 {
		t.Errorf("Clamp01(-0.5) = %v, want 0", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Clamp01(1.5) = %v, want 1", got)
	}
}
