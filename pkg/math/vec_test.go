package math

import (
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

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
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

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want float32
	}{
		{"axis", Vec3{0, 0, 7}, 1},
		{"diagonal", Vec3{3, 4, 12}, 1},
		{"zero", Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.in.Normalize().Length()
			if l < tt.want-0.001 || l > tt.want+0.001 {
				t.Errorf("Normalize().Length() = %v, want ~%v", l, tt.want)
			}
		})
	}
}

func TestVec3LengthSq(t *testing.T) {
	if got := (Vec3{1, 2, 2}).LengthSq(); got != 9 {
		t.Errorf("Vec3.LengthSq() = %v, want 9", got)
	}
	if got := (Vec3{1, 2, 2}).Length(); got != 3 {
		t.Errorf("Vec3.Length() = %v, want 3", got)
	}
}
