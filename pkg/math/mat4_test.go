package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the last column (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0.5, 7}, Vec3{-1, 0.5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); got != tt.want {
				t.Errorf("TransformVec3() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100, 100)
	d := Vec3{0, 1, 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection() = %v, want %v", got, d)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math32.Pi / 2)
	result := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) becomes approximately (0,0,-1)
	if !near(result, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(math32.Pi / 2)
	result := m.TransformVec3(Vec3{1, 0, 0})

	if !near(result, Vec3{0, 1, 0}) {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", result)
	}
}

func TestTranslateThenRotate(t *testing.T) {
	// Local rotation applied first, then the translation: the origin of the
	// rotated frame lands on the translation.
	m := Translate(3, 0, 0).Mul(RotateZ(math32.Pi / 2))

	if got := m.TransformVec3(Vec3{}); !near(got, Vec3{3, 0, 0}) {
		t.Errorf("origin: got %v, want (3, 0, 0)", got)
	}
	if got := m.TransformVec3(Vec3{1, 0, 0}); !near(got, Vec3{3, 1, 0}) {
		t.Errorf("x axis: got %v, want (3, 1, 0)", got)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateX(0.3)).Mul(Scale(2, 2, 2))
	p := Vec3{4, -5, 6}

	back := m.Inverse().TransformVec3(m.TransformVec3(p))
	if !near(back, p) {
		t.Errorf("Inverse round trip: got %v, want %v", back, p)
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if got := zero.Inverse(); got != Identity() {
		t.Errorf("singular Inverse() = %v, want identity", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(math32.Pi/4, 1.0, 0.1, 100.0)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin
	if got := m.TransformVec3(eye); !near(got, Vec3{}) {
		t.Errorf("LookAt eye: got %v, want origin", got)
	}
	// The target ends up straight ahead (-Z)
	if got := m.TransformVec3(Vec3{}); !near(got, Vec3{0, 0, -5}) {
		t.Errorf("LookAt target: got %v, want (0, 0, -5)", got)
	}
}

func near(a, b Vec3) bool {
	return a.Distance(b) < 0.001
}
