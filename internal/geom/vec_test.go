package geom

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDist(t *testing.T) {
	tests := map[string]struct {
		a, b Vec3
		exp  float64
	}{
		"same point": {a: Vec3{X: 1, Y: 2, Z: 3}, b: Vec3{X: 1, Y: 2, Z: 3}, exp: 0},
		"axis":       {a: Vec3{}, b: Vec3{X: 5}, exp: 5},
		"3-4-5":      {a: Vec3{}, b: Vec3{X: 3, Z: 4}, exp: 5},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "dist", tt.a.Dist(tt.b), tt.exp)
		})
	}
}

func TestNormalized(t *testing.T) {
	v := Vec3{X: 0, Y: 0, Z: 10}.Normalized()
	testutil.AssertEqual(t, "unit z", v, Vec3{Z: 1})

	// The zero vector has no direction and stays put.
	testutil.AssertEqual(t, "zero", Vec3{}.Normalized(), Vec3{})
}
