package render

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		fov     float64
		dir     geom.Vector2
	}{
		{"east", 0, 66, geom.Vector2{X: 1, Y: 0}},
		{"south", math.Pi / 2, 90, geom.Vector2{X: 0, Y: 1}},
		{"west", math.Pi, 60, geom.Vector2{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(geom.Vector2{X: 2, Y: 3}, tt.heading, tt.fov)
			if !almost(c.Dir.X, tt.dir.X) || !almost(c.Dir.Y, tt.dir.Y) {
				t.Errorf("dir = %v, want %v", c.Dir, tt.dir)
			}
			if dot := c.Dir.X*c.Plane.X + c.Dir.Y*c.Plane.Y; !almost(dot, 0) {
				t.Errorf("plane not perpendicular to dir, dot = %v", dot)
			}
			if !almost(c.FovAngle(), tt.fov) {
				t.Errorf("fov = %v, want %v", c.FovAngle(), tt.fov)
			}
		})
	}
}

func TestRadians(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := Radians(tt.deg); got != tt.want {
			t.Errorf("Radians(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
	for _, fov := range []float64{30, 60, 66, 90, 120} {
		var c Camera
		c.Dir = geom.Vector2{X: 1}
		c.SetFovAngle(fov)
		if !almost(c.FovAngle(), fov) {
			t.Errorf("fov %v round trips to %v", fov, c.FovAngle())
		}
	}
}

func TestCameraRotate(t *testing.T) {
	c := NewCamera(geom.Vector2{}, 0, 66)
	r := c.Rotate(math.Pi / 2)
	if !almost(r.Dir.X, 0) || !almost(r.Dir.Y, 1) {
		t.Errorf("rotated dir = %v, want (0,1)", r.Dir)
	}
	if !almost(r.FovAngle(), 66) {
		t.Errorf("rotation changed fov to %v", r.FovAngle())
	}
	if !almost(r.HeadingAngle(), math.Pi/2) {
		t.Errorf("heading = %v, want pi/2", r.HeadingAngle())
	}
	if c.Dir.X != 1 {
		t.Error("Rotate must not modify the receiver")
	}
}

func TestCameraTransform(t *testing.T) {
	c := Camera{
		Pos:   geom.Vector2{X: 1, Y: 1},
		Dir:   geom.Vector2{X: 1, Y: 0},
		Plane: geom.Vector2{X: 0, Y: 0.66},
	}

	x, depth := c.Transform(geom.Vector2{X: 3, Y: 1})
	if !almost(x, 0) || !almost(depth, 2) {
		t.Errorf("straight ahead: x=%v depth=%v, want 0, 2", x, depth)
	}

	x, depth = c.Transform(geom.Vector2{X: 3, Y: 2})
	if x <= 0 {
		t.Errorf("point to the right should have positive x, got %v", x)
	}
	if !almost(depth, 2) {
		t.Errorf("depth = %v, want 2", depth)
	}

	if _, depth = c.Transform(geom.Vector2{X: 0, Y: 1}); depth >= 0 {
		t.Errorf("point behind should have negative depth, got %v", depth)
	}

	flat := Camera{Dir: geom.Vector2{X: 1}, Plane: geom.Vector2{X: 1}}
	x, depth = flat.Transform(geom.Vector2{X: 1, Y: 1})
	if math.IsInf(x, 0) || math.IsNaN(x) || math.IsInf(depth, 0) || math.IsNaN(depth) {
		t.Errorf("singular camera produced x=%v depth=%v", x, depth)
	}
}

func TestCombSort(t *testing.T) {
	order := []int{0, 1, 2, 3}
	dist := []float64{1, 5, 3, 9}
	combSort(order, dist, len(order))

	want := []int{3, 1, 2, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
