package render

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

// Camera is the viewpoint for one frame. Dir is the unit view direction and
// Plane the camera plane; |Plane| = tan(fov/2) sets the horizontal FOV.
type Camera struct {
	Pos   geom.Vector2
	Dir   geom.Vector2
	Plane geom.Vector2
}

// NewCamera places a camera at pos looking along headingAngle (radians) with
// the given horizontal field of view in degrees.
func NewCamera(pos geom.Vector2, headingAngle, fovDegrees float64) Camera {
	c := Camera{Pos: pos}
	c.Dir = geom.Vector2{X: math.Cos(headingAngle), Y: math.Sin(headingAngle)}
	c.SetFovAngle(fovDegrees)
	return c
}

// Radians converts degrees to radians at full math.Pi precision.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// SetFovAngle rebuilds the plane perpendicular to Dir.
func (c *Camera) SetFovAngle(fovDegrees float64) {
	half := math.Tan(Radians(fovDegrees) / 2)
	c.Plane = geom.Vector2{X: -c.Dir.Y * half, Y: c.Dir.X * half}
}

// FovAngle returns the horizontal field of view in degrees.
func (c Camera) FovAngle() float64 {
	dirLen := math.Hypot(c.Dir.X, c.Dir.Y)
	if dirLen == 0 {
		return 0
	}
	return 2 * math.Atan(math.Hypot(c.Plane.X, c.Plane.Y)/dirLen) * 180 / math.Pi
}

func (c Camera) HeadingAngle() float64 {
	return math.Atan2(c.Dir.Y, c.Dir.X)
}

// Rotate turns the camera by angle radians, keeping the plane perpendicular.
func (c Camera) Rotate(angle float64) Camera {
	cos, sin := math.Cos(angle), math.Sin(angle)
	c.Dir = geom.Vector2{
		X: c.Dir.X*cos - c.Dir.Y*sin,
		Y: c.Dir.X*sin + c.Dir.Y*cos,
	}
	c.Plane = geom.Vector2{
		X: c.Plane.X*cos - c.Plane.Y*sin,
		Y: c.Plane.X*sin + c.Plane.Y*cos,
	}
	return c
}

// RayDir is the direction of the ray through screen column x of w.
func (c Camera) RayDir(x, w int) geom.Vector2 {
	cameraX := 2*float64(x)/float64(w) - 1
	return geom.Vector2{
		X: c.Dir.X + c.Plane.X*cameraX,
		Y: c.Dir.Y + c.Plane.Y*cameraX,
	}
}

// Transform maps a world point into camera space: x is the lateral offset on
// the camera plane and depth the distance along Dir. A singular camera basis
// is nudged so the result stays finite.
func (c Camera) Transform(p geom.Vector2) (x, depth float64) {
	sx := p.X - c.Pos.X
	sy := p.Y - c.Pos.Y

	det := c.Plane.X*c.Dir.Y - c.Dir.X*c.Plane.Y
	if det == 0 {
		det = 1e-9
	}
	invDet := 1 / det
	x = invDet * (c.Dir.Y*sx - c.Dir.X*sy)
	depth = invDet * (-c.Plane.Y*sx + c.Plane.X*sy)
	return x, depth
}
