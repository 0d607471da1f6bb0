package model

import (
	"image"
	"image/color"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"wolfcaster/gfx"
	"wolfcaster/render"
)

// Collider is the part of the map entities collide against.
type Collider interface {
	IsSolid(x, y int) bool
}

// Entity is anything placed in the world with a facing.
type Entity struct {
	Pos      geom.Vector2
	Dir      geom.Vector2
	MapColor color.RGBA
}

func (e *Entity) Position() geom.Vector2 { return e.Pos }

// tryMove moves to (nx, ny) one axis at a time so entities slide along walls.
func (e *Entity) tryMove(m Collider, nx, ny float64) {
	if m == nil {
		e.Pos.X, e.Pos.Y = nx, ny
		return
	}
	if !m.IsSolid(int(math.Floor(nx)), int(math.Floor(e.Pos.Y))) {
		e.Pos.X = nx
	}
	if !m.IsSolid(int(math.Floor(e.Pos.X)), int(math.Floor(ny))) {
		e.Pos.Y = ny
	}
}

func (e *Entity) face(target geom.Vector2) {
	dx, dy := target.X-e.Pos.X, target.Y-e.Pos.Y
	if l := math.Hypot(dx, dy); l > 1e-6 {
		e.Dir = geom.Vector2{X: dx / l, Y: dy / l}
	}
}

// Decor is a static billboard with a single frame.
type Decor struct {
	Entity
	Frame *image.RGBA
}

func NewDecor(pos geom.Vector2, frame *image.RGBA) *Decor {
	return &Decor{
		Entity: Entity{Pos: pos, Dir: geom.Vector2{X: 1}, MapColor: color.RGBA{200, 200, 80, 255}},
		Frame:  frame,
	}
}

func (d *Decor) FrameAt(cam render.Camera, elapsed float64) *image.RGBA {
	return d.Frame
}

// Animated is a billboard backed by an 8-direction sheet: the column is
// picked from where the viewer stands relative to the entity's facing, the
// row loops through the first WalkRows rows.
type Animated struct {
	Entity
	Sheet    *gfx.DirectionalSheet
	WalkRows int
	FPS      float64
}

func NewAnimated(pos geom.Vector2, sheet *gfx.DirectionalSheet, walkRows int, fps float64) *Animated {
	return &Animated{
		Entity:   Entity{Pos: pos, Dir: geom.Vector2{X: 1}, MapColor: color.RGBA{80, 160, 255, 255}},
		Sheet:    sheet,
		WalkRows: walkRows,
		FPS:      fps,
	}
}

func (a *Animated) FrameAt(cam render.Camera, elapsed float64) *image.RGBA {
	return a.Sheet.Frame(walkRow(elapsed, a.FPS, a.WalkRows), octant(a.Pos, a.Dir, cam.Pos))
}

func walkRow(elapsed, fps float64, rows int) int {
	if rows < 1 {
		return 0
	}
	f := int(elapsed * fps)
	if f < 0 {
		f = 0
	}
	return f % rows
}

// octant returns which of the 8 sheet columns faces a viewer at eye: 0 when
// the entity looks straight at the viewer, counting up with the angle between
// its facing and the viewer.
func octant(pos, facing, eye geom.Vector2) int {
	toEye := math.Atan2(eye.Y-pos.Y, eye.X-pos.X)
	rel := toEye - math.Atan2(facing.Y, facing.X)
	for rel < 0 {
		rel += 2 * math.Pi
	}
	for rel >= 2*math.Pi {
		rel -= 2 * math.Pi
	}
	return int(math.Round(rel/(2*math.Pi)*8)) & 7
}
