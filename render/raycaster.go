package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/sirupsen/logrus"

	"wolfcaster/gfx"
	"wolfcaster/logger"
	"wolfcaster/world"
)

// Grid is the tile map as seen by the renderer.
type Grid interface {
	At(x, y int) world.Tile
	DoorProgress(x, y int) float64
	DoorVertical(x, y int) bool
	DoorSign(x, y int) int
}

// Sprite is a billboard drawn after the walls. FrameAt may return nil to
// skip the sprite for this frame.
type Sprite interface {
	Position() geom.Vector2
	FrameAt(cam Camera, elapsed float64) *image.RGBA
}

// DoorMode selects how a closed or partly open door is intersected.
type DoorMode int

const (
	// DoorSlab treats the door as a thin panel through the tile centre that
	// slides sideways as it opens.
	DoorSlab DoorMode = iota
	// DoorEdge draws the door on the tile boundary like a wall.
	DoorEdge
)

func (m DoorMode) String() string {
	switch m {
	case DoorSlab:
		return "slab"
	case DoorEdge:
		return "edge"
	}
	return fmt.Sprintf("DoorMode(%d)", int(m))
}

func ParseDoorMode(s string) (DoorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "slab":
		return DoorSlab, nil
	case "edge":
		return DoorEdge, nil
	}
	return DoorSlab, fmt.Errorf("unknown door mode %q", s)
}

const (
	minPerpDist   = 1e-6
	minSpriteDist = 1e-4
	// y-side walls are darkened to 160/255
	sideShade = 160
	// sprite texels with less alpha are not drawn
	alphaCutoff = 10
)

var clearColor = image.NewUniform(color.RGBA{A: 255})

// Raycaster owns the framebuffer and the depth buffer and fills them once per
// Render call. It is not safe for concurrent use.
type Raycaster struct {
	w, viewH int
	atlas    *gfx.Atlas
	doorMode DoorMode

	fb      *image.RGBA
	zBuffer []float64

	// farthest-first draw order, rebuilt every frame
	spriteOrder    []int
	spriteDistance []float64

	log *logrus.Entry
}

// NewRaycaster creates a renderer for a w×viewH view. Sizes below one pixel
// are raised to one.
func NewRaycaster(w, viewH int, atlas *gfx.Atlas) *Raycaster {
	if w < 1 {
		w = 1
	}
	if viewH < 1 {
		viewH = 1
	}
	r := &Raycaster{
		w:       w,
		viewH:   viewH,
		atlas:   atlas,
		fb:      image.NewRGBA(image.Rect(0, 0, w, viewH)),
		zBuffer: make([]float64, w),
		log:     logger.Component("raycaster"),
	}
	r.log.WithFields(logrus.Fields{"width": w, "height": viewH}).Debug("raycaster created")
	return r
}

func (r *Raycaster) SetDoorMode(m DoorMode) {
	if m != r.doorMode {
		r.log.WithField("mode", m).Debug("door mode changed")
	}
	r.doorMode = m
}

func (r *Raycaster) DoorMode() DoorMode { return r.doorMode }

func (r *Raycaster) ViewSize() (int, int) { return r.w, r.viewH }

// Depth returns the per-column perpendicular wall distances of the last frame.
func (r *Raycaster) Depth() []float64 { return r.zBuffer }

// Render draws one frame: floor and sky, then walls and doors (filling the
// depth buffer), then sprites tested against it.
func (r *Raycaster) Render(cam Camera, grid Grid, sprites []Sprite, elapsed float64) *image.RGBA {
	draw.Draw(r.fb, r.fb.Bounds(), clearColor, image.Point{}, draw.Src)

	r.castFloor(cam)
	r.castWalls(cam, grid)
	r.castSprites(cam, sprites, elapsed)

	return r.fb
}

func (r *Raycaster) setPixel(x, y int, c color.RGBA) {
	i := y*r.fb.Stride + x*4
	p := r.fb.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
}
