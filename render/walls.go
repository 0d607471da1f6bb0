package render

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"wolfcaster/gfx"
	"wolfcaster/world"
)

// rayHit is where a column's ray stopped.
type rayHit struct {
	perpDist float64
	// fractional position along the hit face, in [0, 1)
	wallX float64
	// 0 when an x-side (vertical grid line) was hit, 1 for a y-side
	side int
	door bool
}

func (r *Raycaster) castWalls(cam Camera, grid Grid) {
	for x := 0; x < r.w; x++ {
		ray := cam.RayDir(x, r.w)
		hit := r.castRay(cam.Pos, ray, grid)
		r.zBuffer[x] = hit.perpDist
		r.drawStrip(x, ray, hit)
	}
}

// castRay walks the grid from pos along ray until it meets a wall or the
// solid part of a door. Tiles outside the grid read as walls, so the walk
// always ends.
func (r *Raycaster) castRay(pos, ray geom.Vector2, grid Grid) rayHit {
	mapX, mapY := int(math.Floor(pos.X)), int(math.Floor(pos.Y))

	deltaDistX, deltaDistY := 1e30, 1e30
	if ray.X != 0 {
		deltaDistX = math.Abs(1 / ray.X)
	}
	if ray.Y != 0 {
		deltaDistY = math.Abs(1 / ray.Y)
	}

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if ray.X < 0 {
		stepX = -1
		sideDistX = (pos.X - float64(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float64(mapX) + 1.0 - pos.X) * deltaDistX
	}
	if ray.Y < 0 {
		stepY = -1
		sideDistY = (pos.Y - float64(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float64(mapY) + 1.0 - pos.Y) * deltaDistY
	}

	side := 0
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			side = 0
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			side = 1
		}

		switch grid.At(mapX, mapY) {
		case world.Wall:
			return edgeHit(pos, ray, mapX, mapY, stepX, stepY, side, false)
		case world.Door:
			prog := grid.DoorProgress(mapX, mapY)
			if prog >= 1 {
				continue
			}
			if r.doorMode == DoorEdge {
				return edgeHit(pos, ray, mapX, mapY, stepX, stepY, side, true)
			}
			if hit, ok := slabHit(pos, ray, mapX, mapY, prog, grid); ok {
				return hit
			}
		}
	}
}

// edgeHit builds the hit on the tile boundary the ray just crossed.
func edgeHit(pos, ray geom.Vector2, mapX, mapY, stepX, stepY, side int, door bool) rayHit {
	var perpDist float64
	if side == 0 {
		perpDist = (float64(mapX) - pos.X + float64(1-stepX)/2) / nonZero(ray.X)
	} else {
		perpDist = (float64(mapY) - pos.Y + float64(1-stepY)/2) / nonZero(ray.Y)
	}
	if perpDist < minPerpDist {
		perpDist = minPerpDist
	}

	var wallX float64
	if side == 0 {
		wallX = pos.Y + perpDist*ray.Y
	} else {
		wallX = pos.X + perpDist*ray.X
	}
	wallX -= math.Floor(wallX)

	return rayHit{perpDist: perpDist, wallX: wallX, side: side, door: door}
}

// slabHit intersects the ray with the door panel through the centre of tile
// (mapX, mapY). The panel covers [t0+prog, t0+1) of the tile when it slides
// toward the higher coordinate and [t0, t0+1-prog) otherwise.
func slabHit(pos, ray geom.Vector2, mapX, mapY int, prog float64, grid Grid) (rayHit, bool) {
	sign := grid.DoorSign(mapX, mapY)

	// along is the ray component crossing the panel plane, across the one
	// running along the panel
	var origin, along, originAcross, across, t0 float64
	var side int
	if grid.DoorVertical(mapX, mapY) {
		origin, along = float64(mapX)+0.5-pos.X, ray.X
		originAcross, across = pos.Y, ray.Y
		t0 = float64(mapY)
		side = 0
	} else {
		origin, along = float64(mapY)+0.5-pos.Y, ray.Y
		originAcross, across = pos.X, ray.X
		t0 = float64(mapX)
		side = 1
	}

	if math.Abs(along) < 1e-9 {
		return rayHit{}, false
	}
	tRay := origin / along
	if tRay <= 0 {
		return rayHit{}, false
	}
	hitAt := originAcross + tRay*across

	lo, hi := t0+prog, t0+1
	if sign < 0 {
		lo, hi = t0, t0+1-prog
	}
	if hitAt < lo || hitAt >= hi {
		return rayHit{}, false
	}

	span := math.Max(minPerpDist, hi-lo)
	return rayHit{
		perpDist: math.Max(tRay, minPerpDist),
		wallX:    (hitAt - lo) / span,
		side:     side,
		door:     true,
	}, true
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1e-6
	}
	return v
}

// drawStrip paints the textured vertical strip for column x.
func (r *Raycaster) drawStrip(x int, ray geom.Vector2, hit rayHit) {
	var tex *gfx.Texture
	if r.atlas != nil {
		tex = r.atlas.Wall
		if hit.door {
			tex = r.atlas.Door
		}
	}
	if tex == nil {
		return
	}
	size := tex.Size()

	lineHeight := int(float64(r.viewH) / hit.perpDist)
	if lineHeight < 1 {
		lineHeight = 1
	}
	drawStart := -lineHeight/2 + r.viewH/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd := lineHeight/2 + r.viewH/2
	if drawEnd >= r.viewH {
		drawEnd = r.viewH - 1
	}

	texX := int(hit.wallX * float64(size))
	if !hit.door {
		if hit.side == 0 && ray.X > 0 {
			texX = size - texX - 1
		}
		if hit.side == 1 && ray.Y < 0 {
			texX = size - texX - 1
		}
	}
	texX = int(geom.Clamp(float64(texX), 0, float64(size-1)))

	shade := hit.side == 1 && !hit.door

	step := float64(size) / float64(lineHeight)
	texPos := (float64(drawStart) - float64(r.viewH)/2 + float64(lineHeight)/2) * step
	for y := drawStart; y <= drawEnd; y++ {
		c := tex.At(texX, int(texPos))
		texPos += step
		if shade {
			c.R = uint8(uint32(c.R) * sideShade / 255)
			c.G = uint8(uint32(c.G) * sideShade / 255)
			c.B = uint8(uint32(c.B) * sideShade / 255)
		}
		r.setPixel(x, y, c)
	}
}
