// minimap.go
package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wolfcaster/model"
	"wolfcaster/world"
)

const (
	minimapX      = 8
	minimapY      = 8
	minimapSize   = 160
	minimapRadius = 6
)

var (
	minimapFloor = color.RGBA{60, 60, 60, 255}
	minimapWall  = color.RGBA{200, 200, 200, 255}
	minimapDoor  = color.RGBA{140, 180, 220, 255}
	minimapOpen  = color.RGBA{90, 120, 150, 255}
	minimapPanel = color.RGBA{0, 0, 0, 150}
	minimapEdge  = color.RGBA{255, 255, 255, 120}
	minimapSelf  = color.RGBA{0, 255, 0, 255}
)

// minimapWindow picks the span x span block of tiles to show around (px, py),
// kept inside a mw x mh map when it fits.
func minimapWindow(mw, mh int, px, py float64, radius int) (startX, startY, span int) {
	span = radius*2 + 1
	cx, cy := int(math.Floor(px)), int(math.Floor(py))
	startX = max(0, min(mw-span, cx-radius))
	startY = max(0, min(mh-span, cy-radius))
	return startX, startY, span
}

func minimapTileColor(m *world.TileMap, x, y int) color.RGBA {
	switch m.At(x, y) {
	case world.Empty:
		return minimapFloor
	case world.Door:
		if m.IsDoorOpen(x, y) {
			return minimapOpen
		}
		return minimapDoor
	}
	return minimapWall
}

func drawMinimap(screen *ebiten.Image, l *Level, p *model.Player) {
	startX, startY, span := minimapWindow(l.width(), l.height(), p.Pos.X, p.Pos.Y, minimapRadius)
	s := float32(minimapSize) / float32(span)

	vector.DrawFilledRect(screen, minimapX-2, minimapY-2, minimapSize+4, minimapSize+4, minimapPanel, false)

	for my := 0; my < span; my++ {
		for mx := 0; mx < span; mx++ {
			c := minimapTileColor(l.tiles, startX+mx, startY+my)
			x := float32(minimapX) + float32(mx)*s
			y := float32(minimapY) + float32(my)*s
			vector.DrawFilledRect(screen, x, y, float32(math.Ceil(float64(s))), float32(math.Ceil(float64(s))), c, false)
		}
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(minimapX) + float32(wx-float64(startX))*s,
			float32(minimapY) + float32(wy-float64(startY))*s
	}
	inside := func(wx, wy float64) bool {
		tx, ty := int(math.Floor(wx)), int(math.Floor(wy))
		return tx >= startX && tx < startX+span && ty >= startY && ty < startY+span
	}

	for _, g := range l.guards {
		if !inside(g.Pos.X, g.Pos.Y) {
			continue
		}
		gx, gy := toScreen(g.Pos.X, g.Pos.Y)
		vector.DrawFilledRect(screen, gx-2, gy-2, 4, 4, g.MapColor, false)
		if g.Alive() {
			fx, fy := gx+float32(g.Dir.X)*6, gy+float32(g.Dir.Y)*6
			vector.StrokeLine(screen, gx, gy, fx, fy, 1, g.MapColor, false)
		}
	}

	px, py := toScreen(p.Pos.X, p.Pos.Y)
	vector.DrawFilledCircle(screen, px, py, 3, minimapSelf, false)
	vector.StrokeLine(screen, px, py, px+float32(p.Dir.X)*12, py+float32(p.Dir.Y)*12, 1, minimapSelf, false)
	for _, side := range []float64{1, -1} {
		lx := px + float32(p.Dir.X+side*p.Plane.X)*10
		ly := py + float32(p.Dir.Y+side*p.Plane.Y)*10
		vector.StrokeLine(screen, px, py, lx, ly, 1, minimapSelf, false)
	}

	vector.StrokeRect(screen, minimapX-2, minimapY-2, minimapSize+4, minimapSize+4, 1, minimapEdge, false)
}
