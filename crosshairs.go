package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Crosshairs marks the screen centre and flashes when a shot lands.
type Crosshairs struct {
	size     float32
	hitTimer float64
}

func NewCrosshairs(size float32) *Crosshairs {
	return &Crosshairs{size: size}
}

func (c *Crosshairs) ActivateHitIndicator(seconds float64) {
	c.hitTimer = seconds
}

func (c *Crosshairs) IsHitIndicatorActive() bool {
	return c.hitTimer > 0
}

func (c *Crosshairs) Update(dt float64) {
	if c.hitTimer > 0 {
		c.hitTimer = max(0, c.hitTimer-dt)
	}
}

func (c *Crosshairs) Draw(screen *ebiten.Image, cx, cy float32) {
	clr := color.RGBA{255, 255, 255, 160}
	if c.IsHitIndicatorActive() {
		clr = color.RGBA{255, 40, 40, 230}
	}
	gap := c.size / 3
	vector.StrokeLine(screen, cx-c.size, cy, cx-gap, cy, 1, clr, false)
	vector.StrokeLine(screen, cx+gap, cy, cx+c.size, cy, 1, clr, false)
	vector.StrokeLine(screen, cx, cy-c.size, cx, cy-gap, 1, clr, false)
	vector.StrokeLine(screen, cx, cy+gap, cx, cy+c.size, 1, clr, false)
}
