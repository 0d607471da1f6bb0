package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Fade is a fade in, hold, fade out envelope over time.
type Fade struct {
	In, Hold, Out float64
}

var (
	deathFlash = Fade{In: 0.08, Hold: 0.15, Out: 0.60}
	titleCard  = Fade{In: 0.60, Hold: 0.80, Out: 0.40}

	deathRed = color.RGBA{200, 20, 20, 255}
)

func (f Fade) Total() float64 { return f.In + f.Hold + f.Out }

// Alpha returns the opacity in [0, 1] at t seconds.
func (f Fade) Alpha(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t < f.In:
		return t / f.In
	case t < f.In+f.Hold:
		return 1
	case t < f.Total():
		return max(0, 1-(t-f.In-f.Hold)/f.Out)
	}
	return 0
}

// Effect is a full screen colour overlay driven by a Fade.
type Effect struct {
	fade    Fade
	clr     color.RGBA
	elapsed float64
	active  bool
}

func NewEffect(fade Fade, clr color.RGBA) *Effect {
	return &Effect{fade: fade, clr: clr}
}

func (e *Effect) Start() {
	e.elapsed = 0
	e.active = true
}

func (e *Effect) Stop() {
	e.elapsed = 0
	e.active = false
}

func (e *Effect) Update(dt float64) {
	if e.active {
		e.elapsed += dt
	}
}

func (e *Effect) Elapsed() float64 { return e.elapsed }

func (e *Effect) Draw(screen *ebiten.Image) {
	if !e.active {
		return
	}
	a := e.fade.Alpha(e.elapsed)
	if a <= 0 {
		return
	}
	b := screen.Bounds()
	c := e.clr
	c.R = uint8(float64(c.R) * a)
	c.G = uint8(float64(c.G) * a)
	c.B = uint8(float64(c.B) * a)
	c.A = uint8(255 * a)
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}
