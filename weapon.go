package main

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	bobSpeed = 6.0
	bobEase  = 4.0
	bobAmpX  = 6.0
	bobAmpY  = 4.0

	weaponScale = 2.0
)

// Weapon is the hand gun overlay: a ready frame and two firing frames, a
// fire cooldown, ammo and the walking bob.
type Weapon struct {
	frames []*ebiten.Image

	// end of each firing frame in seconds
	frameTimes [3]float64
	cooldown   float64
	rateOfFire float64 // shots per second

	Ammo int

	firing  bool
	elapsed float64

	bobTime      float64
	bobIntensity float64
}

func NewWeapon(frames []*image.RGBA, ammo int) *Weapon {
	w := &Weapon{
		frameTimes: [3]float64{0.05, 0.10, 0.18},
		rateOfFire: 4,
		Ammo:       ammo,
	}
	for _, f := range frames {
		if f != nil {
			w.frames = append(w.frames, ebiten.NewImageFromImage(f))
		}
	}
	return w
}

// Fire starts the firing animation and spends a round. It reports false while
// cooling down or out of ammo.
func (w *Weapon) Fire() bool {
	if w.cooldown > 0 || w.Ammo <= 0 {
		return false
	}
	w.cooldown = 1 / w.rateOfFire
	w.Ammo--
	w.firing = true
	w.elapsed = 0
	return true
}

func (w *Weapon) OnCooldown() bool { return w.cooldown > 0 }

func (w *Weapon) Reset() {
	w.cooldown = 0
	w.firing = false
	w.elapsed = 0
	w.bobTime = 0
	w.bobIntensity = 0
}

// Update advances the animation; moved says whether the player walked this
// tick, which eases the bob in or out.
func (w *Weapon) Update(dt float64, moved bool) {
	if w.cooldown > 0 {
		w.cooldown = max(0, w.cooldown-dt)
	}
	if w.firing {
		w.elapsed += dt
		if w.elapsed >= w.frameTimes[2] {
			w.firing = false
		}
	}
	if moved {
		w.bobTime += dt * bobSpeed
		w.bobIntensity = min(1, w.bobIntensity+dt*bobEase)
	} else {
		w.bobIntensity = max(0, w.bobIntensity-dt*bobEase)
	}
}

// Frame is the index of the frame to show: 0 ready, then 1, 2 and 1 again
// while firing.
func (w *Weapon) Frame() int {
	if !w.firing {
		return 0
	}
	switch {
	case w.elapsed < w.frameTimes[0]:
		return 1
	case w.elapsed < w.frameTimes[1]:
		return 2
	}
	return 1
}

func (w *Weapon) BobOffset() (x, y float64) {
	return math.Sin(w.bobTime) * bobAmpX * w.bobIntensity,
		math.Cos(w.bobTime*2) * bobAmpY * w.bobIntensity
}

// Draw places the current frame centred above the bottom of a view of size
// viewW x viewH.
func (w *Weapon) Draw(screen *ebiten.Image, viewW, viewH int) {
	i := w.Frame()
	if i >= len(w.frames) {
		return
	}
	img := w.frames[i]
	b := img.Bounds()
	dw, dh := float64(b.Dx())*weaponScale, float64(b.Dy())*weaponScale
	bx, by := w.BobOffset()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(weaponScale, weaponScale)
	op.GeoM.Translate(
		math.Floor((float64(viewW)-dw)/2+bx),
		math.Floor(float64(viewH)-dh+by+bobAmpY),
	)
	screen.DrawImage(img, op)
}
