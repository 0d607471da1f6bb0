// ui.go
package main

import (
	"fmt"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Fonts holds the faces used by the HUD and the menus.
type Fonts struct {
	Title  font.Face
	Large  font.Face
	Normal font.Face
	Small  font.Face
}

func NewFonts() (*Fonts, error) {
	bold, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return &Fonts{
		Title:  face(bold, 52),
		Large:  face(bold, 28),
		Normal: face(regular, 20),
		Small:  face(regular, 14),
	}, nil
}

// drawCentered draws s with its baseline at y, centred on cx.
func drawCentered(dst *ebiten.Image, s string, face font.Face, cx, y int, clr color.Color) {
	b := text.BoundString(face, s)
	text.Draw(dst, s, face, cx-b.Dx()/2, y, clr)
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A) * max(0, min(1, a)))
	return c
}

// drawDebug prints lines of diagnostics down the right hand side.
func drawDebug(screen *ebiten.Image, lines ...string) {
	x := screen.Bounds().Dx() - 200
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, 10+i*16)
	}
}

// -- hud

var (
	hudBackground = color.RGBA{0, 0, 96, 255}
	hudBox        = color.RGBA{0, 0, 64, 255}
	hudBorder     = color.RGBA{0, 100, 180, 255}
	hudLabel      = color.NRGBA{150, 200, 255, 255}
	hudValue      = color.NRGBA{255, 255, 255, 255}
)

// hudCell is one boxed section of the status bar.
type hudCell struct {
	label  string
	x, w   int
	weapon bool
}

// hudLayout splits width into the status bar sections, sized by weight.
func hudLayout(width int) []hudCell {
	sections := []struct {
		label  string
		weight int
	}{
		{"FLOOR", 2},
		{"SCORE", 4},
		{"LIVES", 2},
		{"HEALTH", 3},
		{"AMMO", 2},
		{"", 3},
	}
	total := 0
	for _, s := range sections {
		total += s.weight
	}
	cells := make([]hudCell, len(sections))
	x := 0
	for i, s := range sections {
		w := width * s.weight / total
		if i == len(sections)-1 {
			w = width - x
		}
		cells[i] = hudCell{label: s.label, x: x, w: w, weapon: s.label == ""}
		x += w
	}
	return cells
}

// HudStats are the values shown in the status bar.
type HudStats struct {
	Floor  int
	Score  int
	Lives  int
	Health int
	Ammo   int
}

func (s HudStats) value(label string) string {
	switch label {
	case "FLOOR":
		return fmt.Sprint(s.Floor)
	case "SCORE":
		return fmt.Sprint(s.Score)
	case "LIVES":
		return fmt.Sprint(s.Lives)
	case "HEALTH":
		return fmt.Sprintf("%d%%", s.Health)
	case "AMMO":
		return fmt.Sprint(s.Ammo)
	}
	return ""
}

// HUD draws the status bar below the 3D view.
type HUD struct {
	fonts  *Fonts
	cells  []hudCell
	icon   *ebiten.Image
	top, h int
}

func NewHUD(fonts *Fonts, width, top, height int, icon *ebiten.Image) *HUD {
	return &HUD{fonts: fonts, cells: hudLayout(width), icon: icon, top: top, h: height}
}

func (h *HUD) Draw(screen *ebiten.Image, s HudStats) {
	if h.h <= 0 {
		return
	}
	top := float32(h.top)
	vector.DrawFilledRect(screen, 0, top, float32(screen.Bounds().Dx()), float32(h.h), hudBackground, false)

	const pad = 4
	for _, c := range h.cells {
		x, w := float32(c.x+pad), float32(c.w-2*pad)
		y, bh := top+pad, float32(h.h-2*pad)
		vector.DrawFilledRect(screen, x, y, w, bh, hudBox, false)
		vector.StrokeRect(screen, x, y, w, bh, 2, hudBorder, false)

		cx := c.x + c.w/2
		if c.weapon {
			h.drawIcon(screen, c)
			continue
		}
		drawCentered(screen, c.label, h.fonts.Small, cx, h.top+pad+18, hudLabel)
		drawCentered(screen, s.value(c.label), h.fonts.Large, cx, h.top+h.h-pad-12, hudValue)
	}
}

func (h *HUD) drawIcon(screen *ebiten.Image, c hudCell) {
	if h.icon == nil {
		return
	}
	b := h.icon.Bounds()
	scale := float64(h.h-16) / float64(b.Dy())
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(
		float64(c.x)+(float64(c.w)-float64(b.Dx())*scale)/2,
		float64(h.top+8),
	)
	screen.DrawImage(h.icon, op)
}
