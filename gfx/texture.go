package gfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Texture is an immutable square RGBA image whose side is a power of two, so
// any integer coordinate can be wrapped into it with a mask.
type Texture struct {
	img  *image.RGBA
	size int
	mask int
}

// NewTexture copies img into a texture. The image must be square with a
// power of two side.
func NewTexture(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h {
		return nil, fmt.Errorf("texture must be square, got %dx%d", w, h)
	}
	if w <= 0 || w&(w-1) != 0 {
		return nil, fmt.Errorf("texture side %d is not a power of two", w)
	}
	return &Texture{img: toRGBA(img), size: w, mask: w - 1}, nil
}

func (t *Texture) Size() int { return t.size }

// At returns the texel at (u, v), wrapping both coordinates.
func (t *Texture) At(u, v int) color.RGBA {
	i := ((v&t.mask)*t.size + (u & t.mask)) * 4
	p := t.img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Sample maps fractional texture coordinates in [0, 1) to a texel, wrapping
// anything outside that range.
func (t *Texture) Sample(fu, fv float64) color.RGBA {
	return t.At(int(fu*float64(t.size)), int(fv*float64(t.size)))
}

// toRGBA returns an *image.RGBA with origin (0, 0) holding img's pixels.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
