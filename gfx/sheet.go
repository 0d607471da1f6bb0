package gfx

import (
	"image"
	"image/draw"
)

// Cell addresses one frame in a sprite sheet.
type Cell struct {
	Col, Row int
}

// Grid describes how frames are laid out in a sheet: w×h frames separated by
// spacing pixels, with outerPad pixels around the whole grid.
type Grid struct {
	W, H     int
	Spacing  int
	OuterPad int
}

// Slice copies one w×h cell out of sheet. A cell that does not fit inside the
// sheet yields a blank transparent frame of the same size.
func Slice(sheet image.Image, col, row, w, h, spacing, outerPad int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if sheet == nil {
		return dst
	}

	b := sheet.Bounds()
	x := outerPad + col*(w+spacing)
	y := outerPad + row*(h+spacing)
	if col < 0 || row < 0 || x+w > b.Dx() || y+h > b.Dy() {
		return dst
	}
	draw.Draw(dst, dst.Bounds(), sheet, b.Min.Add(image.Pt(x, y)), draw.Src)
	return dst
}

func (g Grid) Slice(sheet image.Image, c Cell) *image.RGBA {
	return Slice(sheet, c.Col, c.Row, g.W, g.H, g.Spacing, g.OuterPad)
}

// DirectionalSheet holds the frames of an 8-direction character sheet, one
// column per view direction and one row per animation frame.
type DirectionalSheet struct {
	rows, cols int
	frames     [][]*image.RGBA
}

func NewDirectionalSheet(sheet image.Image, g Grid, rows, cols int) *DirectionalSheet {
	d := &DirectionalSheet{rows: rows, cols: cols, frames: make([][]*image.RGBA, rows)}
	for r := 0; r < rows; r++ {
		d.frames[r] = make([]*image.RGBA, cols)
		for c := 0; c < cols; c++ {
			d.frames[r][c] = g.Slice(sheet, Cell{Col: c, Row: r})
		}
	}
	return d
}

// Frame returns nil when (row, col) is outside the sheet.
func (d *DirectionalSheet) Frame(row, col int) *image.RGBA {
	if d == nil || row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return nil
	}
	return d.frames[row][col]
}

func (d *DirectionalSheet) Rows() int { return d.rows }
func (d *DirectionalSheet) Cols() int { return d.cols }
