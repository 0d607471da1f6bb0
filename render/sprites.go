package render

import "math"

// castSprites projects every sprite, farthest first, and draws the columns
// that are closer than the wall recorded in the depth buffer.
func (r *Raycaster) castSprites(cam Camera, sprites []Sprite, elapsed float64) {
	n := len(sprites)
	if n == 0 {
		return
	}

	if cap(r.spriteOrder) < n {
		r.spriteOrder = make([]int, n)
		r.spriteDistance = make([]float64, n)
	}
	r.spriteOrder = r.spriteOrder[:n]
	r.spriteDistance = r.spriteDistance[:n]
	for i, s := range sprites {
		r.spriteOrder[i] = i
		if s == nil {
			// nil entries sort last and are skipped
			r.spriteDistance[i] = -1
			continue
		}
		p := s.Position()
		dx, dy := cam.Pos.X-p.X, cam.Pos.Y-p.Y
		r.spriteDistance[i] = dx*dx + dy*dy
	}
	combSort(r.spriteOrder, r.spriteDistance, n)

	for i := 0; i < n; i++ {
		s := sprites[r.spriteOrder[i]]
		if s == nil {
			continue
		}
		r.castSprite(cam, s, elapsed)
	}
}

func (r *Raycaster) castSprite(cam Camera, s Sprite, elapsed float64) {
	transformX, transformY := cam.Transform(s.Position())
	if transformY <= minSpriteDist {
		return
	}

	img := s.FrameAt(cam, elapsed)
	if img == nil {
		return
	}
	b := img.Bounds()
	texW, texH := b.Dx(), b.Dy()
	if texW == 0 || texH == 0 {
		return
	}

	spriteScreenX := int(float64(r.w) / 2 * (1 + transformX/transformY))
	spriteHeight := int(math.Abs(float64(r.viewH) / transformY))
	if spriteHeight == 0 {
		return
	}
	spriteWidth := spriteHeight

	drawStartY := -spriteHeight/2 + r.viewH/2
	if drawStartY < 0 {
		drawStartY = 0
	}
	drawEndY := spriteHeight/2 + r.viewH/2
	if drawEndY >= r.viewH {
		drawEndY = r.viewH - 1
	}
	drawStartX := -spriteWidth/2 + spriteScreenX
	if drawStartX < 0 {
		drawStartX = 0
	}
	drawEndX := spriteWidth/2 + spriteScreenX
	if drawEndX >= r.w {
		drawEndX = r.w - 1
	}

	step := float64(texH) / float64(spriteHeight)
	left := float64(-spriteWidth)/2 + float64(spriteScreenX)

	for stripe := drawStartX; stripe <= drawEndX; stripe++ {
		if transformY >= r.zBuffer[stripe] {
			continue
		}
		texX := int((float64(stripe) - left) * float64(texW) / float64(spriteWidth))
		if texX < 0 {
			texX = 0
		} else if texX >= texW {
			texX = texW - 1
		}

		texPos := (float64(drawStartY) - float64(r.viewH)/2 + float64(spriteHeight)/2) * step
		for y := drawStartY; y <= drawEndY; y++ {
			texY := int(texPos)
			texPos += step
			if texY < 0 || texY >= texH {
				continue
			}
			i := img.PixOffset(b.Min.X+texX, b.Min.Y+texY)
			if img.Pix[i+3] < alphaCutoff {
				continue
			}
			j := y*r.fb.Stride + stripe*4
			r.fb.Pix[j] = img.Pix[i]
			r.fb.Pix[j+1] = img.Pix[i+1]
			r.fb.Pix[j+2] = img.Pix[i+2]
			r.fb.Pix[j+3] = 255
		}
	}
}

// combSort orders indices by descending distance, moving both slices
// together.
func combSort(order []int, dist []float64, amount int) {
	gap := amount
	swapped := false
	for gap > 1 || swapped {
		gap = (gap * 10) / 13
		if gap == 9 || gap == 10 {
			gap = 11
		}
		if gap < 1 {
			gap = 1
		}
		swapped = false
		for i := 0; i < amount-gap; i++ {
			j := i + gap
			if dist[i] < dist[j] {
				dist[i], dist[j] = dist[j], dist[i]
				order[i], order[j] = order[j], order[i]
				swapped = true
			}
		}
	}
}
