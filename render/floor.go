package render

import "math"

// castFloor fills the rows below the horizon with the floor texture and the
// mirrored rows above it with the sky, both mapped through the same row
// distance so they stay perspective correct.
func (r *Raycaster) castFloor(cam Camera) {
	if r.atlas == nil || r.atlas.Floor == nil {
		return
	}
	floor, sky := r.atlas.Floor, r.atlas.Sky
	floorSize := float64(floor.Size())

	rayDirX0 := cam.Dir.X - cam.Plane.X
	rayDirY0 := cam.Dir.Y - cam.Plane.Y
	rayDirX1 := cam.Dir.X + cam.Plane.X
	rayDirY1 := cam.Dir.Y + cam.Plane.Y

	horizon := r.viewH / 2
	halfH := float64(r.viewH) / 2

	for y := horizon + 1; y < r.viewH; y++ {
		p := float64(y) - halfH
		if p <= 0 {
			continue
		}
		rowDistance := halfH / p

		stepX := rowDistance * (rayDirX1 - rayDirX0) / float64(r.w)
		stepY := rowDistance * (rayDirY1 - rayDirY0) / float64(r.w)
		floorX := cam.Pos.X + rowDistance*rayDirX0
		floorY := cam.Pos.Y + rowDistance*rayDirY0

		skyY := r.viewH - 1 - y

		for x := 0; x < r.w; x++ {
			fracX := floorX - math.Floor(floorX)
			fracY := floorY - math.Floor(floorY)
			floorX += stepX
			floorY += stepY

			r.setPixel(x, y, floor.At(int(fracX*floorSize), int(fracY*floorSize)))

			if sky != nil && skyY >= 0 {
				r.setPixel(x, skyY, sky.Sample(fracX, fracY))
			}
		}
	}
}
