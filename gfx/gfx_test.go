package gfx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"testing/quick"

	"golang.org/x/image/bmp"
)

func checker(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8(x ^ y), 255})
		}
	}
	return img
}

func TestNewTexture(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		wantErr bool
	}{
		{"pow2 square", checker(16), false},
		{"one pixel", checker(1), false},
		{"not square", image.NewRGBA(image.Rect(0, 0, 16, 8)), true},
		{"not pow2", image.NewRGBA(image.Rect(0, 0, 12, 12)), true},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTexture(tt.img)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTextureOffsetOrigin(t *testing.T) {
	src := checker(32)
	sub := src.SubImage(image.Rect(8, 8, 24, 24))
	tex, err := NewTexture(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tex.At(0, 0), src.RGBAAt(8, 8); got != want {
		t.Errorf("At(0,0) = %v, want %v", got, want)
	}
}

func TestTextureWraps(t *testing.T) {
	tex, err := NewTexture(checker(16))
	if err != nil {
		t.Fatal(err)
	}
	f := func(u, v int16) bool {
		w := tex.Size()
		a := tex.At(int(u), int(v))
		return a == tex.At(int(u)+w, int(v)) && a == tex.At(int(u), int(v)-w)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
	if tex.Sample(0.25, 0.5) != tex.Sample(1.25, -0.5) {
		t.Error("Sample should wrap fractional coordinates")
	}
}

func TestSlice(t *testing.T) {
	// 2x2 grid of 4px cells, 1px spacing, 1px pad: sheet is 1+4+1+4+1 = 11 wide
	sheet := image.NewRGBA(image.Rect(0, 0, 11, 11))
	red := color.RGBA{255, 0, 0, 255}
	for y := 6; y < 10; y++ {
		for x := 6; x < 10; x++ {
			sheet.SetRGBA(x, y, red)
		}
	}

	tests := []struct {
		name     string
		col, row int
		want     color.RGBA
	}{
		{"filled cell", 1, 1, red},
		{"empty cell", 0, 0, color.RGBA{}},
		{"out of sheet", 2, 0, color.RGBA{}},
		{"negative", -1, 0, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Slice(sheet, tt.col, tt.row, 4, 4, 1, 1)
			if f.Bounds().Dx() != 4 || f.Bounds().Dy() != 4 {
				t.Fatalf("frame size %v, want 4x4", f.Bounds())
			}
			if got := f.RGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
			if got := f.RGBAAt(3, 3); got != tt.want {
				t.Errorf("far pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectionalSheet(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(0, 0, 3*5-1, 2*5-1))
	d := NewDirectionalSheet(sheet, Grid{W: 4, H: 4, Spacing: 1}, 2, 3)
	if d.Rows() != 2 || d.Cols() != 3 {
		t.Fatalf("sheet is %dx%d, want 2x3", d.Rows(), d.Cols())
	}
	if d.Frame(1, 2) == nil {
		t.Error("expected frame at (1,2)")
	}
	for _, rc := range [][2]int{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		if d.Frame(rc[0], rc[1]) != nil {
			t.Errorf("Frame(%d,%d) should be nil", rc[0], rc[1])
		}
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testSpec() AtlasSpec {
	spec := DefaultAtlasSpec(8)
	spec.WallGrid = Grid{W: 8, H: 8, Spacing: 1, OuterPad: 1}
	spec.Floor = "floor.bmp"
	return spec
}

func TestLoadAtlas(t *testing.T) {
	spec := testSpec()
	fsys := fstest.MapFS{
		spec.Walls:   {Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 1+9, 1+8*9)))},
		spec.Floor:   {Data: encodeBMP(t, checker(16))},
		spec.Sky:     {Data: encodePNG(t, checker(32))},
		spec.Guard:   {Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 8*9, 7*9)))},
		spec.Weapons: {Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 5*9, 8*9)))},
	}

	a, err := LoadAtlas(fsys, spec)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if a.Wall.Size() != 8 || a.Door.Size() != 8 {
		t.Errorf("wall/door size %d/%d, want 8", a.Wall.Size(), a.Door.Size())
	}
	if a.Floor.Size() != 16 || a.Sky.Size() != 32 {
		t.Errorf("floor/sky size %d/%d, want 16/32", a.Floor.Size(), a.Sky.Size())
	}
	if a.Guard.Frame(6, 7) == nil {
		t.Error("guard sheet missing last frame")
	}
	if len(a.Weapon) != 3 {
		t.Errorf("weapon frames = %d, want 3", len(a.Weapon))
	}
	if a.Decor == nil || a.Decor.Bounds().Dx() != 8 {
		t.Errorf("decor frame = %v, want an 8px cell", a.Decor)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	spec := testSpec()
	good := fstest.MapFS{
		spec.Walls:   {Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 10, 73)))},
		spec.Floor:   {Data: encodeBMP(t, checker(16))},
		spec.Sky:     {Data: encodePNG(t, checker(16))},
		spec.Guard:   {Data: encodePNG(t, checker(16))},
		spec.Weapons: {Data: encodePNG(t, checker(16))},
	}

	tests := []struct {
		name   string
		mutate func(fs fstest.MapFS)
	}{
		{"missing walls", func(fs fstest.MapFS) { delete(fs, spec.Walls) }},
		{"garbage sky", func(fs fstest.MapFS) { fs[spec.Sky] = &fstest.MapFile{Data: []byte("nope")} }},
		{"floor not pow2", func(fs fstest.MapFS) {
			fs[spec.Floor] = &fstest.MapFile{Data: encodeBMP(t, image.NewRGBA(image.Rect(0, 0, 12, 12)))}
		}},
		{"missing weapons", func(fs fstest.MapFS) { delete(fs, spec.Weapons) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fstest.MapFS{}
			for k, v := range good {
				fs[k] = v
			}
			tt.mutate(fs)
			if _, err := LoadAtlas(fs, spec); err == nil {
				t.Error("expected error")
			}
		})
	}
}
