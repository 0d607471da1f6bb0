package gfx

import (
	"fmt"
	"image"
	"io/fs"

	// decoders for the sheet formats we accept
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// AtlasSpec says where every asset lives and how its sheet is cut up.
type AtlasSpec struct {
	Walls   string
	Floor   string
	Sky     string
	Guard   string
	Weapons string

	WallGrid Grid
	WallCell Cell
	DoorCell Cell

	GuardGrid Grid
	GuardRows int
	GuardCols int

	// the weapons sheet also carries the static props
	WeaponGrid  Grid
	WeaponCells []Cell
	DecorCell   Cell
}

// DefaultAtlasSpec matches the bundled asset layout. spriteSize is the side
// of one guard or weapon frame.
func DefaultAtlasSpec(spriteSize int) AtlasSpec {
	return AtlasSpec{
		Walls:   "assets/textures/walls.png",
		Floor:   "assets/textures/floor.png",
		Sky:     "assets/textures/sky.png",
		Guard:   "assets/textures/guard.png",
		Weapons: "assets/textures/weapons.png",

		WallGrid: Grid{W: 64, H: 64, Spacing: 1, OuterPad: 1},
		WallCell: Cell{Col: 0, Row: 0},
		DoorCell: Cell{Col: 0, Row: 7},

		GuardGrid: Grid{W: spriteSize, H: spriteSize, Spacing: 1},
		GuardRows: 7,
		GuardCols: 8,

		WeaponGrid:  Grid{W: spriteSize, H: spriteSize, Spacing: 1},
		WeaponCells: []Cell{{Col: 2, Row: 7}, {Col: 3, Row: 7}, {Col: 4, Row: 7}},
		DecorCell:   Cell{Col: 0, Row: 0},
	}
}

// Atlas is the decoded set of textures and frames used by the renderer and
// the game entities.
type Atlas struct {
	Wall  *Texture
	Door  *Texture
	Floor *Texture
	Sky   *Texture

	Guard  *DirectionalSheet
	Weapon []*image.RGBA
	Decor  *image.RGBA
}

// LoadAtlas decodes everything named in spec from fsys.
func LoadAtlas(fsys fs.FS, spec AtlasSpec) (*Atlas, error) {
	walls, err := decode(fsys, spec.Walls)
	if err != nil {
		return nil, err
	}

	a := &Atlas{}
	if a.Wall, err = NewTexture(spec.WallGrid.Slice(walls, spec.WallCell)); err != nil {
		return nil, fmt.Errorf("wall texture: %w", err)
	}
	if a.Door, err = NewTexture(spec.WallGrid.Slice(walls, spec.DoorCell)); err != nil {
		return nil, fmt.Errorf("door texture: %w", err)
	}
	if a.Floor, err = loadTexture(fsys, spec.Floor); err != nil {
		return nil, err
	}
	if a.Sky, err = loadTexture(fsys, spec.Sky); err != nil {
		return nil, err
	}

	guard, err := decode(fsys, spec.Guard)
	if err != nil {
		return nil, err
	}
	a.Guard = NewDirectionalSheet(guard, spec.GuardGrid, spec.GuardRows, spec.GuardCols)

	weapons, err := decode(fsys, spec.Weapons)
	if err != nil {
		return nil, err
	}
	for _, c := range spec.WeaponCells {
		a.Weapon = append(a.Weapon, spec.WeaponGrid.Slice(weapons, c))
	}
	a.Decor = spec.WeaponGrid.Slice(weapons, spec.DecorCell)

	return a, nil
}

func decode(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func loadTexture(fsys fs.FS, path string) (*Texture, error) {
	img, err := decode(fsys, path)
	if err != nil {
		return nil, err
	}
	t, err := NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return t, nil
}
