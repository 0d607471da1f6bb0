package world

import "fmt"

type Tile int

const (
	Empty Tile = iota
	Wall
	Door
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Door:
		return "door"
	}
	return fmt.Sprintf("tile(%d)", int(t))
}

// DefaultDoorSpeed is how much door progress is gained per second.
const DefaultDoorSpeed = 1.2

type door struct {
	progress float64
	opening  bool
}

// TileMap is a fixed rectangular grid of tiles plus the animation state of
// every door tile. Door orientation and slide direction are derived from the
// neighbours on each query.
type TileMap struct {
	width, height int
	tiles         []Tile
	doors         map[int]*door
	doorSpeed     float64
}

func New(width, height int) *TileMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &TileMap{
		width:     width,
		height:    height,
		tiles:     make([]Tile, width*height),
		doors:     make(map[int]*door),
		doorSpeed: DefaultDoorSpeed,
	}
}

// FromRows builds a map from row-major tiles; rows[y][x].
func FromRows(rows [][]Tile) (*TileMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty map")
	}
	w := len(rows[0])
	m := New(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), w)
		}
		for x, t := range row {
			m.Set(x, y, t)
		}
	}
	return m, nil
}

func (m *TileMap) Width() int  { return m.width }
func (m *TileMap) Height() int { return m.height }

func (m *TileMap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At returns the tile at (x, y). Anything outside the grid reads as a wall.
func (m *TileMap) At(x, y int) Tile {
	if !m.inBounds(x, y) {
		return Wall
	}
	return m.tiles[y*m.width+x]
}

// Set replaces a tile. Turning a tile into a door starts it closed; turning a
// door into anything else drops its state. Out of bounds writes are ignored.
func (m *TileMap) Set(x, y int, t Tile) {
	if !m.inBounds(x, y) {
		return
	}
	i := y*m.width + x
	m.tiles[i] = t
	if t == Door {
		if _, ok := m.doors[i]; !ok {
			m.doors[i] = &door{}
		}
		return
	}
	delete(m.doors, i)
}

func (m *TileMap) door(x, y int) *door {
	if !m.inBounds(x, y) {
		return nil
	}
	return m.doors[y*m.width+x]
}

func (m *TileMap) IsDoor(x, y int) bool { return m.At(x, y) == Door }

// IsSolid reports whether the tile blocks movement and sight: walls always,
// doors until they are fully open.
func (m *TileMap) IsSolid(x, y int) bool {
	switch m.At(x, y) {
	case Wall:
		return true
	case Door:
		return m.DoorProgress(x, y) < 1
	}
	return false
}

func (m *TileMap) IsDoorOpen(x, y int) bool {
	return m.IsDoor(x, y) && m.DoorProgress(x, y) >= 1
}

// DoorProgress is 0 for a closed door and 1 for a fully open one. Non-door
// tiles report 0.
func (m *TileMap) DoorProgress(x, y int) float64 {
	if d := m.door(x, y); d != nil {
		return d.progress
	}
	return 0
}

func (m *TileMap) DoorOpening(x, y int) bool {
	if d := m.door(x, y); d != nil {
		return d.opening
	}
	return false
}

// SetDoorProgress forces a door's progress, clamped to [0, 1].
func (m *TileMap) SetDoorProgress(x, y int, p float64) {
	d := m.door(x, y)
	if d == nil {
		return
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	d.progress = p
	if p >= 1 {
		d.opening = false
	}
}

// DoorVertical reports whether the door at (x, y) runs north-south, i.e. it
// is framed by walls to the east or west.
func (m *TileMap) DoorVertical(x, y int) bool {
	if m.At(x+1, y) == Wall || m.At(x-1, y) == Wall {
		return true
	}
	if m.At(x, y-1) == Wall || m.At(x, y+1) == Wall {
		return false
	}
	openNS, openEW := 0, 0
	if m.At(x, y-1) == Empty {
		openNS++
	}
	if m.At(x, y+1) == Empty {
		openNS++
	}
	if m.At(x-1, y) == Empty {
		openEW++
	}
	if m.At(x+1, y) == Empty {
		openEW++
	}
	return openNS > openEW
}

// DoorSign is the direction the door slab slides into as it opens: +1 toward
// the higher coordinate along the door's axis, -1 toward the lower one.
func (m *TileMap) DoorSign(x, y int) int {
	if m.DoorVertical(x, y) {
		if m.At(x, y+1) == Wall {
			return 1
		}
		if m.At(x, y-1) == Wall {
			return -1
		}
		return 1
	}
	if m.At(x+1, y) == Wall {
		return 1
	}
	if m.At(x-1, y) == Wall {
		return -1
	}
	return 1
}

// OpenDoor starts opening the door at (x, y). It returns false when there is
// no closed door there.
func (m *TileMap) OpenDoor(x, y int) bool {
	d := m.door(x, y)
	if d == nil || d.progress >= 1 {
		return false
	}
	d.opening = true
	return true
}

func (m *TileMap) SetDoorSpeed(speed float64) {
	if speed > 0 {
		m.doorSpeed = speed
	}
}

func (m *TileMap) DoorSpeed() float64 { return m.doorSpeed }

// Update advances every opening door by dt seconds. A door that reaches the
// end is snapped to exactly 1 and stops opening.
func (m *TileMap) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for _, d := range m.doors {
		if !d.opening {
			continue
		}
		d.progress += dt * m.doorSpeed
		if d.progress >= 1 {
			d.progress = 1
			d.opening = false
		}
	}
}

// Doors calls fn for every door tile in row-major order.
func (m *TileMap) Doors(fn func(x, y int)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tiles[y*m.width+x] == Door {
				fn(x, y)
			}
		}
	}
}
