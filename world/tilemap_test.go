package world

import (
	"math"
	"testing"
	"testing/quick"
)

func mustRows(t *testing.T, rows ...string) *TileMap {
	t.Helper()
	lvl, err := Parse(stringsReader(rows))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return lvl.Map
}

func TestAtOutOfBounds(t *testing.T) {
	m := New(3, 3)
	tests := []struct {
		name string
		x, y int
		want Tile
	}{
		{"inside", 1, 1, Empty},
		{"left", -1, 1, Wall},
		{"top", 1, -1, Wall},
		{"right", 3, 0, Wall},
		{"bottom", 0, 3, Wall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDoorOrientation(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		vertical bool
		sign     int
	}{
		{
			name: "walls east and west",
			rows: []string{
				"11111",
				"10001",
				"11D11",
				"10001",
				"11111",
			},
			vertical: true,
			sign:     1,
		},
		{
			name: "walls north and south",
			rows: []string{
				"11111",
				"10101",
				"10D01",
				"10101",
				"11111",
			},
			vertical: false,
			sign:     1,
		},
		{
			name: "vertical sliding north",
			rows: []string{
				"1111111",
				"1001001",
				"100D101",
				"1000001",
				"1111111",
			},
			vertical: true,
			sign:     -1,
		},
		{
			name: "no wall neighbours, tie goes horizontal",
			rows: []string{
				"1111111",
				"1000001",
				"1010D01",
				"1000001",
				"1111111",
			},
			vertical: false,
			sign:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustRows(t, tt.rows...)
			var dx, dy int
			m.Doors(func(x, y int) { dx, dy = x, y })
			if got := m.DoorVertical(dx, dy); got != tt.vertical {
				t.Errorf("DoorVertical = %v, want %v", got, tt.vertical)
			}
			if got := m.DoorSign(dx, dy); got != tt.sign {
				t.Errorf("DoorSign = %d, want %d", got, tt.sign)
			}
		})
	}
}

func TestDoorOrientationFallback(t *testing.T) {
	// a door with no wall neighbours picks the axis with more open tiles
	rows := [][]Tile{
		{Empty, Empty, Empty},
		{Door, Door, Door},
		{Empty, Empty, Empty},
	}
	m, err := FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	if !m.DoorVertical(1, 1) {
		t.Error("expected door between two doors with open N/S to be vertical")
	}
	m.Set(1, 0, Door)
	m.Set(1, 2, Door)
	if m.DoorVertical(1, 1) {
		t.Error("expected door surrounded by doors to be horizontal")
	}
}

func TestDoorOpening(t *testing.T) {
	m := mustRows(t,
		"11111",
		"10001",
		"11D11",
		"10001",
		"11111",
	)

	if !m.IsSolid(2, 2) {
		t.Fatal("closed door should be solid")
	}
	if !m.OpenDoor(2, 2) {
		t.Fatal("OpenDoor on a closed door should succeed")
	}
	if m.OpenDoor(1, 1) {
		t.Error("OpenDoor on an empty tile should fail")
	}
	if !m.DoorOpening(2, 2) {
		t.Fatal("door should be opening")
	}

	m.Update(0.5)
	if got := m.DoorProgress(2, 2); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("progress after 0.5s = %v, want 0.6", got)
	}
	if !m.IsSolid(2, 2) {
		t.Error("partly open door should still be solid")
	}

	for i := 0; i < 10; i++ {
		m.Update(0.1)
	}
	if got := m.DoorProgress(2, 2); got != 1.0 {
		t.Errorf("progress = %v, want exactly 1.0", got)
	}
	if m.DoorOpening(2, 2) {
		t.Error("opening flag should be cleared once fully open")
	}
	if m.IsSolid(2, 2) {
		t.Error("fully open door should not be solid")
	}
	if !m.IsDoorOpen(2, 2) {
		t.Error("IsDoorOpen should report an open door")
	}
	if m.OpenDoor(2, 2) {
		t.Error("OpenDoor on an open door should fail")
	}
}

func TestDoorSpeed(t *testing.T) {
	m := New(1, 1)
	m.Set(0, 0, Door)
	m.SetDoorSpeed(4)
	m.SetDoorSpeed(-1)
	if m.DoorSpeed() != 4 {
		t.Fatalf("DoorSpeed = %v, want 4", m.DoorSpeed())
	}
	m.OpenDoor(0, 0)
	m.Update(0.125)
	if got := m.DoorProgress(0, 0); got != 0.5 {
		t.Errorf("progress = %v, want 0.5", got)
	}
}

func TestSetClearsDoorState(t *testing.T) {
	m := New(2, 1)
	m.Set(0, 0, Door)
	m.SetDoorProgress(0, 0, 0.7)
	m.Set(0, 0, Empty)
	m.Set(0, 0, Door)
	if got := m.DoorProgress(0, 0); got != 0 {
		t.Errorf("re-placed door progress = %v, want 0", got)
	}
}

func TestSolidIffProgressBelowOne(t *testing.T) {
	m := New(1, 1)
	m.Set(0, 0, Door)

	f := func(raw float64) bool {
		if math.IsNaN(raw) {
			return true
		}
		p := math.Mod(math.Abs(raw), 1.5)
		m.SetDoorProgress(0, 0, p)
		want := math.Min(p, 1) < 1
		return m.IsSolid(0, 0) == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
