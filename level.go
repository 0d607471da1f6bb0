// level.go
package main

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"wolfcaster/gfx"
	"wolfcaster/model"
	"wolfcaster/render"
	"wolfcaster/world"
)

// Level is one loaded floor: the tile map with its doors, where the player
// starts, the guards walking it and the props standing in it.
type Level struct {
	path  string
	floor int

	tiles  *world.TileMap
	start  geom.Vector2
	guards []*model.Guard
	props  []render.Sprite
}

func loadLevel(fsys fs.FS, path string, floor int, doorSpeed float64, guards *model.GuardTemplate, atlas *gfx.Atlas) (*Level, error) {
	lvl, err := world.Load(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", floor, err)
	}
	lvl.Map.SetDoorSpeed(doorSpeed)

	l := &Level{
		path:  path,
		floor: floor,
		tiles: lvl.Map,
		start: lvl.PlayerStart,
	}
	for _, pos := range lvl.Guards {
		l.guards = append(l.guards, guards.Spawn(pos))
	}
	for _, pos := range lvl.Decor {
		l.props = append(l.props, model.NewDecor(pos, atlas.Decor))
	}
	for _, pos := range lvl.Sentries {
		l.props = append(l.props, model.NewAnimated(pos, atlas.Guard, guards.Anim.WalkRows, guards.Anim.WalkFPS))
	}
	return l, nil
}

func (l *Level) width() int  { return l.tiles.Width() }
func (l *Level) height() int { return l.tiles.Height() }

// sprites lists everything the raycaster should billboard.
func (l *Level) sprites(dst []render.Sprite) []render.Sprite {
	dst = append(dst[:0], l.props...)
	for _, g := range l.guards {
		dst = append(dst, g)
	}
	return dst
}

func (l *Level) update(dt float64, p *model.Player) {
	for _, g := range l.guards {
		g.Update(dt, l.tiles, p)
	}
	l.tiles.Update(dt)
}

// doorInFront returns the door tile one step ahead of pos along dir, if it is
// close enough to reach.
func (l *Level) doorInFront(pos, dir geom.Vector2) (x, y int, ok bool) {
	const (
		reach    = 1.0
		maxReach = 1.6
	)
	x = int(math.Floor(pos.X + dir.X*reach))
	y = int(math.Floor(pos.Y + dir.Y*reach))
	cx, cy := float64(x)+0.5-pos.X, float64(y)+0.5-pos.Y
	if cx*cx+cy*cy > maxReach*maxReach {
		return x, y, false
	}
	return x, y, l.tiles.IsDoor(x, y)
}

// aliveGuards counts guards that can still fight.
func (l *Level) aliveGuards() int {
	n := 0
	for _, g := range l.guards {
		if g.Alive() {
			n++
		}
	}
	return n
}
