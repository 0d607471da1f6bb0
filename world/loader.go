package world

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/harbdog/raycaster-go/geom"
)

// map file glyphs
const (
	glyphWall   = '1'
	glyphDoor   = 'D'
	glyphPlayer = 'P'
	glyphGuard  = 'G'
	glyphDecor  = 'T'
	glyphSentry = 'A'
)

// Level is a parsed map file: the grid plus the markers that were removed
// from it.
type Level struct {
	Map         *TileMap
	PlayerStart geom.Vector2
	Guards      []geom.Vector2
	// static props and animated sentries, at tile centres
	Decor    []geom.Vector2
	Sentries []geom.Vector2
}

var defaultStart = geom.Vector2{X: 1.5, Y: 1.5}

// Parse reads a text map. Every non-blank line is one row after trimming;
// all rows must have the same length.
func Parse(r io.Reader) (*Level, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty map")
	}

	w := len(rows[0])
	lvl := &Level{
		Map:         New(w, len(rows)),
		PlayerStart: defaultStart,
	}

	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			centre := geom.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			switch row[x] {
			case glyphWall:
				lvl.Map.Set(x, y, Wall)
			case glyphDoor:
				lvl.Map.Set(x, y, Door)
			case glyphPlayer:
				// the last marker wins
				lvl.PlayerStart = centre
			case glyphGuard:
				lvl.Guards = append(lvl.Guards, centre)
			case glyphDecor:
				lvl.Decor = append(lvl.Decor, centre)
			case glyphSentry:
				lvl.Sentries = append(lvl.Sentries, centre)
			}
		}
	}

	return lvl, nil
}

// Load parses the map file at path inside fsys.
func Load(fsys fs.FS, path string) (*Level, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	lvl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return lvl, nil
}
