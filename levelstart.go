package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// levelStartState shows the floor title card before play begins.
type levelStartState struct {
	g       *Game
	mapPath string
	floor   int
	t       float64
	done    bool
}

func newLevelStartState(g *Game, mapPath string, floor int) *levelStartState {
	if mapPath == "" {
		mapPath = g.cfg.World.Map
	}
	return &levelStartState{g: g, mapPath: mapPath, floor: max(1, floor)}
}

func (s *levelStartState) Update(dt float64) error {
	if justPressed(ebiten.KeyEscape) {
		s.g.SetState(newMenuState(s.g))
		return nil
	}
	if justPressed(ebiten.KeyEnter) {
		return s.startGameplay()
	}
	if s.done {
		return nil
	}
	s.t += dt
	if s.t >= titleCard.Total() {
		return s.startGameplay()
	}
	return nil
}

func (s *levelStartState) startGameplay() error {
	if s.done {
		return nil
	}
	s.done = true
	play, err := newPlayState(s.g, s.mapPath, s.floor)
	if err != nil {
		return err
	}
	s.g.SetState(play)
	return nil
}

func (s *levelStartState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{8, 10, 16, 255})
	w, h := s.g.width, s.g.height
	a := titleCard.Alpha(s.t)

	drawCentered(screen, fmt.Sprintf("FLOOR %d", s.floor), s.g.fonts.Title, w/2, h/2-12, withAlpha(color.NRGBA{230, 240, 255, 255}, a))
	drawCentered(screen, "Get psyched!", s.g.fonts.Normal, w/2, h/2+28, withAlpha(color.NRGBA{160, 200, 255, 255}, a))
	drawCentered(screen, "ENTER to skip, ESC for the menu", s.g.fonts.Small, w/2, h-28, color.NRGBA{255, 255, 255, 120})
}
