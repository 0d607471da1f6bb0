package main

import (
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"wolfcaster/config"
	"wolfcaster/gfx"
	"wolfcaster/logger"
	"wolfcaster/model"
)

// -- game

// State is one screen of the game: menu, title card, play or game over.
type State interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
}

// main game object
type Game struct {
	cfg    *config.Config
	assets fs.FS
	log    *logrus.Entry

	atlas  *gfx.Atlas
	fonts  *Fonts
	guards *model.GuardTemplate
	tuning model.PlayerTuning

	// window resolution
	width  int
	height int

	state State
	quit  bool
}

// NewGame loads the shared assets and opens on the menu.
func NewGame(cfg *config.Config, assets fs.FS) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		assets: assets,
		log:    logger.Component("game"),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
	g.log.WithFields(logrus.Fields{"width": g.width, "height": g.height}).Info("initializing game")

	var err error
	if g.atlas, err = gfx.LoadAtlas(assets, gfx.DefaultAtlasSpec(cfg.Assets.FrameSize)); err != nil {
		return nil, fmt.Errorf("load atlas: %w", err)
	}
	if g.fonts, err = NewFonts(); err != nil {
		return nil, err
	}

	params, err := model.NewGuardParams(cfg.Guard)
	if err != nil {
		return nil, err
	}
	g.guards = &model.GuardTemplate{
		Params: params,
		Anim:   model.DefaultGuardAnim(),
		Sheet:  g.atlas.Guard,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if g.tuning, err = model.NewPlayerTuning(cfg.Player); err != nil {
		return nil, err
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)

	g.state = newMenuState(g)
	return g, nil
}

// SetState switches screens; the new state gets its first Update next tick.
func (g *Game) SetState(s State) {
	g.log.WithField("state", fmt.Sprintf("%T", s)).Debug("state change")
	g.state = s
}

// Quit ends the run loop after the current tick.
func (g *Game) Quit() { g.quit = true }

// Run is the Ebiten Run loop caller
func (g *Game) Run() error {
	return ebiten.RunGame(g)
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Update is called every tick (1/60 [s] by default).
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())
	if err := g.state.Update(dt); err != nil {
		return err
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw is called every frame (typically 1/60[s] for 60Hz display).
func (g *Game) Draw(screen *ebiten.Image) {
	g.state.Draw(screen)
}
