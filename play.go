package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/harbdog/raycaster-go/geom"
	"github.com/sirupsen/logrus"

	"wolfcaster/logger"
	"wolfcaster/model"
	"wolfcaster/render"
)

const (
	shootFovDegrees = 7.5
	shootMaxDist    = 12.0
	shotDamage      = 1
	killScore       = 100
	startAmmo       = 99
	hitIndicator    = 0.15 // seconds
)

// time the death flash plus a short pause before respawning
var deathPause = deathFlash.Total() + 0.35

type playState struct {
	g   *Game
	log *logrus.Entry

	level  *Level
	player *model.Player

	raycaster  *render.Raycaster
	scene      *ebiten.Image
	sprites    []render.Sprite
	hud        *HUD
	weapon     *Weapon
	crosshairs *Crosshairs
	flash      *Effect

	time        float64
	score       int
	showMinimap bool
	showDebug   bool
	dying       bool
	prevPos     geom.Vector2
}

func newPlayState(g *Game, mapPath string, floor int) (*playState, error) {
	cfg := g.cfg
	s := &playState{
		g:           g,
		log:         logger.Component("play").WithField("map", mapPath),
		showMinimap: true,
		showDebug:   logger.Log.IsLevelEnabled(logrus.DebugLevel),
		crosshairs:  NewCrosshairs(8),
		flash:       NewEffect(deathFlash, deathRed),
	}

	s.player = model.NewPlayer(geom.Vector2{}, 0, cfg.Render.FovDegrees)
	s.player.Apply(g.tuning)
	if err := s.loadLevel(mapPath, floor); err != nil {
		return nil, err
	}

	mode, err := render.ParseDoorMode(cfg.Render.DoorMode)
	if err != nil {
		return nil, err
	}
	viewH := cfg.ViewHeight()
	s.raycaster = render.NewRaycaster(g.width, viewH, g.atlas)
	s.raycaster.SetDoorMode(mode)
	s.scene = ebiten.NewImage(g.width, viewH)

	s.weapon = NewWeapon(g.atlas.Weapon, startAmmo)
	var icon *ebiten.Image
	if len(g.atlas.Weapon) > 0 && g.atlas.Weapon[0] != nil {
		icon = ebiten.NewImageFromImage(g.atlas.Weapon[0])
	}
	s.hud = NewHUD(g.fonts, g.width, viewH, g.height-viewH, icon)

	s.log.WithFields(logrus.Fields{
		"floor":     floor,
		"guards":    len(s.level.guards),
		"door_mode": mode,
	}).Info("level started")
	return s, nil
}

func (s *playState) loadLevel(path string, floor int) error {
	lvl, err := loadLevel(s.g.assets, path, floor, s.g.cfg.World.DoorSpeed, s.g.guards, s.g.atlas)
	if err != nil {
		return err
	}
	s.level = lvl
	s.player.Respawn(lvl.start)
	s.prevPos = s.player.Pos
	return nil
}

func (s *playState) Update(dt float64) error {
	act := readPlayActions()
	if act.menu {
		s.g.SetState(newMenuState(s.g))
		return nil
	}
	s.time += dt

	if s.dying {
		s.flash.Update(dt)
		if s.flash.Elapsed() >= deathPause {
			return s.afterDeath()
		}
		return nil
	}

	if act.use {
		s.openDoor()
	}
	if act.fire {
		s.shoot()
	}
	if act.minimap {
		s.showMinimap = !s.showMinimap
	}
	if act.debug {
		s.showDebug = !s.showDebug
	}

	s.player.Update(dt, readControls(), s.level.tiles)
	s.level.update(dt, s.player)

	pos := s.player.Pos
	moved := math.Hypot(pos.X-s.prevPos.X, pos.Y-s.prevPos.Y) > 1e-5
	s.prevPos = pos
	s.weapon.Update(dt, moved)
	s.crosshairs.Update(dt)

	if s.player.Dead() {
		s.startDeath()
	}
	return nil
}

func (s *playState) openDoor() {
	x, y, ok := s.level.doorInFront(s.player.Pos, s.player.Dir)
	if !ok {
		return
	}
	if s.level.tiles.OpenDoor(x, y) {
		s.log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("door opening")
	}
}

func (s *playState) shoot() {
	if !s.weapon.Fire() {
		return
	}
	target := acquireTarget(s.level.guards, s.level.tiles, s.player.Pos, s.player.Dir)
	if target == nil {
		return
	}
	s.crosshairs.ActivateHitIndicator(hitIndicator)
	if target.TakeDamage(shotDamage, s.player.Pos) {
		s.score += killScore
		s.log.WithFields(logrus.Fields{"guard": target.ID, "left": s.level.aliveGuards()}).Info("guard killed")
	}
}

// acquireTarget picks the living guard closest to the crosshair inside the
// shooting cone with a clear line of sight, preferring aim over distance.
func acquireTarget(guards []*model.Guard, m model.Collider, pos, dir geom.Vector2) *model.Guard {
	var best *model.Guard
	bestScore := math.Inf(1)

	viewLen := math.Hypot(dir.X, dir.Y)
	if viewLen == 0 {
		viewLen = 1
	}
	cosThresh := math.Cos(render.Radians(shootFovDegrees))

	for _, g := range guards {
		if !g.Alive() {
			continue
		}
		dx, dy := g.Pos.X-pos.X, g.Pos.Y-pos.Y
		dist := math.Hypot(dx, dy)
		if dist > shootMaxDist || dist < 1e-9 {
			continue
		}
		dot := (dx*dir.X + dy*dir.Y) / (dist * viewLen)
		if dot < cosThresh {
			continue
		}
		if !model.LineOfSight(m, pos, g.Pos) {
			continue
		}
		aimErr := math.Acos(geom.Clamp(dot, -1, 1))
		if score := aimErr*10 + dist*0.01; score < bestScore {
			bestScore = score
			best = g
		}
	}
	return best
}

func (s *playState) startDeath() {
	if s.dying {
		return
	}
	s.dying = true
	s.flash.Start()
	s.weapon.Reset()
	left := s.player.LoseLife()
	s.log.WithField("lives", left).Info("player died")
}

func (s *playState) afterDeath() error {
	if s.player.Lives() <= 0 {
		s.g.SetState(newGameOverState(s.g, s.level.path))
		return nil
	}
	if err := s.loadLevel(s.level.path, s.level.floor); err != nil {
		return err
	}
	s.dying = false
	s.flash.Stop()
	s.weapon.Reset()
	s.weapon.Ammo = startAmmo
	return nil
}

func (s *playState) stats() HudStats {
	return HudStats{
		Floor:  s.level.floor,
		Score:  s.score,
		Lives:  s.player.Lives(),
		Health: s.player.Health(),
		Ammo:   s.weapon.Ammo,
	}
}

func (s *playState) Draw(screen *ebiten.Image) {
	s.sprites = s.level.sprites(s.sprites)
	fb := s.raycaster.Render(s.player.Camera(), s.level.tiles, s.sprites, s.time)
	s.scene.WritePixels(fb.Pix)
	screen.DrawImage(s.scene, nil)

	w, viewH := s.raycaster.ViewSize()
	if !s.dying {
		s.weapon.Draw(screen, w, viewH)
		s.crosshairs.Draw(screen, float32(w)/2, float32(viewH)/2)
	}
	if s.showMinimap {
		drawMinimap(screen, s.level, s.player)
	}
	s.hud.Draw(screen, s.stats())
	s.flash.Draw(screen)

	if s.showDebug {
		drawDebug(screen,
			fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()),
			fmt.Sprintf("pos: %.2f, %.2f", s.player.Pos.X, s.player.Pos.Y),
			fmt.Sprintf("guards: %d/%d", s.level.aliveGuards(), len(s.level.guards)),
			fmt.Sprintf("doors: %s", s.raycaster.DoorMode()),
		)
	}
}
