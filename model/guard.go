package model

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/sirupsen/logrus"

	"wolfcaster/gfx"
	"wolfcaster/logger"
	"wolfcaster/render"
)

type GuardState int

const (
	GuardIdle GuardState = iota
	GuardPatrol
	GuardAlert
	GuardChase
	GuardDying
	GuardDead
)

func (s GuardState) String() string {
	switch s {
	case GuardIdle:
		return "idle"
	case GuardPatrol:
		return "patrol"
	case GuardAlert:
		return "alert"
	case GuardChase:
		return "chase"
	case GuardDying:
		return "dying"
	case GuardDead:
		return "dead"
	}
	return "unknown"
}

// Target is what a guard hunts and shoots at.
type Target interface {
	Position() geom.Vector2
	TakeDamage(amount int) bool
}

type patrolAxis int

const (
	axisH patrolAxis = iota
	axisV
)

const (
	patrolEps = 1e-3
	// longest run scanned on each side when looking for a patrol segment
	maxPatrolScan = 128
)

var guardIDs atomic.Int64

type Guard struct {
	Entity
	ID     int64
	Params GuardParams
	Anim   GuardAnim
	Sheet  *gfx.DirectionalSheet

	state     GuardState
	lastState GuardState
	spawn     geom.Vector2
	health    int
	fovCos    float64

	lastLOS    bool
	alertTimer float64
	lastKnown  geom.Vector2

	deathTime  float64
	deathFrame int

	firing       bool
	fireTime     float64
	fireFrame    int
	fireCooldown float64

	patrolInit bool
	axis       patrolAxis
	a, b       geom.Vector2
	dirSign    float64

	rng *rand.Rand
	log *logrus.Entry
}

// NewGuard places a patrolling guard at pos. A nil rng gets a time seeded one.
func NewGuard(pos geom.Vector2, sheet *gfx.DirectionalSheet, params GuardParams, anim GuardAnim, rng *rand.Rand) *Guard {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	id := guardIDs.Add(1)
	g := &Guard{
		Entity: Entity{
			Pos:      pos,
			Dir:      geom.Vector2{X: 1},
			MapColor: color.RGBA{255, 140, 0, 255},
		},
		ID:        id,
		Params:    params,
		Anim:      anim,
		Sheet:     sheet,
		state:     GuardPatrol,
		lastState: GuardPatrol,
		spawn:     pos,
		health:    params.Health,
		fovCos:    math.Cos(render.Radians(params.FovDegrees) / 2),
		dirSign:   1,
		rng:       rng,
		log:       logger.Component("guard").WithField("guard", id),
	}
	g.fireCooldown = g.randBetween(params.FireIntervalMin, params.FireIntervalMax)
	g.log.WithFields(logrus.Fields{"x": pos.X, "y": pos.Y}).Debug("spawned")
	return g
}

func (g *Guard) State() GuardState { return g.state }
func (g *Guard) Health() int       { return g.health }
func (g *Guard) Firing() bool      { return g.firing }

func (g *Guard) Alive() bool {
	return g.state != GuardDying && g.state != GuardDead
}

// TakeDamage hits the guard for at least one point, turning it toward the
// shooter. It reports whether the hit was fatal.
func (g *Guard) TakeDamage(amount int, from geom.Vector2) bool {
	if !g.Alive() {
		return false
	}
	g.health -= max(1, amount)
	g.markAlert(from, true)
	if g.health <= 0 {
		g.setState(GuardDying, "killed")
		g.deathTime = 0
		g.deathFrame = 0
		g.firing = false
		g.fireTime = 0
		g.MapColor = color.RGBA{90, 90, 90, 255}
		return true
	}
	return false
}

// Update advances the guard by dt seconds against map m, hunting t. t may be
// nil, in which case the guard only patrols or follows its alert memory.
func (g *Guard) Update(dt float64, m Collider, t Target) {
	if !g.patrolInit && m != nil {
		g.discoverPatrolSegment(m)
		g.patrolInit = true
	}

	g.updateCommon(dt)
	if !g.Alive() {
		return
	}

	sees := t != nil && g.canSee(m, t)
	switch {
	case sees:
		g.setState(GuardChase, "line of sight")
	case g.alerted():
		g.setState(GuardChase, "alert memory")
	case g.state == GuardChase || g.state == GuardAlert:
		g.setState(GuardPatrol, "no line of sight and memory expired")
	}

	if g.lastState != g.state {
		if g.state == GuardPatrol && g.patrolInit {
			g.reattach("enter patrol")
		}
		g.lastState = g.state
	}

	switch g.state {
	case GuardChase:
		if !g.firing && t != nil && g.withinFireDistance(t.Position()) {
			g.tryStartFiring(m, t)
		}
		if g.firing && t != nil {
			g.face(t.Position())
		} else {
			target := g.lastKnown
			if sees {
				target = t.Position()
			}
			g.chase(dt, m, target)
		}
	case GuardPatrol:
		if g.patrolInit {
			g.patrolSegment(dt, m)
		} else {
			g.patrolFallback(dt, m)
		}
	}

	if l := math.Hypot(g.Dir.X, g.Dir.Y); l > 1e-6 {
		g.Dir.X /= l
		g.Dir.Y /= l
	}
}

func (g *Guard) updateCommon(dt float64) {
	if g.state == GuardDying {
		g.deathTime += dt
		idx := int(math.Floor(g.deathTime * g.Anim.DeathFPS))
		if idx >= g.Anim.DeathFrames {
			g.deathFrame = max(0, g.Anim.DeathFrames-1)
			g.setState(GuardDead, "death animation complete")
		} else {
			g.deathFrame = idx
		}
		return
	}
	if !g.Alive() {
		return
	}

	if g.firing {
		g.fireTime += dt
		virtual := g.Anim.FireFrames + max(0, g.Anim.FireHold)
		idx := int(math.Floor(g.fireTime * g.Anim.FireFPS))
		if idx >= virtual {
			g.firing = false
			g.fireTime = 0
			g.fireFrame = 0
			g.fireCooldown = g.randBetween(g.Params.FireIntervalMin, g.Params.FireIntervalMax)
			g.log.WithField("cooldown", g.fireCooldown).Debug("fire sequence complete")
		} else {
			g.fireFrame = min(idx, g.Anim.FireFrames-1)
		}
	} else if g.fireCooldown > 0 {
		g.fireCooldown -= dt
	}

	prev := g.alertTimer
	if g.alertTimer > 0 {
		g.alertTimer = max(0, g.alertTimer-dt)
	}
	if prev > 0 && g.alertTimer == 0 && !g.lastLOS {
		g.setState(GuardPatrol, "alert expired")
	}
}

func (g *Guard) alerted() bool { return g.alertTimer > 0 }

func (g *Guard) markAlert(at geom.Vector2, faceAndChase bool) {
	g.lastKnown = at
	g.alertTimer = g.Params.AlertMemory
	if faceAndChase {
		g.face(at)
		g.setState(GuardChase, "alerted")
		g.fireCooldown = min(g.fireCooldown, 0.2)
	}
}

// canSee checks distance, the view cone and then walls between the guard and
// t. Seeing the target refreshes the alert memory.
func (g *Guard) canSee(m Collider, t Target) bool {
	p := t.Position()
	dx, dy := p.X-g.Pos.X, p.Y-g.Pos.Y
	dist2 := dx*dx + dy*dy
	if dist2 > g.Params.ViewDistance*g.Params.ViewDistance {
		g.handleLOS(false)
		return false
	}

	l := math.Sqrt(dist2)
	if l < 1e-6 {
		g.handleLOS(true)
		return true
	}
	if (dx*g.Dir.X+dy*g.Dir.Y)/l < g.fovCos {
		g.handleLOS(false)
		return false
	}
	if !LineOfSight(m, g.Pos, p) {
		g.handleLOS(false)
		return false
	}
	g.handleLOS(true)
	g.markAlert(p, false)
	return true
}

func (g *Guard) handleLOS(los bool) {
	switch {
	case los && !g.lastLOS:
		g.log.Debug("acquired line of sight")
	case !los && g.lastLOS:
		g.log.WithField("memory", g.alertTimer).Debug("lost line of sight")
	}
	g.lastLOS = los
}

func (g *Guard) withinFireDistance(p geom.Vector2) bool {
	dx, dy := p.X-g.Pos.X, p.Y-g.Pos.Y
	return dx*dx+dy*dy <= g.Params.FireMaxDistance*g.Params.FireMaxDistance
}

func (g *Guard) tryStartFiring(m Collider, t Target) bool {
	if !g.Alive() || g.firing || g.fireCooldown > 0 {
		return false
	}
	if !g.canSee(m, t) {
		return false
	}

	g.firing = true
	g.fireTime = 0
	g.fireFrame = 0

	p := t.Position()
	dist := math.Hypot(p.X-g.Pos.X, p.Y-g.Pos.Y)
	chance := g.Params.HitChance(dist)
	roll := g.rng.Float64()
	hit := roll < chance
	g.log.WithFields(logrus.Fields{
		"dist":   dist,
		"chance": chance,
		"roll":   roll,
		"hit":    hit,
	}).Debug("fires")
	if hit {
		t.TakeDamage(g.Params.ShotDamage)
	}
	return true
}

func (g *Guard) chase(dt float64, m Collider, target geom.Vector2) {
	dx, dy := target.X-g.Pos.X, target.Y-g.Pos.Y
	if l := math.Hypot(dx, dy); l > 1e-6 {
		dx, dy = dx/l, dy/l
	}
	g.Dir = geom.Vector2{X: dx, Y: dy}
	step := g.Params.ChaseSpeed * dt
	g.tryMove(m, g.Pos.X+dx*step, g.Pos.Y+dy*step)
}

// discoverPatrolSegment finds the longest straight free run through the spawn
// tile, preferring the horizontal one on a tie.
func (g *Guard) discoverPatrolSegment(m Collider) {
	sx := int(math.Floor(g.spawn.X))
	sy := int(math.Floor(g.spawn.Y))

	left, right := sx, sx
	for i := 0; i < maxPatrolScan && !m.IsSolid(left-1, sy); i++ {
		left--
	}
	for i := 0; i < maxPatrolScan && !m.IsSolid(right+1, sy); i++ {
		right++
	}
	up, down := sy, sy
	for i := 0; i < maxPatrolScan && !m.IsSolid(sx, up-1); i++ {
		up--
	}
	for i := 0; i < maxPatrolScan && !m.IsSolid(sx, down+1); i++ {
		down++
	}

	if right-left >= down-up {
		g.axis = axisH
		g.a = geom.Vector2{X: float64(left) + 0.5, Y: float64(sy) + 0.5}
		g.b = geom.Vector2{X: float64(right) + 0.5, Y: float64(sy) + 0.5}
	} else {
		g.axis = axisV
		g.a = geom.Vector2{X: float64(sx) + 0.5, Y: float64(up) + 0.5}
		g.b = geom.Vector2{X: float64(sx) + 0.5, Y: float64(down) + 0.5}
	}
	g.log.WithFields(logrus.Fields{"axis": g.axis, "a": g.a, "b": g.b}).Debug("patrol segment")
	g.reattach("initial snap")
}

// reattach snaps the guard back onto its segment, heading for the nearer end.
func (g *Guard) reattach(reason string) {
	old := g.Pos
	if g.axis == axisH {
		g.Pos.X = geom.Clamp(g.Pos.X, math.Min(g.a.X, g.b.X), math.Max(g.a.X, g.b.X))
		g.Pos.Y = g.a.Y
		if math.Abs(g.b.X-g.Pos.X) < math.Abs(g.Pos.X-g.a.X) {
			g.dirSign = 1
		} else {
			g.dirSign = -1
		}
		g.Dir = geom.Vector2{X: g.dirSign}
	} else {
		g.Pos.Y = geom.Clamp(g.Pos.Y, math.Min(g.a.Y, g.b.Y), math.Max(g.a.Y, g.b.Y))
		g.Pos.X = g.a.X
		if math.Abs(g.b.Y-g.Pos.Y) < math.Abs(g.Pos.Y-g.a.Y) {
			g.dirSign = 1
		} else {
			g.dirSign = -1
		}
		g.Dir = geom.Vector2{Y: g.dirSign}
	}
	g.log.WithFields(logrus.Fields{"from": old, "to": g.Pos, "dir": g.dirSign}).Debugf("reattach (%s)", reason)
}

func (g *Guard) patrolSegment(dt float64, m Collider) {
	step := g.Params.PatrolSpeed * dt
	old := g.Pos
	flipped := false

	if g.axis == axisH {
		g.Pos.Y = g.a.Y
		g.Dir = geom.Vector2{X: g.dirSign}
		g.tryMove(m, g.Pos.X+g.dirSign*step, g.Pos.Y)
		if math.Abs(g.Pos.X-old.X) < step*0.25 {
			g.dirSign = -g.dirSign
			g.Dir.X = g.dirSign
			flipped = true
			g.log.Debug("patrol blocked, turning")
		}
		lo, hi := math.Min(g.a.X, g.b.X), math.Max(g.a.X, g.b.X)
		if g.Pos.X <= lo+patrolEps {
			g.Pos.X = lo
			if !flipped && g.dirSign < 0 {
				g.dirSign = 1
				g.Dir.X = 1
			}
		} else if g.Pos.X >= hi-patrolEps {
			g.Pos.X = hi
			if !flipped && g.dirSign > 0 {
				g.dirSign = -1
				g.Dir.X = -1
			}
		}
		return
	}

	g.Pos.X = g.a.X
	g.Dir = geom.Vector2{Y: g.dirSign}
	g.tryMove(m, g.Pos.X, g.Pos.Y+g.dirSign*step)
	if math.Abs(g.Pos.Y-old.Y) < step*0.25 {
		g.dirSign = -g.dirSign
		g.Dir.Y = g.dirSign
		flipped = true
		g.log.Debug("patrol blocked, turning")
	}
	lo, hi := math.Min(g.a.Y, g.b.Y), math.Max(g.a.Y, g.b.Y)
	if g.Pos.Y <= lo+patrolEps {
		g.Pos.Y = lo
		if !flipped && g.dirSign < 0 {
			g.dirSign = 1
			g.Dir.Y = 1
		}
	} else if g.Pos.Y >= hi-patrolEps {
		g.Pos.Y = hi
		if !flipped && g.dirSign > 0 {
			g.dirSign = -1
			g.Dir.Y = -1
		}
	}
}

// patrolFallback walks straight and turns around when blocked.
func (g *Guard) patrolFallback(dt float64, m Collider) {
	step := g.Params.PatrolSpeed * dt
	old := g.Pos
	g.tryMove(m, g.Pos.X+g.Dir.X*step, g.Pos.Y+g.Dir.Y*step)
	if math.Hypot(g.Pos.X-old.X, g.Pos.Y-old.Y) < step*0.25 {
		g.Dir.X, g.Dir.Y = -g.Dir.X, -g.Dir.Y
	}
}

func (g *Guard) setState(s GuardState, reason string) {
	if g.state == s {
		return
	}
	g.log.WithFields(logrus.Fields{"from": g.state, "to": s}).Debug(reason)
	g.state = s
}

func (g *Guard) randBetween(a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	return a + g.rng.Float64()*(b-a)
}

// FrameAt picks the death, fire or directional walk frame.
func (g *Guard) FrameAt(cam render.Camera, elapsed float64) *image.RGBA {
	if g.Sheet == nil {
		return nil
	}
	an := g.Anim
	switch {
	case g.state == GuardDead:
		return g.Sheet.Frame(an.DeathRow, an.DeathCol+max(0, an.DeathFrames-1))
	case g.state == GuardDying:
		return g.Sheet.Frame(an.DeathRow, an.DeathCol+max(0, min(an.DeathFrames-1, g.deathFrame)))
	case g.firing:
		return g.Sheet.Frame(an.FireRow, an.FireCol+max(0, min(an.FireFrames-1, g.fireFrame)))
	}
	return g.Sheet.Frame(walkRow(elapsed, an.WalkFPS, an.WalkRows), octant(g.Pos, g.Dir, cam.Pos))
}

// LineOfSight marches from a to b in quarter-tile steps and reports whether
// no solid tile lies in between. A nil map blocks nothing.
func LineOfSight(m Collider, a, b geom.Vector2) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-6 || m == nil {
		return true
	}
	sx, sy := dx/l*0.25, dy/l*0.25
	x, y := a.X, a.Y
	steps := int(math.Ceil(l * 4))
	for i := 0; i < steps; i++ {
		x += sx
		y += sy
		if m.IsSolid(int(math.Floor(x)), int(math.Floor(y))) {
			return false
		}
	}
	return true
}

// GuardTemplate spawns guards sharing one sheet and set of tunables.
type GuardTemplate struct {
	Params GuardParams
	Anim   GuardAnim
	Sheet  *gfx.DirectionalSheet
	Rand   *rand.Rand
}

func (t *GuardTemplate) Spawn(pos geom.Vector2) *Guard {
	return NewGuard(pos, t.Sheet, t.Params, t.Anim, t.Rand)
}
