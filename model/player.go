package model

import (
	"image/color"
	"math"

	"github.com/harbdog/raycaster-go/geom"

	"wolfcaster/render"
)

const (
	maxHealth = 100

	defaultMoveSpeed    = 3.0
	defaultSprintFactor = 1.5
	defaultRotateSpeed  = 120.0 // degrees per second
	defaultLives        = 3
)

// Controls is the movement intent for one tick.
type Controls struct {
	Forward, Back bool
	Left, Right   bool
	Sprint        bool
}

type Player struct {
	Entity
	Plane geom.Vector2

	MoveSpeed    float64
	SprintFactor float64
	// radians per second
	RotateSpeed float64

	Moved bool

	health int
	lives  int
	dead   bool
}

// NewPlayer starts facing angle (radians) with the given field of view.
func NewPlayer(pos geom.Vector2, angle, fovDegrees float64) *Player {
	cam := render.NewCamera(pos, angle, fovDegrees)
	return &Player{
		Entity: Entity{
			Pos:      pos,
			Dir:      cam.Dir,
			MapColor: color.RGBA{255, 0, 0, 255},
		},
		Plane:        cam.Plane,
		MoveSpeed:    defaultMoveSpeed,
		SprintFactor: defaultSprintFactor,
		RotateSpeed:  render.Radians(defaultRotateSpeed),
		health:       maxHealth,
		lives:        defaultLives,
	}
}

// Camera is the view from the player's eyes.
func (p *Player) Camera() render.Camera {
	return render.Camera{Pos: p.Pos, Dir: p.Dir, Plane: p.Plane}
}

func (p *Player) Rotate(angle float64) {
	cam := p.Camera().Rotate(angle)
	p.Dir, p.Plane = cam.Dir, cam.Plane
	p.Moved = true
}

// Move steps dist tiles along the facing, sliding along solid tiles.
func (p *Player) Move(m Collider, dist float64) {
	if dist == 0 {
		return
	}
	p.tryMove(m, p.Pos.X+p.Dir.X*dist, p.Pos.Y+p.Dir.Y*dist)
	p.Moved = true
}

// Update applies one tick of controls. Dead players do not move.
func (p *Player) Update(dt float64, c Controls, m Collider) {
	if p.dead {
		return
	}

	var turn float64
	if c.Left {
		turn -= p.RotateSpeed * dt
	}
	if c.Right {
		turn += p.RotateSpeed * dt
	}
	if turn != 0 {
		p.Rotate(turn)
	}

	speed := p.MoveSpeed
	if c.Sprint {
		speed *= p.SprintFactor
	}
	var step float64
	if c.Forward {
		step += speed * dt
	}
	if c.Back {
		step -= speed * dt
	}
	p.Move(m, step)
}

func (p *Player) Health() int { return p.health }
func (p *Player) Lives() int  { return p.lives }
func (p *Player) Dead() bool  { return p.dead }

func (p *Player) SetLives(n int) {
	if n >= 0 {
		p.lives = n
	}
}

// TakeDamage lowers health by amount and reports whether the player died.
func (p *Player) TakeDamage(amount int) bool {
	if p.dead {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		p.dead = true
	}
	return p.dead
}

func (p *Player) Heal(amount int) {
	if p.dead || amount <= 0 {
		return
	}
	p.health = int(math.Min(maxHealth, float64(p.health+amount)))
}

// LoseLife takes one life, never going below zero, and returns what is left.
func (p *Player) LoseLife() int {
	if p.lives > 0 {
		p.lives--
	}
	return p.lives
}

// Respawn puts the player back at pos with full health, keeping the facing.
func (p *Player) Respawn(pos geom.Vector2) {
	p.Pos = pos
	p.health = maxHealth
	p.dead = false
	p.Moved = true
}
