package model

import (
	"fmt"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"

	"wolfcaster/render"
)

// GuardParams are the tunables shared by every guard spawned from a template.
type GuardParams struct {
	ViewDistance    float64
	FovDegrees      float64 // full width of the view cone
	PatrolSpeed     float64
	ChaseSpeed      float64
	FireMaxDistance float64
	AlertMemory     float64 // seconds
	Health          int
	ShotDamage      int
	Difficulty      float64

	FireIntervalMin float64
	FireIntervalMax float64

	// hit chance at one tile, lost per extra tile, and its bounds
	BaseHit    float64
	HitFalloff float64
	MinHit     float64
	MaxHit     float64
}

func DefaultGuardParams() GuardParams {
	return GuardParams{
		ViewDistance:    8,
		FovDegrees:      90,
		PatrolSpeed:     1.5,
		ChaseSpeed:      2.0,
		FireMaxDistance: 7,
		AlertMemory:     2,
		Health:          3,
		ShotDamage:      10,
		Difficulty:      1,
		FireIntervalMin: 3,
		FireIntervalMax: 5,
		BaseHit:         0.65,
		HitFalloff:      0.12,
		MinHit:          0.05,
		MaxHit:          0.95,
	}
}

// NewGuardParams overlays the non-zero fields of src, any struct whose field
// names match GuardParams (config.Guard for one), on the defaults.
func NewGuardParams(src any) (GuardParams, error) {
	p := DefaultGuardParams()
	if src == nil {
		return p, nil
	}
	if err := copier.CopyWithOption(&p, src, copier.Option{IgnoreEmpty: true}); err != nil {
		return p, fmt.Errorf("guard params: %w", err)
	}
	return p, nil
}

// HitChance is the probability that a shot fired from dist tiles away lands.
func (p GuardParams) HitChance(dist float64) float64 {
	c := p.BaseHit - p.HitFalloff*max(0, dist-1)
	c *= p.Difficulty
	return geom.Clamp(c, p.MinHit, p.MaxHit)
}

// GuardAnim locates the guard animations on its sheet. Rows and columns are
// zero based.
type GuardAnim struct {
	WalkRows int
	WalkFPS  float64

	DeathRow    int
	DeathCol    int
	DeathFrames int
	DeathFPS    float64

	FireRow    int
	FireCol    int
	FireFrames int
	FireFPS    float64
	// extra ticks the last fire frame is held before the sequence ends
	FireHold int
}

func DefaultGuardAnim() GuardAnim {
	return GuardAnim{
		WalkRows:    5,
		WalkFPS:     8,
		DeathRow:    5,
		DeathFrames: 5,
		DeathFPS:    10,
		FireRow:     6,
		FireFrames:  3,
		FireFPS:     12,
		FireHold:    4,
	}
}

// PlayerTuning holds the player tunables read from configuration.
type PlayerTuning struct {
	MoveSpeed     float64
	SprintFactor  float64
	RotateDegrees float64
	Lives         int
}

func DefaultPlayerTuning() PlayerTuning {
	return PlayerTuning{
		MoveSpeed:     defaultMoveSpeed,
		SprintFactor:  defaultSprintFactor,
		RotateDegrees: defaultRotateSpeed,
		Lives:         defaultLives,
	}
}

// NewPlayerTuning overlays the non-zero fields of src on the defaults.
func NewPlayerTuning(src any) (PlayerTuning, error) {
	t := DefaultPlayerTuning()
	if src == nil {
		return t, nil
	}
	if err := copier.CopyWithOption(&t, src, copier.Option{IgnoreEmpty: true}); err != nil {
		return t, fmt.Errorf("player tuning: %w", err)
	}
	return t, nil
}

func (p *Player) Apply(t PlayerTuning) {
	p.MoveSpeed = t.MoveSpeed
	p.SprintFactor = t.SprintFactor
	p.RotateSpeed = render.Radians(t.RotateDegrees)
	p.SetLives(t.Lives)
}
