package object

import (
	"math"

	"github.com/tomz197/brainrots/internal/physics"
)

const (
	EnemyRadius      = 10.0
	EnemySpeed       = 2.0
	EnemyDamage      = 10
	EnemyColor       = "#ff4444"
	EnemySpawnOffset = 30.0

	enemySpin = 0.1 // radians per tick, decorative
)

// Edge is one side of the world.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Enemy chases its target at constant speed.
type Enemy struct {
	X, Y   float64
	Radius float64
	Speed  float64
	Damage int
	Angle  float64

	target    Target
	destroyed bool
}

// NewEnemy creates an enemy at (x,y) pursuing target.
func NewEnemy(x, y float64, target Target) *Enemy {
	return &Enemy{
		X:      x,
		Y:      y,
		Radius: EnemyRadius,
		Speed:  EnemySpeed,
		Damage: EnemyDamage,
		target: target,
	}
}

// NewEnemyAtEdge places an enemy just outside a random edge of the world.
func NewEnemyAtEdge(b Bounds, rng Rand, target Target) *Enemy {
	edge := Edge(math.Floor(rng.Float64() * 4))
	along := rng.Float64()

	var x, y float64
	switch edge {
	case EdgeLeft:
		x, y = -EnemySpawnOffset, along*b.Height
	case EdgeRight:
		x, y = b.Width+EnemySpawnOffset, along*b.Height
	case EdgeTop:
		x, y = along*b.Width, -EnemySpawnOffset
	default:
		x, y = along*b.Width, b.Height+EnemySpawnOffset
	}
	return NewEnemy(x, y, target)
}

// Update moves straight toward the target's current position.
func (e *Enemy) Update() {
	if e.target != nil {
		tx, ty := e.target.Position()
		dist := physics.Distance(e.X, e.Y, tx, ty)
		if dist > 0 {
			e.X += (tx - e.X) / dist * e.Speed
			e.Y += (ty - e.Y) / dist * e.Speed
		}
	}
	e.Angle += enemySpin
}

// OutOfBounds reports whether the enemy has wandered margin units past any edge.
func (e *Enemy) OutOfBounds(b Bounds, margin float64) bool {
	return e.X <= -margin || e.X >= b.Width+margin ||
		e.Y <= -margin || e.Y >= b.Height+margin
}

func (e *Enemy) MarkDestroyed()    { e.destroyed = true }
func (e *Enemy) IsDestroyed() bool { return e.destroyed }
