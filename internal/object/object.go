// Package object holds the game entities and their per-tick behavior.
package object

import (
	"github.com/tomz197/brainrots/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Rand is a uniform random source in [0,1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bounds is the fixed world size for a session.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the world.
func (b Bounds) Center() (x, y float64) {
	return b.Width / 2, b.Height / 2
}

// Target is anything an enemy can chase.
type Target interface {
	Position() (x, y float64)
}

// Spawner receives particles created during a tick.
type Spawner interface {
	SpawnParticle(p *Particle)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

var (
	_ Destructible = (*Collectible)(nil)
	_ Destructible = (*Enemy)(nil)
	_ Releasable   = (*Particle)(nil)
	_ Target       = (*Avatar)(nil)
)
