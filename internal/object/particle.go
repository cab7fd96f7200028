package object

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ParticleDecay  = 0.02
	particleShrink = 0.98
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  colorful.Color
	Life   float64 // 1.0 at spawn, removed at <= 0
	Decay  float64
	Radius float64
}

// NewParticle creates a particle from the pool with a random velocity and size.
func NewParticle(x, y float64, color colorful.Color, rng Rand) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = (rng.Float64() - 0.5) * 4
	p.VY = (rng.Float64() - 0.5) * 4
	p.Color = color
	p.Life = 1
	p.Decay = ParticleDecay
	p.Radius = rng.Float64()*3 + 1
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst emits count particles at (x,y).
func SpawnBurst(x, y float64, color colorful.Color, count int, rng Rand, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		spawner.SpawnParticle(NewParticle(x, y, color, rng))
	}
}

// Update moves and fades the particle. Steps are per tick, not per millisecond.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= p.Decay
	p.Radius *= particleShrink
}

// Dead reports whether the particle has faded out.
func (p *Particle) Dead() bool {
	return p.Life <= 0
}
