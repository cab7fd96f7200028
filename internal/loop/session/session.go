// Package session runs the single-player simulation: spawn, update, collide, prune.
package session

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/brainrots/internal/loop/config"
	"github.com/tomz197/brainrots/internal/object"
	"github.com/tomz197/brainrots/internal/physics"
)

// Session owns the entities and counters of one game.
// It is not safe for concurrent use; hosts call Tick from a single frame loop.
type Session struct {
	bounds object.Bounds
	rng    object.Rand
	log    *zap.Logger

	avatar       *object.Avatar
	collectibles []*object.Collectible
	enemies      []*object.Enemy
	particles    []*object.Particle
	toSpawn      []*object.Particle // Particles created during collision resolution

	score     int
	health    int
	collected int
	over      bool
	tick      uint64

	collectibleTimer float64
	enemyTimer       float64

	grid *physics.SpatialGrid
}

var _ object.Spawner = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithRand substitutes the random source (e.g. a seeded one for tests).
func WithRand(rng object.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger used for session events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates a session for a world of the given size.
func New(bounds object.Bounds, opts ...Option) *Session {
	s := &Session{
		bounds: bounds,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    zap.NewNop(),
		grid:   physics.NewSpatialGrid(bounds.Width, bounds.Height, config.CollectGridCellSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset restores the initial state: full health, zero counters, no entities.
func (s *Session) Reset() {
	release(s.particles)
	s.avatar = object.NewAvatar(s.bounds.Center())
	s.collectibles = nil
	s.enemies = nil
	s.particles = nil
	s.toSpawn = nil
	s.score = 0
	s.health = config.InitialHealth
	s.collected = 0
	s.over = false
	s.tick = 0
	s.collectibleTimer = 0
	s.enemyTimer = 0
}

// IsGameOver reports whether health has run out. Tick is a no-op until Reset.
func (s *Session) IsGameOver() bool {
	return s.over
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Health returns the current health.
func (s *Session) Health() int { return s.health }

// Collected returns the number of collectibles picked up.
func (s *Session) Collected() int { return s.collected }

// SpawnParticle queues a particle created during the tick. Implements object.Spawner.
func (s *Session) SpawnParticle(p *object.Particle) {
	s.toSpawn = append(s.toSpawn, p)
}

// Avatar returns the player's avatar.
func (s *Session) Avatar() *object.Avatar {
	return s.avatar
}

// Tick advances the simulation by one frame and returns the resulting state.
func (s *Session) Tick(deltaMs float64, in object.Input) Snapshot {
	if s.over {
		return s.Snapshot()
	}
	if deltaMs < 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		deltaMs = 0
	}
	s.tick++

	// Input, then keep the avatar inside the world
	s.avatar.Move(in)
	s.avatar.Clamp(s.bounds)

	s.updateSpawners(deltaMs)
	s.updateObjects(deltaMs)
	s.checkCollisions()
	s.prune()

	if s.health == 0 {
		s.over = true
		s.log.Info("session over",
			zap.Int("score", s.score),
			zap.Int("collected", s.collected),
			zap.Uint64("ticks", s.tick))
	}

	return s.Snapshot()
}

// updateSpawners accumulates frame time and spawns one entity per expired timer.
// Overshoot past the interval is dropped, not carried into the next period.
func (s *Session) updateSpawners(deltaMs float64) {
	s.collectibleTimer += deltaMs
	if s.collectibleTimer > config.CollectibleSpawnMs {
		x := s.rng.Float64() * s.bounds.Width
		y := s.rng.Float64() * s.bounds.Height
		c := object.NewCollectible(x, y, s.rng)
		s.collectibles = append(s.collectibles, c)
		s.collectibleTimer = 0
		s.log.Debug("collectible spawned",
			zap.Stringer("rarity", c.Rarity),
			zap.Bool("mutated", c.Mutated))
	}

	s.enemyTimer += deltaMs
	if s.enemyTimer > config.EnemySpawnMs {
		s.enemies = append(s.enemies, object.NewEnemyAtEdge(s.bounds, s.rng, s.avatar))
		s.enemyTimer = 0
	}
}

// updateObjects advances every entity by one tick.
func (s *Session) updateObjects(deltaMs float64) {
	for _, c := range s.collectibles {
		c.Update(deltaMs)
	}
	for _, e := range s.enemies {
		e.Update()
	}
	for _, p := range s.particles {
		p.Update()
	}
}

// checkCollisions resolves every avatar overlap found this tick.
// Entities are only marked here; removal happens in prune after the full pass.
func (s *Session) checkCollisions() {
	ax, ay := s.avatar.Position()
	ar := s.avatar.Radius

	s.grid.Clear()
	for i, c := range s.collectibles {
		s.grid.Insert(c.X, c.Y, i)
	}
	s.grid.QueryAround(ax, ay, func(i int) bool {
		c := s.collectibles[i]
		if !c.IsDestroyed() && physics.CirclesOverlap(ax, ay, ar, c.X, c.Y, c.Radius) {
			s.collect(c)
		}
		return false
	})

	for _, e := range s.enemies {
		if e.IsDestroyed() {
			continue
		}
		if physics.CirclesOverlap(ax, ay, ar, e.X, e.Y, e.Radius) {
			s.takeDamage(e.Damage)
			e.MarkDestroyed()
		}
	}

	s.particles = append(s.particles, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

func (s *Session) collect(c *object.Collectible) {
	c.MarkDestroyed()
	s.score += c.Points
	s.collected++
	object.SpawnBurst(c.X, c.Y, c.Color(), config.CollectBurstSize, s.rng, s)
	s.log.Debug("collected",
		zap.Stringer("rarity", c.Rarity),
		zap.Int("points", c.Points),
		zap.Int("score", s.score))
}

func (s *Session) takeDamage(damage int) {
	s.health -= damage
	if s.health < 0 {
		s.health = 0
	}
	s.log.Debug("hit", zap.Int("damage", damage), zap.Int("health", s.health))
}

// prune compacts the entity slices, dropping collected, off-screen and faded entities.
func (s *Session) prune() {
	s.collectibles = keepAlive(s.collectibles, nil)
	s.enemies = keepAlive(s.enemies, func(e *object.Enemy) bool {
		return e.OutOfBounds(s.bounds, config.EnemyCleanupMargin)
	})

	keptP := s.particles[:0]
	for _, p := range s.particles {
		if p.Dead() {
			p.Release()
			continue
		}
		keptP = append(keptP, p)
	}
	clear(s.particles[len(keptP):])
	s.particles = keptP
}

// keepAlive compacts items in place, dropping destroyed ones and any for which
// gone reports true. A nil gone only drops destroyed items.
func keepAlive[T object.Destructible](items []T, gone func(T) bool) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() || (gone != nil && gone(it)) {
			continue
		}
		kept = append(kept, it)
	}
	clear(items[len(kept):])
	return kept
}

// release returns every pooled item to its pool.
func release[T object.Releasable](items []T) {
	for _, it := range items {
		it.Release()
	}
}
