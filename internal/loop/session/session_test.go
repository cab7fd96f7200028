package session

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/brainrots/internal/loop/config"
	"github.com/tomz197/brainrots/internal/object"
)

var world = object.Bounds{Width: 800, Height: 600}

// seqRand returns the scripted values in order, cycling when exhausted.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newSeeded(seed int64) *Session {
	return New(world, WithRand(rand.New(rand.NewSource(seed))))
}

func TestNewSessionInitialState(t *testing.T) {
	s := newSeeded(1)
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Health != 100 || snap.Collected != 0 || snap.GameOver {
		t.Fatalf("unexpected initial counters %+v", snap)
	}
	if snap.Avatar.X != 400 || snap.Avatar.Y != 300 || snap.Avatar.Radius != 15 {
		t.Fatalf("avatar = %+v, want centered radius 15", snap.Avatar)
	}
	if len(snap.Collectibles)+len(snap.Enemies)+len(snap.Particles) != 0 {
		t.Fatalf("expected empty world, got %+v", snap)
	}
}

func TestCollectScenario(t *testing.T) {
	s := newSeeded(1)
	c := object.NewCollectibleOf(405, 300, object.RarityEpic, false)
	s.addCollectible(c)

	snap := s.Tick(16, object.Input{})

	if len(snap.Collectibles) != 0 {
		t.Fatalf("collectible not removed: %+v", snap.Collectibles)
	}
	if snap.Score != 100 || snap.Collected != 1 {
		t.Fatalf("score=%d collected=%d, want 100 and 1", snap.Score, snap.Collected)
	}
	if len(snap.Particles) != config.CollectBurstSize {
		t.Fatalf("got %d particles, want %d", len(snap.Particles), config.CollectBurstSize)
	}
	for _, p := range snap.Particles {
		if p.X != 405 || math.Abs(p.Y-300) > 5 {
			t.Fatalf("particle at (%v,%v), want at the collectible", p.X, p.Y)
		}
		if p.Life != 1 {
			t.Fatalf("new particle life = %v, want 1", p.Life)
		}
		if p.Color != object.RarityEpic.Info().Color.Hex() {
			t.Fatalf("particle color = %s, want tier color", p.Color)
		}
	}
}

func TestTouchingCollectibleIsNotCollected(t *testing.T) {
	s := newSeeded(1)
	// Distance exactly 27 = 15 + 12 on the x axis; bob only moves y, which
	// pushes the distance further out.
	s.addCollectible(object.NewCollectibleOf(427, 300, object.RarityCommon, false))
	snap := s.Tick(0, object.Input{})
	if snap.Collected != 0 || len(snap.Collectibles) != 1 {
		t.Fatalf("touching collectible was collected: %+v", snap)
	}
}

func TestAllOverlappingCollectiblesResolveInOneTick(t *testing.T) {
	s := newSeeded(1)
	s.addCollectible(object.NewCollectibleOf(400, 300, object.RarityCommon, false))
	s.addCollectible(object.NewCollectibleOf(410, 300, object.RarityMythic, true))
	s.addCollectible(object.NewCollectibleOf(700, 100, object.RarityRare, false))

	snap := s.Tick(16, object.Input{})
	if snap.Collected != 2 || snap.Score != 10+1000 {
		t.Fatalf("collected=%d score=%d, want 2 and 1010", snap.Collected, snap.Score)
	}
	if len(snap.Collectibles) != 1 || snap.Collectibles[0].Tier != "rare" {
		t.Fatalf("remaining collectibles = %+v", snap.Collectibles)
	}
	if len(snap.Particles) != 10 {
		t.Fatalf("particles = %d, want 10", len(snap.Particles))
	}
}

func TestEnemyHitDamagesAndRemoves(t *testing.T) {
	s := newSeeded(1)
	s.addEnemy(410, 300)
	s.addEnemy(405, 305)

	snap := s.Tick(16, object.Input{})
	if snap.Health != 80 {
		t.Fatalf("health = %d, want 80", snap.Health)
	}
	if len(snap.Enemies) != 0 {
		t.Fatalf("enemies not removed: %+v", snap.Enemies)
	}
}

func TestHealthClampsAndEndsSession(t *testing.T) {
	s := newSeeded(1)
	for i := 0; i < 11; i++ {
		s.addEnemy(400, 300)
	}
	snap := s.Tick(16, object.Input{})
	if snap.Health != 0 {
		t.Fatalf("health = %d, want clamped to 0", snap.Health)
	}
	if !snap.GameOver || !s.IsGameOver() {
		t.Fatal("session should be over")
	}

	tick := snap.Tick
	s.addCollectible(object.NewCollectibleOf(400, 300, object.RarityCommon, false))
	after := s.Tick(16, object.Input{Right: true})
	if after.Tick != tick || after.Score != 0 || after.Avatar.X != 400 {
		t.Fatalf("tick processed after game over: %+v", after)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := newSeeded(3)
	for i := 0; i < 500; i++ {
		s.Tick(50, object.Input{Right: i%3 == 0, Down: i%5 == 0})
	}
	s.addCollectible(object.NewCollectibleOf(s.Avatar().X, s.Avatar().Y, object.RarityRare, false))
	s.Tick(16, object.Input{})

	s.Reset()
	snap := s.Snapshot()
	if snap.Score != 0 || snap.Health != 100 || snap.Collected != 0 || snap.GameOver || snap.Tick != 0 {
		t.Fatalf("counters after reset: %+v", snap)
	}
	if len(snap.Collectibles) != 0 || len(snap.Enemies) != 0 || len(snap.Particles) != 0 {
		t.Fatalf("collections not empty after reset: %+v", snap)
	}
	if snap.Avatar.X != 400 || snap.Avatar.Y != 300 {
		t.Fatalf("avatar not recentered: %+v", snap.Avatar)
	}
}

func TestSpawnTimersResetWithoutCarry(t *testing.T) {
	s := newSeeded(1)
	// Keep the avatar in a corner so spawned entities stay alive.
	s.Avatar().X, s.Avatar().Y = 15, 15

	snap := s.Tick(2000, object.Input{})
	if len(snap.Collectibles) != 0 {
		t.Fatal("collectible spawned at exactly the interval; threshold is exclusive")
	}
	snap = s.Tick(1, object.Input{})
	if len(snap.Collectibles) != 1 {
		t.Fatalf("collectibles = %d, want 1", len(snap.Collectibles))
	}
	if s.collectibleTimer != 0 {
		t.Fatalf("collectible timer = %v, want reset to 0", s.collectibleTimer)
	}
	if len(snap.Enemies) != 0 || s.enemyTimer != 2001 {
		t.Fatalf("enemy timer = %v enemies = %d", s.enemyTimer, len(snap.Enemies))
	}

	snap = s.Tick(5000, object.Input{})
	if len(snap.Enemies) != 1 || s.enemyTimer != 0 {
		t.Fatalf("enemies = %d timer = %v, want 1 and 0", len(snap.Enemies), s.enemyTimer)
	}
	if s.collectibleTimer != 0 {
		t.Fatalf("overshoot carried over: %v", s.collectibleTimer)
	}
}

func TestNegativeDeltaIsClamped(t *testing.T) {
	s := newSeeded(1)
	s.Tick(-500, object.Input{})
	s.Tick(math.NaN(), object.Input{})
	if s.collectibleTimer != 0 || s.enemyTimer != 0 {
		t.Fatalf("timers moved on bad delta: %v %v", s.collectibleTimer, s.enemyTimer)
	}
}

func TestOffscreenEnemyIsPruned(t *testing.T) {
	s := newSeeded(1)
	s.addEnemy(-60, 300)
	s.addEnemy(-30, 300)
	snap := s.Tick(16, object.Input{})
	if len(snap.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(snap.Enemies))
	}
}

func TestPruneDropsDestroyedEntities(t *testing.T) {
	s := newSeeded(1)
	taken := object.NewCollectibleOf(100, 100, object.RarityCommon, false)
	kept := object.NewCollectibleOf(700, 100, object.RarityCommon, false)
	s.addCollectible(taken)
	s.addCollectible(kept)
	hit := s.addEnemy(100, 500)
	s.addEnemy(700, 500)

	taken.MarkDestroyed()
	hit.MarkDestroyed()
	s.prune()

	if len(s.collectibles) != 1 || s.collectibles[0] != kept {
		t.Fatalf("collectibles = %v, want only the live one", s.collectibles)
	}
	if len(s.enemies) != 1 || s.enemies[0] == hit {
		t.Fatalf("enemies = %d, destroyed enemy kept", len(s.enemies))
	}
}

func TestResetReleasesParticles(t *testing.T) {
	s := newSeeded(1)
	s.addCollectible(object.NewCollectibleOf(400, 300, object.RarityCommon, false))
	s.Tick(16, object.Input{})
	if len(s.particles) == 0 {
		t.Fatal("collect produced no particles")
	}

	s.Reset()
	if len(s.particles) != 0 || len(s.toSpawn) != 0 {
		t.Fatalf("particles = %d, queued = %d after reset", len(s.particles), len(s.toSpawn))
	}
}

func TestFadedParticlesArePruned(t *testing.T) {
	s := newSeeded(1)
	s.addCollectible(object.NewCollectibleOf(400, 300, object.RarityCommon, false))
	s.Tick(16, object.Input{})

	var snap Snapshot
	for i := 0; i < 60; i++ {
		snap = s.Tick(0, object.Input{})
	}
	if len(snap.Particles) != 0 {
		t.Fatalf("particles = %d, want all faded", len(snap.Particles))
	}
}

func TestInvariantsOverLongRun(t *testing.T) {
	s := newSeeded(7)
	rng := rand.New(rand.NewSource(99))
	prev := s.Snapshot()

	for i := 0; i < 20000 && !s.IsGameOver(); i++ {
		in := object.Input{
			Up:    rng.Intn(2) == 0,
			Down:  rng.Intn(3) == 0,
			Left:  rng.Intn(2) == 0,
			Right: rng.Intn(2) == 0,
		}
		snap := s.Tick(float64(rng.Intn(40)), in)

		if snap.Health < 0 || snap.Health > 100 || snap.Health > prev.Health {
			t.Fatalf("tick %d: health %d (prev %d)", i, snap.Health, prev.Health)
		}
		if snap.Score < prev.Score || snap.Collected < prev.Collected {
			t.Fatalf("tick %d: counters decreased %+v -> %+v", i, prev, snap)
		}
		if (snap.Score != prev.Score) != (snap.Collected != prev.Collected) {
			t.Fatalf("tick %d: score changed without a collection", i)
		}
		if snap.Avatar.X < 15 || snap.Avatar.X > 785 || snap.Avatar.Y < 15 || snap.Avatar.Y > 585 {
			t.Fatalf("tick %d: avatar out of bounds %+v", i, snap.Avatar)
		}
		prev = snap
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newSeeded(1)
	s.addCollectible(object.NewCollectibleOf(100, 100, object.RarityRare, false))
	snap := s.Snapshot()
	snap.Collectibles[0].X = -1
	if s.Snapshot().Collectibles[0].X != 100 {
		t.Fatal("snapshot shares collectible state with the session")
	}
}

func TestSpawnUsesInjectedRand(t *testing.T) {
	// x, y, phase, rarity, mutation
	rng := &seqRand{vals: []float64{0.25, 0.5, 0, 0.99, 0.5}}
	s := New(world, WithRand(rng))
	s.Avatar().X, s.Avatar().Y = 15, 15
	snap := s.Tick(2001, object.Input{})
	if len(snap.Collectibles) != 1 {
		t.Fatalf("collectibles = %d", len(snap.Collectibles))
	}
	c := snap.Collectibles[0]
	if c.X != 200 || c.Tier != "mythic" || c.Mutated {
		t.Fatalf("unexpected spawn %+v", c)
	}
}
