package session

import (
	"github.com/tomz197/brainrots/internal/object"
)

// AvatarView is the renderable state of the avatar.
type AvatarView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// CollectibleView is the renderable state of a collectible.
type CollectibleView struct {
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Radius  float64       `json:"radius"`
	Rarity  object.Rarity `json:"-"`
	Tier    string        `json:"tier"`
	Points  int           `json:"points"`
	Color   string        `json:"color"`
	Glow    bool          `json:"glow"`
	Mutated bool          `json:"mutated"`
	Hue     float64       `json:"hue"`
}

// EnemyView is the renderable state of an enemy.
type EnemyView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Angle  float64 `json:"angle"`
	Color  string  `json:"color"`
}

// ParticleView is the renderable state of a particle.
type ParticleView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Life   float64 `json:"life"`
	Color  string  `json:"color"`
}

// Snapshot is an immutable copy of the session state for rendering.
type Snapshot struct {
	Tick         uint64            `json:"tick"`
	Score        int               `json:"score"`
	Health       int               `json:"health"`
	Collected    int               `json:"collected"`
	GameOver     bool              `json:"gameOver"`
	Bounds       object.Bounds     `json:"bounds"`
	Avatar       AvatarView        `json:"avatar"`
	Collectibles []CollectibleView `json:"collectibles"`
	Enemies      []EnemyView       `json:"enemies"`
	Particles    []ParticleView    `json:"particles"`
}

// Snapshot copies the current state. The result shares nothing with the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Score:     s.score,
		Health:    s.health,
		Collected: s.collected,
		GameOver:  s.over,
		Bounds:    s.bounds,
		Avatar: AvatarView{
			X:      s.avatar.X,
			Y:      s.avatar.Y,
			Radius: s.avatar.Radius,
			Color:  object.AvatarColor,
		},
		Collectibles: make([]CollectibleView, 0, len(s.collectibles)),
		Enemies:      make([]EnemyView, 0, len(s.enemies)),
		Particles:    make([]ParticleView, 0, len(s.particles)),
	}

	for _, c := range s.collectibles {
		snap.Collectibles = append(snap.Collectibles, CollectibleView{
			X:       c.X,
			Y:       c.Y,
			Radius:  c.Radius,
			Rarity:  c.Rarity,
			Tier:    c.Rarity.String(),
			Points:  c.Points,
			Color:   c.RenderColor().Hex(),
			Glow:    c.Glow(),
			Mutated: c.Mutated,
			Hue:     c.Hue,
		})
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{
			X:      e.X,
			Y:      e.Y,
			Radius: e.Radius,
			Angle:  e.Angle,
			Color:  object.EnemyColor,
		})
	}
	for _, p := range s.particles {
		snap.Particles = append(snap.Particles, ParticleView{
			X:      p.X,
			Y:      p.Y,
			Radius: p.Radius,
			Life:   p.Life,
			Color:  p.Color.Hex(),
		})
	}

	return snap
}
