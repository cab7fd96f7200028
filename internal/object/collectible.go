package object

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	CollectibleRadius = 12.0
	MutationChance    = 0.10
	MutationRadius    = 1.5
	MutationPoints    = 2

	bobSpeed     = 0.003 // phase per millisecond
	bobAmplitude = 5.0
	hueStep      = 0.01
	hueMax       = 360.0
)

// Collectible is a rarity-weighted pickup that bobs in place until collected.
type Collectible struct {
	X, Y    float64
	SpawnY  float64
	Radius  float64
	Rarity  Rarity
	Points  int
	Mutated bool
	Hue     float64 // Only advances for mutated collectibles

	phase     float64
	destroyed bool
}

// NewCollectible creates a collectible at (x,y), rolling bob phase, tier and mutation from rng.
func NewCollectible(x, y float64, rng Rand) *Collectible {
	phase := rng.Float64() * 2 * math.Pi
	c := NewCollectibleOf(x, y, RollRarity(rng.Float64()), rng.Float64() < MutationChance)
	c.phase = phase
	return c
}

// NewCollectibleOf creates a collectible with a fixed tier and mutation flag.
func NewCollectibleOf(x, y float64, rarity Rarity, mutated bool) *Collectible {
	c := &Collectible{
		X:      x,
		Y:      y,
		SpawnY: y,
		Radius: CollectibleRadius,
		Rarity: rarity,
		Points: rarity.Points(),
	}
	if mutated {
		c.mutate()
	}
	return c
}

func (c *Collectible) mutate() {
	c.Mutated = true
	c.Radius *= MutationRadius
	c.Points *= MutationPoints
	c.Hue = 0
}

// Update advances the bob and the mutation hue.
func (c *Collectible) Update(deltaMs float64) {
	c.phase += bobSpeed * deltaMs
	c.Y = c.SpawnY + math.Sin(c.phase)*bobAmplitude

	if c.Mutated {
		c.Hue += hueStep
		if c.Hue > hueMax {
			c.Hue = 0
		}
	}
}

// Color is the tier color.
func (c *Collectible) Color() colorful.Color {
	return c.Rarity.Info().Color
}

// RenderColor is the color a renderer should use this frame.
func (c *Collectible) RenderColor() colorful.Color {
	if c.Mutated {
		return colorful.Hsl(c.Hue, 1, 0.5)
	}
	return c.Color()
}

// Glow reports whether the collectible should be drawn with a glow.
func (c *Collectible) Glow() bool {
	return c.Mutated || c.Rarity.Info().Glow
}

func (c *Collectible) MarkDestroyed()    { c.destroyed = true }
func (c *Collectible) IsDestroyed() bool { return c.destroyed }
