package client

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/brainrots/internal/draw"
	"github.com/tomz197/brainrots/internal/loop/session"
)

const (
	enemySpikes      = 6
	enemySpikeLength = 5.0
	glowRingOffset   = 4.0
	mutationRingGap  = 3.0
	gridSpacing      = 50.0
)

var (
	black      = colorful.Color{}
	white      = colorful.Color{R: 1, G: 1, B: 1}
	gridColor  = colorful.Color{R: 0.16, G: 0.16, B: 0.22}
	background = mustHex("#0f0f23")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseColor decodes a snapshot color. Malformed values fall back to white.
func parseColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return white
	}
	return c
}

// drawSnapshot rasterizes one snapshot onto the canvas: collectibles, enemies,
// particles and finally the avatar on top.
func drawSnapshot(cv *draw.Canvas, snap *session.Snapshot) {
	drawGrid(cv, snap)

	for i := range snap.Collectibles {
		drawCollectible(cv, &snap.Collectibles[i])
	}
	for i := range snap.Enemies {
		drawEnemy(cv, &snap.Enemies[i])
	}
	for i := range snap.Particles {
		drawParticle(cv, &snap.Particles[i])
	}

	a := snap.Avatar
	cv.SetColor(parseColor(a.Color))
	cv.DrawCircle(a.X, a.Y, a.Radius, true)
}

func drawGrid(cv *draw.Canvas, snap *session.Snapshot) {
	cv.SetColor(gridColor)
	w, h := snap.Bounds.Width, snap.Bounds.Height
	for x := gridSpacing; x < w; x += gridSpacing {
		cv.DrawLine(draw.Point{X: x, Y: 0}, draw.Point{X: x, Y: h - 1})
	}
	for y := gridSpacing; y < h; y += gridSpacing {
		cv.DrawLine(draw.Point{X: 0, Y: y}, draw.Point{X: w - 1, Y: y})
	}
}

func drawCollectible(cv *draw.Canvas, c *session.CollectibleView) {
	col := parseColor(c.Color)
	if c.Glow {
		// Dimmed halo stands in for a canvas shadow blur.
		cv.SetColor(background.BlendRgb(col, 0.45).Clamped())
		cv.DrawCircle(c.X, c.Y, c.Radius+glowRingOffset, false)
	}
	cv.SetColor(col)
	cv.DrawCircle(c.X, c.Y, c.Radius, true)
	if c.Mutated {
		cv.SetColor(white)
		cv.DrawCircle(c.X, c.Y, c.Radius+mutationRingGap, false)
	}
}

func drawEnemy(cv *draw.Canvas, e *session.EnemyView) {
	cv.SetColor(parseColor(e.Color))
	cv.DrawCircle(e.X, e.Y, e.Radius, true)
	for i := 0; i < enemySpikes; i++ {
		a := 2*math.Pi/enemySpikes*float64(i) + e.Angle
		cos, sin := math.Cos(a), math.Sin(a)
		cv.DrawLine(
			draw.Point{X: e.X + cos*e.Radius, Y: e.Y + sin*e.Radius},
			draw.Point{X: e.X + cos*(e.Radius+enemySpikeLength), Y: e.Y + sin*(e.Radius+enemySpikeLength)},
		)
	}
}

// drawParticle fades the particle toward black as its life runs out.
func drawParticle(cv *draw.Canvas, p *session.ParticleView) {
	life := math.Max(0, math.Min(1, p.Life))
	cv.SetColor(black.BlendRgb(parseColor(p.Color), life).Clamped())
	cv.DrawCircle(p.X, p.Y, p.Radius, true)
}
