package object

import "github.com/tomz197/brainrots/internal/physics"

const (
	AvatarRadius = 15.0
	AvatarSpeed  = 5.0
	AvatarColor  = "#00ff88"
)

// Avatar is the player-controlled pickup collector.
type Avatar struct {
	X, Y   float64
	Radius float64
	Speed  float64
}

// NewAvatar creates an avatar at (x,y).
func NewAvatar(x, y float64) *Avatar {
	return &Avatar{
		X:      x,
		Y:      y,
		Radius: AvatarRadius,
		Speed:  AvatarSpeed,
	}
}

// Position returns the avatar center. Implements Target.
func (a *Avatar) Position() (x, y float64) {
	return a.X, a.Y
}

// Move applies each held direction independently, so diagonals combine.
func (a *Avatar) Move(in Input) {
	if in.Up {
		a.Y -= a.Speed
	}
	if in.Down {
		a.Y += a.Speed
	}
	if in.Left {
		a.X -= a.Speed
	}
	if in.Right {
		a.X += a.Speed
	}
}

// Clamp keeps the whole avatar circle inside the world.
func (a *Avatar) Clamp(b Bounds) {
	a.X = physics.Clamp(a.X, a.Radius, b.Width-a.Radius)
	a.Y = physics.Clamp(a.Y, a.Radius, b.Height-a.Radius)
}
