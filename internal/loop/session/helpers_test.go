package session

import "github.com/tomz197/brainrots/internal/object"

// addCollectible places a collectible directly into the world.
func (s *Session) addCollectible(c *object.Collectible) {
	s.collectibles = append(s.collectibles, c)
}

// addEnemy places an enemy directly into the world, chasing the avatar.
func (s *Session) addEnemy(x, y float64) *object.Enemy {
	e := object.NewEnemy(x, y, s.avatar)
	s.enemies = append(s.enemies, e)
	return e
}
