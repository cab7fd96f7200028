package object

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Rarity is the tier of a collectible, ordered from most to least common.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// RarityInfo holds the fixed attributes of a tier.
type RarityInfo struct {
	Name   string
	Color  colorful.Color
	Points int
	Glow   bool
	// Upper bound of the tier's band in the cumulative roll.
	Threshold float64
}

var rarityTable = [...]RarityInfo{
	RarityCommon:    {Name: "common", Color: mustHex("#9e9e9e"), Points: 10, Glow: false, Threshold: 0.40},
	RarityUncommon:  {Name: "uncommon", Color: mustHex("#4caf50"), Points: 25, Glow: false, Threshold: 0.65},
	RarityRare:      {Name: "rare", Color: mustHex("#2196f3"), Points: 50, Glow: true, Threshold: 0.80},
	RarityEpic:      {Name: "epic", Color: mustHex("#9c27b0"), Points: 100, Glow: true, Threshold: 0.92},
	RarityLegendary: {Name: "legendary", Color: mustHex("#ff9800"), Points: 200, Glow: true, Threshold: 0.98},
	RarityMythic:    {Name: "mythic", Color: mustHex("#f44336"), Points: 500, Glow: true, Threshold: 1.0},
}

// Rarities lists every tier in roll order.
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}
}

// RollRarity maps a uniform value in [0,1) onto a tier.
func RollRarity(r float64) Rarity {
	for _, tier := range Rarities() {
		if r < rarityTable[tier].Threshold {
			return tier
		}
	}
	return RarityMythic
}

// Info returns the tier's fixed attributes.
func (r Rarity) Info() RarityInfo {
	if r < RarityCommon || r > RarityMythic {
		return rarityTable[RarityCommon]
	}
	return rarityTable[r]
}

// Points is the base score of the tier.
func (r Rarity) Points() int { return r.Info().Points }

func (r Rarity) String() string {
	if r < RarityCommon || r > RarityMythic {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityTable[r].Name
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("object: bad color %q: %v", s, err))
	}
	return c
}
