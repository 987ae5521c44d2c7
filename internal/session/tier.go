package session

import "github.com/abhisek/physiz/internal/catalog"

// Tier is the qualitative result of a challenge. Higher is better.
type Tier int

const (
	TierFledgling Tier = iota
	TierNovice
	TierApprentice
	TierAdept
	TierMonster
)

// TierFor maps a raw score to a tier: 5 is monster, 4 adept, 3 apprentice,
// 2 novice, and 0 or 1 fledgling. Out-of-range scores clamp.
func TierFor(score int) Tier {
	switch {
	case score >= 5:
		return TierMonster
	case score == 4:
		return TierAdept
	case score == 3:
		return TierApprentice
	case score == 2:
		return TierNovice
	default:
		return TierFledgling
	}
}

// Key returns the catalog key used to look up the tier's display.
func (t Tier) Key() string {
	switch t {
	case TierMonster:
		return catalog.TierKeyMonster
	case TierAdept:
		return catalog.TierKeyAdept
	case TierApprentice:
		return catalog.TierKeyApprentice
	case TierNovice:
		return catalog.TierKeyNovice
	default:
		return catalog.TierKeyFledgling
	}
}

func (t Tier) String() string { return t.Key() }

// TierFromKey parses a tier key back to the Tier type.
func TierFromKey(key string) (Tier, bool) {
	for t := TierFledgling; t <= TierMonster; t++ {
		if t.Key() == key {
			return t, true
		}
	}
	return TierFledgling, false
}
