package tracker

import "strings"

const (
	// MaxStreakMultiplier caps the chain bonus.
	MaxStreakMultiplier = 3

	// OutsideMultiplier applies to tasks done outdoors.
	OutsideMultiplier = 2

	// MaxDuration is the longest single task, one day in minutes. It keeps
	// every award far below the int range.
	MaxDuration = 24 * 60

	// DefaultLevelDivisor is k in level = floor(sqrt(xp / k)).
	DefaultLevelDivisor = 100
)

// DefaultStreakCategories are the categories that build chains unless
// configured otherwise.
var DefaultStreakCategories = []string{"Typing", "Music"}

// Rules holds the configurable parts of the XP engine.
type Rules struct {
	// StreakCategories lists the chain-eligible categories, matched
	// case-insensitively.
	StreakCategories []string

	// LevelDivisor is k in the level curve. Non-positive means default.
	LevelDivisor int

	// BreakOnInterleave makes a task in another category reset every
	// chain. When false, an interleaved task only pauses other chains.
	BreakOnInterleave bool
}

// DefaultRules returns the stock rule set.
func DefaultRules() Rules {
	return Rules{
		StreakCategories: append([]string(nil), DefaultStreakCategories...),
		LevelDivisor:     DefaultLevelDivisor,
	}
}

// IsStreakEligible reports whether tasks in category build chains.
func (r Rules) IsStreakEligible(category string) bool {
	category = strings.TrimSpace(category)
	for _, c := range r.StreakCategories {
		if strings.EqualFold(category, strings.TrimSpace(c)) {
			return true
		}
	}
	return false
}

func (r Rules) divisor() int {
	if r.LevelDivisor <= 0 {
		return DefaultLevelDivisor
	}
	return r.LevelDivisor
}
