package tracker

import "math"

// StreakMultiplier returns the chain multiplier a new task in category earns,
// given that category's streak state and the current log length.
func (r Rules) StreakMultiplier(category string, before StreakState, logLen int) int {
	if !r.IsStreakEligible(category) {
		return 1
	}
	return min(before.Chain(logLen, r.BreakOnInterleave)+1, MaxStreakMultiplier)
}

// AwardedXP computes the XP a task earns: duration, doubled when outside,
// times the streak multiplier. Tasks must already be validated, which bounds
// the result by MaxDuration*OutsideMultiplier*MaxStreakMultiplier.
func (r Rules) AwardedXP(t Task, before StreakState, logLen int) int {
	xp := t.Duration
	if t.Outside {
		xp *= OutsideMultiplier
	}
	return xp * r.StreakMultiplier(t.Category, before, logLen)
}

// Level returns floor(sqrt(xp / k)). Level 0 covers [0, k).
func (r Rules) Level(xp int) int {
	if xp <= 0 {
		return 0
	}
	return isqrt(xp / r.divisor())
}

// XPForLevel returns the total XP at which level starts.
func (r Rules) XPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return level * level * r.divisor()
}

// LevelProgress returns how far xp is between its level and the next, in [0, 1).
func (r Rules) LevelProgress(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	lvl := r.Level(xp)
	lo, hi := r.XPForLevel(lvl), r.XPForLevel(lvl+1)
	return float64(xp-lo) / float64(hi-lo)
}

// isqrt returns floor(sqrt(n)) without trusting float rounding.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := int(math.Sqrt(float64(n)))
	for x*x > n {
		x--
	}
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}
