package tracker

import "strings"

// Stat is one of the six character stats a task feeds XP into.
type Stat string

const (
	StatBody   Stat = "Body"
	StatMind   Stat = "Mind"
	StatArt    Stat = "Art"
	StatTech   Stat = "Tech"
	StatHome   Stat = "Home"
	StatSpirit Stat = "Spirit"
)

// AllStats returns all stats in display order.
func AllStats() []Stat {
	return []Stat{StatBody, StatMind, StatArt, StatTech, StatHome, StatSpirit}
}

func (s Stat) IsValid() bool {
	switch s {
	case StatBody, StatMind, StatArt, StatTech, StatHome, StatSpirit:
		return true
	default:
		return false
	}
}

// ParseStat matches a stat name case-insensitively.
func ParseStat(s string) (Stat, bool) {
	s = strings.TrimSpace(s)
	for _, st := range AllStats() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}
