package tracker

import "time"

// StreakEntry marks one logged task of a category.
type StreakEntry struct {
	Position int // index in the user's task log
	Date     time.Time
}

// StreakState is the ordered history of one category in the task log.
type StreakState struct {
	Entries []StreakEntry
}

// Len returns the number of times the category was logged.
func (s StreakState) Len() int {
	return len(s.Entries)
}

// Chain returns the length of the run a new task in this category would
// extend, for a log currently holding logLen tasks.
//
// Without breakOnInterleave every prior entry counts: other categories pause
// a chain but never reset it. With breakOnInterleave only entries forming
// the tail of the global log count.
func (s StreakState) Chain(logLen int, breakOnInterleave bool) int {
	if !breakOnInterleave {
		return len(s.Entries)
	}
	n := 0
	want := logLen - 1
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if s.Entries[i].Position != want {
			break
		}
		n++
		want--
	}
	return n
}

func (s StreakState) clone() StreakState {
	if s.Entries == nil {
		return StreakState{}
	}
	return StreakState{Entries: append([]StreakEntry(nil), s.Entries...)}
}

func (s StreakState) equal(o StreakState) bool {
	if len(s.Entries) != len(o.Entries) {
		return false
	}
	for i := range s.Entries {
		if s.Entries[i].Position != o.Entries[i].Position || !s.Entries[i].Date.Equal(o.Entries[i].Date) {
			return false
		}
	}
	return true
}

// DeriveStreaks rebuilds per-category streak state by replaying a task log.
func DeriveStreaks(tasks []Task) map[string]StreakState {
	streaks := make(map[string]StreakState)
	for i, t := range tasks {
		st := streaks[t.Category]
		st.Entries = append(st.Entries, StreakEntry{Position: i, Date: t.Date})
		streaks[t.Category] = st
	}
	return streaks
}
