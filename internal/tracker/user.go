package tracker

import (
	"fmt"
	"maps"
)

// delta reverses one AddTask.
type delta struct {
	position int
	award    int
}

// User is the aggregate root for one tracked profile. It owns the task log
// and everything derived from it. A User is not safe for concurrent use.
type User struct {
	rules Rules

	tasks   []Task
	awards  []int
	xp      int
	stats   map[Stat]int
	streaks map[string]StreakState

	history []delta
}

// NewUser returns an empty User scored with rules.
func NewUser(rules Rules) *User {
	stats := make(map[Stat]int, len(AllStats()))
	for _, s := range AllStats() {
		stats[s] = 0
	}
	return &User{
		rules:   rules,
		stats:   stats,
		streaks: make(map[string]StreakState),
	}
}

// Replay builds a User by adding tasks in order. Every replayed task stays
// undoable, so Undo right after a load removes the newest logged task.
func Replay(rules Rules, tasks []Task) (*User, error) {
	u := NewUser(rules)
	for i, t := range tasks {
		if _, err := u.AddTask(t); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
	}
	return u, nil
}

// AddTask appends a task to the log and returns the XP it was awarded.
// An invalid task is rejected with *ValidationError and nothing changes.
func (u *User) AddTask(t Task) (int, error) {
	t, err := NewTask(t)
	if err != nil {
		return 0, err
	}

	pos := len(u.tasks)
	st := u.streaks[t.Category]
	award := u.rules.AwardedXP(t, st, pos)

	u.history = append(u.history, delta{position: pos, award: award})
	u.tasks = append(u.tasks, t)
	u.awards = append(u.awards, award)
	u.xp += award
	u.stats[t.Stat] += award

	st.Entries = append(st.Entries, StreakEntry{Position: pos, Date: t.Date})
	u.streaks[t.Category] = st

	return award, nil
}

// Undo reverses the most recent AddTask. It reports false, changing
// nothing, when there is no history left.
func (u *User) Undo() bool {
	if len(u.history) == 0 {
		return false
	}
	d := u.history[len(u.history)-1]
	u.history = u.history[:len(u.history)-1]

	t := u.tasks[d.position]
	u.tasks = u.tasks[:d.position]
	u.awards = u.awards[:d.position]
	u.xp -= d.award
	u.stats[t.Stat] -= d.award

	st := u.streaks[t.Category]
	st.Entries = st.Entries[:len(st.Entries)-1]
	if len(st.Entries) == 0 {
		delete(u.streaks, t.Category)
	} else {
		u.streaks[t.Category] = st
	}
	return true
}

// CanUndo reports whether Undo would change anything.
func (u *User) CanUndo() bool {
	return len(u.history) > 0
}

// Rules returns the rule set the user is scored with.
func (u *User) Rules() Rules {
	return u.rules
}

// Tasks returns a copy of the task log in insertion order.
func (u *User) Tasks() []Task {
	return append([]Task(nil), u.tasks...)
}

// Awards returns the XP awarded to each task, aligned with Tasks.
func (u *User) Awards() []int {
	return append([]int(nil), u.awards...)
}

// Recent returns up to n of the newest tasks, oldest first.
func (u *User) Recent(n int) []Task {
	if n <= 0 {
		return nil
	}
	start := max(len(u.tasks)-n, 0)
	return append([]Task(nil), u.tasks[start:]...)
}

// Len returns the number of logged tasks.
func (u *User) Len() int {
	return len(u.tasks)
}

func (u *User) XP() int {
	return u.xp
}

// Level is derived from XP on every call and never stored.
func (u *User) Level() int {
	return u.rules.Level(u.xp)
}

// Stats returns a copy of the per-stat XP subtotals. All six stats are present.
func (u *User) Stats() map[Stat]int {
	return maps.Clone(u.stats)
}

// Streaks returns a deep copy of the per-category streak state.
func (u *User) Streaks() map[string]StreakState {
	out := make(map[string]StreakState, len(u.streaks))
	for k, v := range u.streaks {
		out[k] = v.clone()
	}
	return out
}

// Chain returns the current chain length of category.
func (u *User) Chain(category string) int {
	return u.streaks[category].Chain(len(u.tasks), u.rules.BreakOnInterleave)
}

// NextMultiplier returns the streak multiplier the next task in category
// would earn.
func (u *User) NextMultiplier(category string) int {
	return u.rules.StreakMultiplier(category, u.streaks[category], len(u.tasks))
}

// Verify recomputes every derived field from the task log and returns an
// error describing the first mismatch.
func (u *User) Verify() error {
	fresh, err := Replay(u.rules, u.tasks)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	sum := 0
	for _, a := range u.awards {
		sum += a
	}
	if sum != u.xp {
		return fmt.Errorf("xp %d does not match award sum %d", u.xp, sum)
	}
	if fresh.xp != u.xp {
		return fmt.Errorf("xp %d does not match replayed %d", u.xp, fresh.xp)
	}
	for i := range fresh.awards {
		if fresh.awards[i] != u.awards[i] {
			return fmt.Errorf("task %d award %d does not match replayed %d", i, u.awards[i], fresh.awards[i])
		}
	}
	for _, s := range AllStats() {
		if fresh.stats[s] != u.stats[s] {
			return fmt.Errorf("stat %s %d does not match replayed %d", s, u.stats[s], fresh.stats[s])
		}
	}
	derived := DeriveStreaks(u.tasks)
	if len(derived) != len(u.streaks) {
		return fmt.Errorf("%d streak categories, replay gives %d", len(u.streaks), len(derived))
	}
	for cat, st := range derived {
		if !st.equal(u.streaks[cat]) {
			return fmt.Errorf("streak %q does not match replay", cat)
		}
	}
	return nil
}
