package tracker

import (
	"math"
	"testing"
)

func task(name, category string, stat Stat, minutes int) Task {
	return Task{Name: name, Category: category, Stat: stat, Duration: minutes, Date: day1}
}

func addAll(t *testing.T, u *User, tasks ...Task) []int {
	t.Helper()
	var awards []int
	for _, tk := range tasks {
		a, err := u.AddTask(tk)
		if err != nil {
			t.Fatalf("add %q: %v", tk.Name, err)
		}
		awards = append(awards, a)
	}
	return awards
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStreakCap(t *testing.T) {
	u := NewUser(DefaultRules())
	tk := task("Drills", "Typing", StatTech, 10)
	got := addAll(t, u, tk, tk, tk, tk)
	want := []int{10, 20, 30, 30}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}
	if u.XP() != 90 {
		t.Errorf("xp = %d, want 90", u.XP())
	}
}

func TestOutsideDoubles(t *testing.T) {
	u := NewUser(DefaultRules())
	tk := task("Walk", "Exercise", StatBody, 15)
	tk.Outside = true
	got := addAll(t, u, tk)
	if got[0] != 30 {
		t.Errorf("award = %d, want 30", got[0])
	}
}

func TestOutsideWithStreak(t *testing.T) {
	u := NewUser(DefaultRules())
	tk := task("Busking", "Music", StatArt, 10)
	tk.Outside = true
	got := addAll(t, u, tk, tk, tk)
	want := []int{20, 40, 60}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}
}

func TestNonEligibleNeverChains(t *testing.T) {
	u := NewUser(DefaultRules())
	tk := task("Dishes", "Cleaning", StatHome, 10)
	got := addAll(t, u, tk, tk, tk)
	want := []int{10, 10, 10}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}
}

func TestEligibilityIsCaseInsensitive(t *testing.T) {
	r := DefaultRules()
	for _, c := range []string{"Typing", "typing", " MUSIC "} {
		if !r.IsStreakEligible(c) {
			t.Errorf("IsStreakEligible(%q) = false, want true", c)
		}
	}
	if r.IsStreakEligible("Reading") {
		t.Error("Reading should not be eligible by default")
	}
}

func TestInterleavingPausesChain(t *testing.T) {
	u := NewUser(DefaultRules())
	a := task("Drills", "Typing", StatTech, 10)
	b := task("Scales", "Music", StatArt, 10)
	got := addAll(t, u, a, b, a)
	want := []int{10, 10, 20}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}
}

func TestInterleavingBreaksChain(t *testing.T) {
	rules := DefaultRules()
	rules.BreakOnInterleave = true
	u := NewUser(rules)
	a := task("Drills", "Typing", StatTech, 10)
	b := task("Scales", "Music", StatArt, 10)
	got := addAll(t, u, a, a, b, a, a)
	want := []int{10, 20, 10, 10, 20}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}
}

func TestLevel(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{-10, 0},
		{99, 0},
		{100, 1},
		{399, 1},
		{400, 2},
		{899, 2},
		{900, 3},
		{10_000, 10},
	}
	for _, tt := range tests {
		if got := r.Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelMonotonic(t *testing.T) {
	r := Rules{LevelDivisor: 7}
	prev := 0
	for xp := 0; xp <= 50_000; xp++ {
		l := r.Level(xp)
		if l < prev {
			t.Fatalf("Level(%d) = %d < Level(%d) = %d", xp, l, xp-1, prev)
		}
		if xp >= r.XPForLevel(l+1) || xp < r.XPForLevel(l) {
			t.Fatalf("xp %d outside [%d, %d) for level %d", xp, r.XPForLevel(l), r.XPForLevel(l+1), l)
		}
		prev = l
	}
}

func TestLevelDivisorDefault(t *testing.T) {
	if got := (Rules{}).Level(400); got != 2 {
		t.Errorf("zero-value rules Level(400) = %d, want 2", got)
	}
}

func TestLevelProgress(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		xp   int
		want float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 0},
		{250, 0.5},
	}
	for _, tt := range tests {
		if got := r.LevelProgress(tt.xp); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LevelProgress(%d) = %v, want %v", tt.xp, got, tt.want)
		}
	}
}

func TestIsqrt(t *testing.T) {
	for n := 0; n < 100_000; n += 37 {
		r := isqrt(n)
		if r*r > n || (r+1)*(r+1) <= n {
			t.Fatalf("isqrt(%d) = %d", n, r)
		}
	}
}

func TestLongestTaskAwardIsBounded(t *testing.T) {
	u := NewUser(DefaultRules())
	tk := task("Marathon jam", "Music", StatArt, MaxDuration)
	tk.Outside = true
	got := addAll(t, u, tk, tk, tk, tk)
	top := MaxDuration * OutsideMultiplier * MaxStreakMultiplier
	want := []int{top / 3, 2 * top / 3, top, top}
	if !equalInts(got, want) {
		t.Errorf("awards = %v, want %v", got, want)
	}

	if _, err := u.AddTask(task("Marathon jam", "Music", StatArt, math.MaxInt/2+10)); err == nil {
		t.Fatal("oversized duration accepted")
	}
	if u.XP() != 2*top+top/3+2*top/3 || u.XP() < 0 {
		t.Errorf("xp = %d after rejected task", u.XP())
	}
}
