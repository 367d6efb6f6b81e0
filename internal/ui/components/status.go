package components

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/xptrack/internal/tracker"
	"github.com/abhisek/xptrack/internal/ui/theme"
)

// StatusCard summarises a profile: level, XP progress, stat subtotals and
// live chains.
type StatusCard struct {
	Profile string
	User    *tracker.User
	Width   int
}

// View renders the card.
func (c StatusCard) View() string {
	u := c.User
	rules := u.Rules()
	width := c.Width
	if width <= 0 {
		width = 48
	}

	var lines []string
	lines = append(lines, theme.Title.Render(fmt.Sprintf("%s · Level %d", c.Profile, u.Level())))

	next := rules.XPForLevel(u.Level() + 1)
	lines = append(lines, theme.Body.Render(fmt.Sprintf("XP %d / %d", u.XP(), next)))
	lines = append(lines, NewProgressBar("", rules.LevelProgress(u.XP()), true, width).View())
	lines = append(lines, "")

	stats := u.Stats()
	top := 0
	for _, v := range stats {
		top = max(top, v)
	}
	for _, s := range tracker.AllStats() {
		pct := 0.0
		if top > 0 {
			pct = float64(stats[s]) / float64(top)
		}
		bar := NewProgressBar(fmt.Sprintf("%-6s %6d", s, stats[s]), pct, false, width)
		bar.Fill = theme.StatColor(s)
		lines = append(lines, bar.View())
	}

	if chains := c.chains(); len(chains) > 0 {
		lines = append(lines, "", theme.Hint.Render("Chains"))
		lines = append(lines, chains...)
	}

	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// chains lists eligible categories with a live chain and the multiplier the
// next task in them would earn.
func (c StatusCard) chains() []string {
	u := c.User
	var cats []string
	for cat := range u.Streaks() {
		if u.Rules().IsStreakEligible(cat) && u.Chain(cat) > 0 {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	var out []string
	for _, cat := range cats {
		out = append(out, theme.Body.Render(fmt.Sprintf("%-12s chain %d  next ×%d", cat, u.Chain(cat), u.NextMultiplier(cat))))
	}
	return out
}

// TaskList renders logged tasks with the XP each earned.
type TaskList struct {
	Tasks  []tracker.Task
	Awards []int
}

// View renders one line per task, oldest first.
func (l TaskList) View() string {
	if len(l.Tasks) == 0 {
		return theme.Hint.Render("No tasks logged yet.")
	}
	var b strings.Builder
	for i, t := range l.Tasks {
		line := fmt.Sprintf("%s  %s (%d min, %s, %s)", t.Date.Format(tracker.DateLayout), t.Name, t.Duration, t.Stat, t.Category)
		if t.Outside {
			line += " outside"
		}
		b.WriteString(theme.Body.Render(line))
		if i < len(l.Awards) {
			b.WriteString("  " + theme.Gain.Render(fmt.Sprintf("+%d XP", l.Awards[i])))
		}
		b.WriteString("\n")
	}
	return b.String()
}
