package core

import (
	"sort"
	"time"
)

// Day labels for the two most recent calendar days.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// DayGroup is one display bucket of the workout log: a label and the
// entries logged under it, in their original relative order.
type DayGroup struct {
	Label    string
	Workouts []Workout
}

// DayLabel returns the display label for a creation time relative to now:
// "Today", "Yesterday", or a short calendar date like "Jan 5". The short
// form carries no year, so the same month and day of different years share
// a label.
func DayLabel(t, now time.Time) string {
	if sameDay(t, now) {
		return LabelToday
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return LabelYesterday
	}
	return t.Format("Jan 2")
}

// GroupByDay partitions workouts into labeled day groups for display.
//
// Every input entry lands in exactly one group and keeps its relative order
// within it; the input needs no pre-sorting. Groups are ordered "Today"
// first, "Yesterday" second, then by descending date of each group's first
// member. An empty input yields an empty result.
func GroupByDay(workouts []Workout, now time.Time) []DayGroup {
	byLabel := make(map[string]int, len(workouts))
	var groups []DayGroup

	for _, w := range workouts {
		label := DayLabel(w.CreatedAt, now)
		i, ok := byLabel[label]
		if !ok {
			i = len(groups)
			byLabel[label] = i
			groups = append(groups, DayGroup{Label: label})
		}
		groups[i].Workouts = append(groups[i].Workouts, w)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ra, rb := groups[a].rank(), groups[b].rank()
		if ra != rb {
			return ra < rb
		}
		if ra == 2 {
			// Most recent calendar date first, judged by the first member.
			return groups[a].Workouts[0].CreatedAt.After(groups[b].Workouts[0].CreatedAt)
		}
		return false
	})

	return groups
}

func (g DayGroup) rank() int {
	switch g.Label {
	case LabelToday:
		return 0
	case LabelYesterday:
		return 1
	default:
		return 2
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
