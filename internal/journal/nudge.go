package journal

import (
	"time"

	"github.com/abhisek/soulsense/internal/store"
)

// NudgeWindow is how far back Nudge looks.
const NudgeWindow = 3 * 24 * time.Hour

const (
	NudgeLowSleep  = "You've been getting less than 6 hours of sleep recently."
	NudgeLowEnergy = "Your reported energy levels have been low for 3 days in a row."
)

// NudgeFor picks a nudge from recent entries ordered newest first. Sleep
// is checked before energy; entries without a metric are ignored for it.
func NudgeFor(recent []store.JournalEntry) string {
	if len(recent) < 2 {
		return ""
	}

	var sleep []float64
	for _, e := range recent {
		if e.SleepHours != nil {
			sleep = append(sleep, *e.SleepHours)
		}
	}
	if len(sleep) > 0 && mean(sleep) < 6 {
		return NudgeLowSleep
	}

	if len(recent) >= 3 {
		low := 0
		for _, e := range recent[:3] {
			if e.EnergyLevel != nil && *e.EnergyLevel <= 4 {
				low++
			}
		}
		if low == 3 {
			return NudgeLowEnergy
		}
	}
	return ""
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
