package analytics

import "github.com/abhisek/soulsense/internal/store"

const (
	InsightGreatProgress = "Great progress! Your EQ has improved significantly."
	InsightSteady        = "Steady improvement. Keep practicing."
	InsightFocus         = "Focus on consistent practice."
	InsightPositive      = "Your journal reflects positive thinking."
	InsightStress        = "Consider stress management techniques."
	InsightBalanced      = "Balanced emotional expression."
	InsightNeedsMoreData = "Complete more assessments to see insights."
	HealthStartTracking  = "Start tracking sleep and energy in your journal to see health insights."
	HealthStable         = "Your metrics are stable."
	HealthShortSleep     = "Your sleep has averaged less than 6 hours."
	HealthGoodSleep      = "Great job maintaining a healthy sleep schedule."
	HealthBalancedSleep  = "Your sleep schedule is fairly balanced."
	HealthLowEnergy      = "Your energy levels have been consistently low."
	HealthHighEnergy     = "You've reported high energy levels."
	HealthEnergyUp       = "Your energy is trending upwards."
	HealthLongHours      = "You've been working long hours."
	HealthRelaxing       = "Light workload and good energy: enjoy this relaxing period."
)

// health insights read at most this many recent entries
const healthEntriesConsider = 7

// Insights turns the score trend and journal tone into short advice.
func Insights(eq EQStats, js JournalStats) []string {
	var out []string
	if eq.Count > 1 {
		switch {
		case eq.Improvement > 10:
			out = append(out, InsightGreatProgress)
		case eq.Improvement > 0:
			out = append(out, InsightSteady)
		default:
			out = append(out, InsightFocus)
		}
	}
	if js.Count > 0 {
		switch {
		case js.AvgSentiment > 20:
			out = append(out, InsightPositive)
		case js.AvgSentiment < -20:
			out = append(out, InsightStress)
		default:
			out = append(out, InsightBalanced)
		}
	}
	if len(out) == 0 {
		out = append(out, InsightNeedsMoreData)
	}
	return out
}

// HealthInsights reads the wellbeing metrics of the most recent entries.
// entries must be newest first; only the first seven are considered.
func HealthInsights(entries []store.JournalEntry) []string {
	if len(entries) == 0 {
		return []string{HealthStartTracking}
	}
	entries = entries[:min(len(entries), healthEntriesConsider)]

	var sleeps, energies, works []float64
	for _, e := range entries {
		if e.SleepHours != nil {
			sleeps = append(sleeps, *e.SleepHours)
		}
		if e.EnergyLevel != nil {
			energies = append(energies, float64(*e.EnergyLevel))
		}
		if e.WorkHours != nil {
			works = append(works, *e.WorkHours)
		}
	}
	if len(sleeps)+len(energies)+len(works) == 0 {
		return []string{HealthStartTracking}
	}

	var out []string
	if len(sleeps) > 0 {
		switch avg := average(sleeps); {
		case avg < 6:
			out = append(out, HealthShortSleep)
		case avg >= 7.5:
			out = append(out, HealthGoodSleep)
		default:
			out = append(out, HealthBalancedSleep)
		}
	}

	avgEnergy := average(energies)
	switch {
	case len(energies) >= 2 && allAtMost(energies[:min(3, len(energies))], 4):
		out = append(out, HealthLowEnergy)
	case len(energies) > 0 && avgEnergy >= 7:
		out = append(out, HealthHighEnergy)
	case len(energies) >= 2 && energies[0] > energies[len(energies)-1]+2:
		out = append(out, HealthEnergyUp)
	}

	if len(works) > 0 {
		switch avg := average(works); {
		case avg > 10:
			out = append(out, HealthLongHours)
		case avg < 2 && avgEnergy > 5:
			out = append(out, HealthRelaxing)
		}
	}

	if len(out) == 0 {
		return []string{HealthStable}
	}
	return out
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func allAtMost(xs []float64, limit float64) bool {
	for _, x := range xs {
		if x > limit {
			return false
		}
	}
	return true
}
