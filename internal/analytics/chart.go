package analytics

import (
	"fmt"
	"math"
	"strings"
)

// BarWidth is the length of the bar for the highest score.
const BarWidth = 20

// Bar returns the block bar for score relative to best.
func Bar(score, best int) string {
	if best <= 0 || score <= 0 {
		return ""
	}
	n := int(math.Round(float64(score) / float64(best) * BarWidth))
	return strings.Repeat("█", min(n, BarWidth))
}

// BarChart renders one line per score, oldest first:
//
//	Test  1: ██████████████ 28
func BarChart(scores []int) string {
	if len(scores) == 0 {
		return ""
	}
	best := 0
	for _, s := range scores {
		best = max(best, s)
	}
	var b strings.Builder
	for i, s := range scores {
		bar := Bar(s, best)
		if bar == "" {
			fmt.Fprintf(&b, "Test %2d: %d\n", i+1, s)
			continue
		}
		fmt.Fprintf(&b, "Test %2d: %s %d\n", i+1, bar, s)
	}
	return b.String()
}
