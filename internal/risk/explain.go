package risk

import (
	"fmt"
	"strings"
)

// Disclaimer closes every report.
const Disclaimer = "This is an AI-assisted assessment, not a clinical diagnosis."

const explainTopN = 3

// Explain renders a plain-text report for p.
func Explain(p Prediction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk level: %s (%.0f%% confidence)\n", p.Level, 100*p.Confidence)
	fmt.Fprintf(&b, "%s.\n\n", p.Level.Description())

	b.WriteString("Top contributing factors:\n")
	for i, fw := range p.TopFeatures[:min(explainTopN, len(p.TopFeatures))] {
		fmt.Fprintf(&b, "  %d. %s = %s (importance %.2f)\n", i+1, fw.Name, formatValue(fw.Value), fw.Weight)
	}

	b.WriteString("\nProbabilities:\n")
	for l := range numLevels {
		fmt.Fprintf(&b, "  %-14s %5.1f%%\n", l.String()+":", 100*p.Probabilities[l])
	}

	b.WriteString("\n")
	b.WriteString(Disclaimer)
	b.WriteString("\n")
	return b.String()
}

func formatValue(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
