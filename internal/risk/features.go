// Package risk is an auxiliary wellbeing-risk classifier. A small random
// forest is trained on synthetic questionnaire data and explains its
// prediction in plain text. It is a self-reflection aid only and gives
// no clinical diagnosis.
package risk

import (
	"github.com/abhisek/soulsense/internal/exam"
)

// Feature indices into a feature vector.
const (
	FeatRecognition = iota
	FeatUnderstanding
	FeatRegulation
	FeatReflection
	FeatSocial
	FeatTotal
	FeatAge
	FeatAverage
	numFeatures
)

// FeatureNames are the readable names of the feature vector, in order.
var FeatureNames = [numFeatures]string{
	"Emotional recognition",
	"Emotional understanding",
	"Emotional regulation",
	"Emotional reflection",
	"Social awareness",
	"Total score",
	"Age",
	"Average score",
}

// Input cleaning bounds.
const (
	DefaultAge     = 25
	MinAge         = 5
	MaxAge         = 120
	DefaultAnswer  = 3
	referenceCount = 10 // questions per synthetic training session
)

// Features is a cleaned feature vector.
type Features [numFeatures]float64

// Clean clamps answers to the answer scale, the age to MinAge..MaxAge
// (DefaultAge when unknown) and the total to at least zero.
func Clean(answers []int, age *int, total int) ([]int, int, int) {
	out := make([]int, len(answers))
	for i, a := range answers {
		out[i] = min(max(a, exam.MinAnswer), exam.MaxAnswer)
	}
	a := DefaultAge
	if age != nil {
		a = min(max(*age, MinAge), MaxAge)
	}
	return out, a, max(total, 0)
}

// NewFeatures builds the cleaned feature vector. The first five answers
// are used directly, defaulting to DefaultAnswer when missing. The total
// is rescaled to a 10-question session so sessions of any length are
// comparable with the training data.
func NewFeatures(answers []int, age *int, total int) Features {
	answers, a, total := Clean(answers, age, total)

	var f Features
	for i := range FeatTotal {
		f[i] = DefaultAnswer
		if i < len(answers) {
			f[i] = float64(answers[i])
		}
	}
	n := max(len(answers), 1)
	f[FeatAverage] = float64(total) / float64(n)
	f[FeatTotal] = f[FeatAverage] * referenceCount
	f[FeatAge] = float64(a)
	return f
}

// FromResult builds features from a finished session.
func FromResult(r exam.Result) Features {
	values := make([]int, len(r.Answers))
	for i, a := range r.Answers {
		values[i] = a.Value
	}
	return NewFeatures(values, r.Age, r.Score)
}
