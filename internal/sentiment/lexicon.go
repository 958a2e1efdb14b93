package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// normalization constant for score/sqrt(score² + alpha)
const alpha = 15.0

// valence maps lowercase words to a strength in roughly -4..4.
var valence = map[string]float64{
	// positive
	"good": 1.9, "great": 3.1, "happy": 2.7, "joy": 2.8, "joyful": 2.9, "love": 3.2, "loved": 2.9,
	"calm": 1.5, "peaceful": 2.2, "grateful": 2.6, "thankful": 2.4, "proud": 2.1, "excited": 2.2,
	"hopeful": 2.0, "relaxed": 1.9, "confident": 2.2, "content": 1.8, "glad": 2.0, "nice": 1.8,
	"wonderful": 2.9, "amazing": 2.8, "awesome": 3.1, "fine": 0.8, "better": 1.9, "best": 3.2,
	"enjoy": 2.2, "enjoyed": 2.3, "fun": 2.3, "smile": 2.0, "laugh": 2.3, "kind": 2.0,
	"supported": 1.8, "motivated": 1.9, "energized": 2.1, "rested": 1.6, "optimistic": 2.4,
	"understood": 1.5, "safe": 1.9, "success": 2.7, "accomplished": 2.3, "balanced": 1.4,
	"well": 1.1, "okay": 0.9, "ok": 0.9,
	// negative
	"bad": -2.5, "sad": -2.1, "angry": -2.3, "upset": -2.0, "anxious": -1.9, "worried": -1.9,
	"stressed": -2.0, "stress": -1.8, "tired": -1.5, "exhausted": -2.0, "lonely": -2.1,
	"afraid": -2.2, "scared": -2.2, "hate": -2.7, "hated": -2.9, "terrible": -2.9, "awful": -2.7,
	"horrible": -2.9, "frustrated": -2.1, "annoyed": -1.6, "guilty": -1.8, "ashamed": -2.1,
	"hopeless": -3.0, "depressed": -2.9, "miserable": -2.9, "hurt": -2.2, "cry": -2.1,
	"cried": -2.1, "overwhelmed": -2.0, "nervous": -1.6, "fear": -2.2, "panic": -2.5,
	"worse": -2.1, "worst": -3.1, "pain": -2.2, "failed": -2.3, "failure": -2.6, "mad": -2.2,
	"irritated": -1.8, "drained": -1.8, "burnout": -2.3, "hard": -0.8, "difficult": -1.2,
	"problem": -1.4, "problems": -1.5, "conflict": -1.6, "alone": -1.0, "empty": -1.6,
}

// multipliers applied to the next sentiment-bearing word
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "so": 1.2, "incredibly": 1.5,
	"totally": 1.3, "completely": 1.3, "deeply": 1.4, "quite": 1.1,
	"slightly": 0.6, "somewhat": 0.7, "barely": 0.5, "little": 0.7,
}

var negators = map[string]bool{
	"not": true, "never": true, "no": true, "nothing": true, "nobody": true,
	"none": true, "neither": true, "nor": true, "without": true, "hardly": true,
}

// negation scope in words after a negator
const negationWindow = 3

// negation flips and dampens, as in VADER
const negationScale = -0.74

// Lexicon is a rule-based analyzer in the style of VADER: summed word
// valence with negation and intensifier handling, normalized to
// -100..100.
type Lexicon struct{}

func NewLexicon() *Lexicon { return &Lexicon{} }

func (l *Lexicon) Analyze(_ context.Context, text string) (float64, error) {
	return l.Score(text), nil
}

func (l *Lexicon) AnalyzeDetailed(_ context.Context, text string) (Result, error) {
	return Result{Score: l.Score(text), Patterns: DetectPatterns(text)}, nil
}

// Score is the synchronous form of Analyze.
func (l *Lexicon) Score(text string) float64 {
	words := tokenize(text)

	sum := 0.0
	boost := 1.0
	negatedFor := 0
	for _, w := range words {
		if isNegator(w) {
			negatedFor = negationWindow
			continue
		}
		if m, ok := intensifiers[w]; ok {
			boost *= m
			continue
		}
		v, ok := valence[w]
		if !ok {
			if negatedFor > 0 {
				negatedFor--
			}
			continue
		}
		v *= boost
		if negatedFor > 0 {
			v *= negationScale
			negatedFor = 0
		}
		sum += v
		boost = 1.0
	}

	if sum == 0 {
		return 0
	}
	return clamp(100 * sum / math.Sqrt(sum*sum+alpha))
}

func isNegator(w string) bool {
	return negators[w] || strings.HasSuffix(w, "n't")
}

// tokenize lowercases text and splits it into words, keeping apostrophes
// so contractions like "didn't" survive.
func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
