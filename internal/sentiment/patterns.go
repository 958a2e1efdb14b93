package sentiment

import "strings"

// Pattern names reported by DetectPatterns.
const (
	PatternStress     = "Stress"
	PatternAnxiety    = "Anxiety"
	PatternGratitude  = "Gratitude"
	PatternSadness    = "Sadness"
	PatternJoy        = "Joy"
	PatternAnger      = "Anger"
	PatternFatigue    = "Fatigue"
	PatternSocial     = "Social connection"
	PatternReflection = "Self-reflection"
)

type family struct {
	name     string
	keywords []string // exact words; a trailing * matches any word with that prefix
}

// families are checked in this order, which is also the order of the
// returned patterns.
var families = []family{
	{PatternStress, []string{"stress*", "pressure*", "deadline*", "overwhelm*", "burnout", "hectic", "busy"}},
	{PatternAnxiety, []string{"anxi*", "worr*", "nervous", "panic*", "afraid", "fear*", "uneasy", "restless"}},
	{PatternGratitude, []string{"grateful", "thank*", "gratitude", "appreciat*", "blessed", "lucky"}},
	{PatternSadness, []string{"sad", "sadness", "cry", "cried", "crying", "lonely", "depress*", "unhappy", "grief", "hopeless", "heartbroken"}},
	{PatternJoy, []string{"happy", "happiness", "joy*", "excit*", "delight*", "fun", "laugh*", "wonderful", "great"}},
	{PatternAnger, []string{"angry", "anger", "mad", "furious", "annoy*", "irritat*", "frustrat*", "rage"}},
	{PatternFatigue, []string{"tired", "exhaust*", "sleepy", "drained", "fatigue*", "weary", "insomnia"}},
	{PatternSocial, []string{"friend*", "family", "talk*", "together", "partner", "colleague*", "team", "people", "mom", "dad"}},
	{PatternReflection, []string{"realiz*", "realis*", "learn*", "reflect*", "understand*", "noticed", "myself", "grow*"}},
}

// DetectPatterns returns the pattern families whose keywords appear in
// text, in a fixed order. It returns nil when nothing matches. A keyword
// within negationWindow words after a negator ("not happy", "don't feel
// sad") is not counted, and it uses up that negation the way Score does.
func DetectPatterns(text string) []string {
	found := make([]bool, len(families))
	negatedFor := 0
	for _, w := range tokenize(text) {
		if isNegator(w) {
			negatedFor = negationWindow
			continue
		}
		hit := false
		for i, f := range families {
			if matchesWord(w, f.keywords) {
				hit = true
				if negatedFor == 0 {
					found[i] = true
				}
			}
		}
		switch {
		case hit:
			negatedFor = 0
		case negatedFor > 0:
			negatedFor--
		}
	}

	var out []string
	for i, f := range families {
		if found[i] {
			out = append(out, f.name)
		}
	}
	return out
}

func matchesWord(w string, keywords []string) bool {
	for _, k := range keywords {
		if stem, ok := strings.CutSuffix(k, "*"); ok {
			if strings.HasPrefix(w, stem) {
				return true
			}
		} else if w == k {
			return true
		}
	}
	return false
}

// KnownPattern reports whether name is one of the pattern families.
func KnownPattern(name string) bool {
	for _, f := range families {
		if f.name == name {
			return true
		}
	}
	return false
}

// PatternNames lists every family in detection order.
func PatternNames() []string {
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.name
	}
	return names
}
