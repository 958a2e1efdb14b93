package exam

import "time"

// Band is the interpretation of a percentage score.
type Band int

const (
	BandRoomToGrow Band = iota
	BandAverage
	BandGood
	BandExcellent
)

// Interpret maps a percentage (0..100) to a Band.
func Interpret(percentage float64) Band {
	switch {
	case percentage >= 65:
		return BandExcellent
	case percentage >= 50:
		return BandGood
	case percentage >= 35:
		return BandAverage
	default:
		return BandRoomToGrow
	}
}

func (b Band) String() string {
	switch b {
	case BandExcellent:
		return "Excellent"
	case BandGood:
		return "Good"
	case BandAverage:
		return "Average"
	default:
		return "Room to grow"
	}
}

// MessageID is the translation key for the band's description.
func (b Band) MessageID() string {
	switch b {
	case BandExcellent:
		return "band.excellent"
	case BandGood:
		return "band.good"
	case BandAverage:
		return "band.average"
	default:
		return "band.room_to_grow"
	}
}

// CategoryQuestionCount is the session length category scoring expects.
const CategoryQuestionCount = 10

// Category is one fixed slice of a 10-question session.
type Category struct {
	Name      string
	MessageID string
	From, To  int // answer indices, To exclusive
}

// Categories partitions a 10-answer session into three groups.
var Categories = []Category{
	{Name: "Self-awareness", MessageID: "category.self_awareness", From: 0, To: 3},
	{Name: "Self-regulation", MessageID: "category.self_regulation", From: 3, To: 6},
	{Name: "Social awareness", MessageID: "category.social_awareness", From: 6, To: 10},
}

// CategoryScore is the summed score of one Category.
type CategoryScore struct {
	Category
	Score int
	Max   int
}

// CategoryScores sums each Category over answers. It fails with
// ErrCategoryShape unless there are exactly CategoryQuestionCount answers.
func CategoryScores(answers []Answer) ([]CategoryScore, error) {
	if len(answers) != CategoryQuestionCount {
		return nil, ErrCategoryShape
	}
	out := make([]CategoryScore, len(Categories))
	for i, c := range Categories {
		cs := CategoryScore{Category: c, Max: (c.To - c.From) * MaxAnswer}
		for _, a := range answers[c.From:c.To] {
			cs.Score += a.Value
		}
		out[i] = cs
	}
	return out, nil
}

// Result is the in-memory outcome of a session.
type Result struct {
	SessionID  string
	Username   string
	Age        *int
	AgeGroup   string
	Score      int
	MaxScore   int
	Percentage float64
	Band       Band
	Categories []CategoryScore // nil unless the session had 10 answers
	Reflection string
	Sentiment  *float64
	Duration   time.Duration
	Answers    []Answer
	Saved      bool
	ScoreID    int64
}

// Result returns the session outcome. It is available whether or not the
// score was persisted.
func (s *Session) Result() Result {
	r := Result{
		SessionID:  s.id,
		Username:   s.user.Name,
		Age:        s.user.Age,
		AgeGroup:   s.ageGroup,
		Score:      s.Score(),
		MaxScore:   s.MaxScore(),
		Reflection: s.reflection,
		Sentiment:  s.sentiment,
		Duration:   s.duration(),
		Answers:    s.Answers(),
		Saved:      s.saved,
		ScoreID:    s.scoreID,
	}
	if r.MaxScore > 0 {
		r.Percentage = 100 * float64(r.Score) / float64(r.MaxScore)
	}
	r.Band = Interpret(r.Percentage)
	if cats, err := CategoryScores(r.Answers); err == nil {
		r.Categories = cats
	}
	return r
}
