package exam

import "time"

// State is the lifecycle phase of a Session.
type State int

const (
	NotStarted         State = iota // constructed, Start not yet called
	InProgress                      // questions being answered
	AwaitingReflection              // every question answered, reflection pending
	Finished                        // reflection recorded or skipped
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case InProgress:
		return "IN_PROGRESS"
	case AwaitingReflection:
		return "AWAITING_REFLECTION"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Answer values run from MinAnswer (Never) to MaxAnswer (Always).
const (
	MinAnswer = 1
	MaxAnswer = 4
)

// Answer is the response recorded for one question.
type Answer struct {
	// QuestionIndex is the position of the question in the session.
	QuestionIndex int

	// QuestionID is the bank id of the question answered.
	QuestionID int

	// Value is the chosen option, MinAnswer..MaxAnswer.
	Value int

	// Elapsed is the time between the question being shown and answered.
	Elapsed time.Duration
}

// ElapsedMs returns Elapsed in whole milliseconds.
func (a Answer) ElapsedMs() int64 {
	return a.Elapsed.Milliseconds()
}

// Option is one of the four answer choices.
type Option struct {
	Value     int
	Label     string
	MessageID string
}

// Options lists the answer choices in value order.
var Options = []Option{
	{Value: 1, Label: "Never", MessageID: "option.never"},
	{Value: 2, Label: "Sometimes", MessageID: "option.sometimes"},
	{Value: 3, Label: "Often", MessageID: "option.often"},
	{Value: 4, Label: "Always", MessageID: "option.always"},
}

// Progress reports how far through the question list a session is.
type Progress struct {
	Current int     // answered so far (the current index)
	Total   int     // number of questions
	Percent float64 // 100 * Current / Total, 0 when Total is 0
}

// Position is the 1-based number of the question on screen, capped at Total.
func (p Progress) Position() int {
	if p.Current >= p.Total {
		return p.Total
	}
	return p.Current + 1
}
