// Package exam implements the assessment session: a linear walk through a
// fixed question list with backward navigation, an optional reflection and
// a single persisted score.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/questions"
	"github.com/abhisek/soulsense/internal/store"
)

// SentimentAnalyzer scores free text in roughly [-100, 100]; positive is
// a favorable tone.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

// Recorder persists a finished session.
type Recorder interface {
	SaveExam(ctx context.Context, rec store.ExamRecord) (int64, error)
}

// Session is one user's run through a question list. It is not safe for
// concurrent use; a single UI controller owns it.
type Session struct {
	id        string
	user      profile.Profile
	ageGroup  string
	questions []questions.Question

	state   State
	index   int
	answers []Answer

	reflection string
	sentiment  *float64

	startedAt  time.Time
	shownAt    time.Time
	finishedAt time.Time

	finalized bool
	saved     bool
	scoreID   int64
	saveErr   error

	now    func() time.Time
	logger *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithID overrides the generated session id.
func WithID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// NewSession creates a session for user over qs. The question slice is
// copied; the session never mutates it.
func NewSession(user profile.Profile, qs []questions.Question, opts ...SessionOption) *Session {
	s := &Session{
		id:        uuid.NewString(),
		user:      user,
		ageGroup:  user.AgeGroup(),
		questions: append([]questions.Question(nil), qs...),
		state:     NotStarted,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start begins the session at the first question.
func (s *Session) Start() error {
	if s.state != NotStarted {
		return &StateError{Op: "start", State: s.state}
	}
	if len(s.questions) == 0 {
		return ErrEmptyQuestionSet
	}
	s.index = 0
	s.answers = s.answers[:0]
	s.startedAt = s.now()
	s.shownAt = s.startedAt
	s.state = InProgress
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (questions.Question, error) {
	if s.state != InProgress {
		return questions.Question{}, &StateError{Op: "current question", State: s.state}
	}
	return s.questions[s.index], nil
}

// Progress reports the current index against the question count.
func (s *Session) Progress() Progress {
	p := Progress{Current: s.index, Total: len(s.questions)}
	if p.Total > 0 {
		p.Percent = 100 * float64(p.Current) / float64(p.Total)
	}
	return p
}

// SubmitAnswer records value for the current question and advances.
// Answering the last question moves the session to AwaitingReflection.
func (s *Session) SubmitAnswer(value int) error {
	if s.state != InProgress {
		return &StateError{Op: "submit answer", State: s.state}
	}
	if value < MinAnswer || value > MaxAnswer {
		return fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidAnswer, value, MinAnswer, MaxAnswer)
	}

	now := s.now()
	elapsed := now.Sub(s.shownAt)
	if elapsed < 0 {
		elapsed = 0
	}
	s.answers = append(s.answers, Answer{
		QuestionIndex: s.index,
		QuestionID:    s.questions[s.index].ID,
		Value:         value,
		Elapsed:       elapsed,
	})
	s.index++
	s.shownAt = now

	if s.index == len(s.questions) {
		s.state = AwaitingReflection
	}
	return nil
}

// GoBack returns to the previous question and discards every answer from
// that index on. It reports false, changing nothing, at the first question.
func (s *Session) GoBack() (bool, error) {
	if s.state != InProgress {
		return false, &StateError{Op: "go back", State: s.state}
	}
	if s.index == 0 {
		return false, nil
	}
	s.index--
	s.answers = s.answers[:s.index]
	s.shownAt = s.now()
	return true, nil
}

// IsFinished reports whether every question has been answered.
func (s *Session) IsFinished() bool {
	return s.state != NotStarted && s.index >= len(s.questions)
}

// SubmitReflection stores the free-text reflection and finishes answering.
// An empty text is an explicit skip. When analyzer is non-nil and text is
// not blank, the sentiment score is computed; an analyzer failure is
// logged and leaves the score unset.
func (s *Session) SubmitReflection(ctx context.Context, text string, analyzer SentimentAnalyzer) error {
	if s.state != AwaitingReflection {
		return &StateError{Op: "submit reflection", State: s.state}
	}
	text = strings.TrimSpace(text)
	s.reflection = text

	if analyzer != nil && text != "" {
		score, err := analyzer.Analyze(ctx, text)
		if err != nil {
			s.logger.Warn("reflection sentiment failed", "session", s.id, "error", err)
		} else {
			s.sentiment = &score
		}
	}

	s.finishedAt = s.now()
	s.state = Finished
	return nil
}

// SkipReflection finishes without a reflection.
func (s *Session) SkipReflection() error {
	return s.SubmitReflection(context.Background(), "", nil)
}

// Finish persists the score through rec. A single attempt is made: a
// storage failure is logged and reported as saved=false, and the in-memory
// result stays available from Result. The error is non-nil only when
// Finish is called outside Finished or more than once.
func (s *Session) Finish(ctx context.Context, rec Recorder) (bool, error) {
	if s.state != Finished || s.finalized {
		return false, &StateError{Op: "finish", State: s.state}
	}
	s.finalized = true

	if rec == nil {
		s.saveErr = &PersistenceError{SessionID: s.id, Err: ErrNoRecorder}
		s.logger.Error("save session score", "session", s.id, "user", s.user.Name, "error", ErrNoRecorder)
		return false, nil
	}
	id, err := rec.SaveExam(ctx, s.record())
	if err != nil {
		s.saveErr = &PersistenceError{SessionID: s.id, Err: err}
		s.logger.Error("save session score", "session", s.id, "user", s.user.Name, "error", err)
		return false, nil
	}
	s.saved = true
	s.scoreID = id
	s.logger.Info("session saved", "session", s.id, "user", s.user.Name, "score", s.Score(), "score_id", id)
	return true, nil
}

// Score sums the recorded answer values.
func (s *Session) Score() int {
	total := 0
	for _, a := range s.answers {
		total += a.Value
	}
	return total
}

// MaxScore is the best achievable score for the answers given.
func (s *Session) MaxScore() int {
	return len(s.answers) * MaxAnswer
}

func (s *Session) record() store.ExamRecord {
	rec := store.ExamRecord{
		Score: store.ScoreRecord{
			SessionID:  s.id,
			Username:   s.user.Name,
			Age:        s.user.Age,
			AgeGroup:   s.ageGroup,
			TotalScore: s.Score(),
			MaxScore:   s.MaxScore(),
			Reflection: s.reflection,
			Sentiment:  s.sentiment,
			DurationMs: s.duration().Milliseconds(),
			CreatedAt:  s.finishedAt,
		},
		Responses: make([]store.ResponseRecord, len(s.answers)),
	}
	for i, a := range s.answers {
		rec.Responses[i] = store.ResponseRecord{
			Username:      s.user.Name,
			QuestionID:    a.QuestionID,
			QuestionIndex: a.QuestionIndex,
			Value:         a.Value,
			AgeGroup:      s.ageGroup,
			ElapsedMs:     a.ElapsedMs(),
		}
	}
	return rec
}

func (s *Session) duration() time.Duration {
	var d time.Duration
	for _, a := range s.answers {
		d += a.Elapsed
	}
	return d
}

// ID is the session's unique id.
func (s *Session) ID() string { return s.id }

// User is the profile the session runs under.
func (s *Session) User() profile.Profile { return s.user }

// AgeGroup is the bucket derived from the user's age.
func (s *Session) AgeGroup() string { return s.ageGroup }

// State is the current lifecycle state.
func (s *Session) State() State { return s.state }

// Index is the current question index.
func (s *Session) Index() int { return s.index }

// Len is the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []Answer { return append([]Answer(nil), s.answers...) }

// Reflection returns the stored reflection text.
func (s *Session) Reflection() string { return s.reflection }

// Sentiment returns the reflection score, nil when not computed.
func (s *Session) Sentiment() *float64 { return s.sentiment }

// StartedAt is when Start was called.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// SaveErr returns the persistence failure from Finish, if any.
func (s *Session) SaveErr() error { return s.saveErr }
