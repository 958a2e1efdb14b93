package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Username string    // exact match (empty = all users)
	Limit    int       // max results (0 = unlimited)
	After    int64     // id or sequence > After
	Before   int64     // id or sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Oldest   bool      // oldest first when set, newest first otherwise
}

// ScoreRecord is one finished assessment.
type ScoreRecord struct {
	ID         int64
	SessionID  string
	Username   string
	Age        *int
	AgeGroup   string
	TotalScore int
	MaxScore   int
	Reflection string
	Sentiment  *float64
	DurationMs int64
	CreatedAt  time.Time
}

// ResponseRecord is a single answer belonging to a ScoreRecord.
type ResponseRecord struct {
	ID            int64
	ScoreID       int64
	Username      string
	QuestionID    int
	QuestionIndex int
	Value         int
	AgeGroup      string
	ElapsedMs     int64
	CreatedAt     time.Time
}

// ExamRecord is what a finished session persists: the score row plus
// one response row per answer, written atomically.
type ExamRecord struct {
	Score     ScoreRecord
	Responses []ResponseRecord
}

// ScoreRepo persists and queries assessment results.
type ScoreRepo interface {
	// SaveExam writes the score and its responses in one transaction and
	// returns the new score ID.
	SaveExam(ctx context.Context, rec ExamRecord) (int64, error)

	// QueryScores returns scores matching opts.
	QueryScores(ctx context.Context, opts QueryOpts) ([]ScoreRecord, error)

	// Responses returns the answers recorded for a score, in question order.
	Responses(ctx context.Context, scoreID int64) ([]ResponseRecord, error)

	// Users returns every distinct username with at least one score.
	Users(ctx context.Context) ([]string, error)

	// DeleteUser removes all scores (and their responses) for username.
	DeleteUser(ctx context.Context, username string) (int64, error)
}

// QuestionRecord is a row of the question bank.
type QuestionRecord struct {
	ID      int
	Text    string
	Tooltip string
	AgeMin  int
	AgeMax  int
}

// QuestionRepo stores the question bank.
type QuestionRepo interface {
	// Replace swaps the whole bank for qs in one transaction.
	Replace(ctx context.Context, qs []QuestionRecord) error

	// Load returns questions ordered by id. When age is non-nil only
	// questions with age_min <= age <= age_max are returned. A limit of 0
	// means no limit.
	Load(ctx context.Context, age *int, limit int) ([]QuestionRecord, error)

	// Count returns the number of stored questions.
	Count(ctx context.Context) (int, error)
}

// JournalEntry is a free-text diary entry with optional wellbeing metrics.
type JournalEntry struct {
	ID           int64
	Username     string
	EntryDate    time.Time
	Content      string
	Sentiment    float64
	Patterns     []string
	SleepHours   *float64
	SleepQuality *int
	EnergyLevel  *int
	WorkHours    *float64
}

// JournalRepo persists journal entries.
type JournalRepo interface {
	Add(ctx context.Context, e JournalEntry) (int64, error)
	Query(ctx context.Context, opts QueryOpts) ([]JournalEntry, error)
	DeleteUser(ctx context.Context, username string) (int64, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request with its global sequence.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests lists events, newest first unless opts.Oldest is set.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMRequest fetches one event by sequence number.
	GetLLMRequest(ctx context.Context, seq int64) (*LLMRequestEvent, error)
}

// MetaRepo is a small key/value table for bookkeeping such as the
// installed question bank version.
type MetaRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
