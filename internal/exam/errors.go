package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState reports an operation called outside its valid state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrInvalidAnswer reports an answer value outside MinAnswer..MaxAnswer.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrEmptyQuestionSet reports a session started with no questions.
	ErrEmptyQuestionSet = errors.New("no questions available")

	// ErrCategoryShape reports category scoring on a session that does not
	// have exactly CategoryQuestionCount answers.
	ErrCategoryShape = errors.New("category scores need exactly 10 answers")

	// ErrNoRecorder is wrapped in the PersistenceError of a Finish called
	// without a Recorder.
	ErrNoRecorder = errors.New("no score recorder")
)

// StateError carries the operation and the state it was attempted in.
// It matches ErrInvalidState with errors.Is.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: not allowed in state %s", e.Op, e.State)
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

// PersistenceError wraps a failed score write. Finish logs it and reports
// saved=false; it never changes session state.
type PersistenceError struct {
	SessionID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist session %s: %v", e.SessionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
