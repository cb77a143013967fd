package builder

import (
	"errors"
	"fmt"
)

// Reason classifies a SequenceError.
type Reason int

const (
	NotReady Reason = iota
	AlreadyComplete
	DanglingKey
	MismatchedClose
	KeyMisplaced
	BadPlacement
)

var (
	ErrSequence = errors.New("sequence error")

	ErrNotReady        = errors.New("document is not ready for build")
	ErrAlreadyComplete = errors.New("document is already complete")
	ErrDanglingKey     = errors.New("key without value")
	ErrMismatchedClose = errors.New("close without matching start")
	ErrKeyMisplaced    = errors.New("key in an unexpected place")
	ErrBadPlacement    = errors.New("bad place for a value")
)

var reasonErrs = [...]error{
	NotReady:        ErrNotReady,
	AlreadyComplete: ErrAlreadyComplete,
	DanglingKey:     ErrDanglingKey,
	MismatchedClose: ErrMismatchedClose,
	KeyMisplaced:    ErrKeyMisplaced,
	BadPlacement:    ErrBadPlacement,
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonErrs) {
		return fmt.Sprintf("<reason %d>", int(r))
	}
	return reasonErrs[r].Error()
}

// SequenceError reports a call that would make the document malformed.
// It matches ErrSequence and the sentinel of its Reason under errors.Is.
type SequenceError struct {
	Op     string
	Call   int
	Reason Reason
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s: %s at call %d (%s)", ErrSequence, e.Reason, e.Call, e.Op)
}

func (e *SequenceError) Unwrap() []error {
	if e.Reason < 0 || int(e.Reason) >= len(reasonErrs) {
		return []error{ErrSequence}
	}
	return []error{ErrSequence, reasonErrs[e.Reason]}
}
