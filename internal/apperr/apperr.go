// Package apperr defines the closed set of failures the tracker can report.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the failure cases.
type Kind int

const (
	KindNoActiveTask Kind = iota + 1
	KindDataLoad
	KindDataSave
	KindInvalidPeriod
)

func (k Kind) String() string {
	switch k {
	case KindNoActiveTask:
		return "no active task"
	case KindDataLoad:
		return "failed to load data"
	case KindDataSave:
		return "failed to save data"
	case KindInvalidPeriod:
		return "invalid period"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrNoActiveTask  = &Error{Kind: KindNoActiveTask}
	ErrDataLoad      = &Error{Kind: KindDataLoad}
	ErrDataSave      = &Error{Kind: KindDataSave}
	ErrInvalidPeriod = &Error{Kind: KindInvalidPeriod}
)

// Error carries a Kind plus optional detail and cause.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrDataLoad)
// holds regardless of detail or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NoActiveTask() error {
	return &Error{Kind: KindNoActiveTask}
}

func DataLoad(path string, err error) error {
	return &Error{Kind: KindDataLoad, Detail: path, Err: err}
}

func DataSave(path string, err error) error {
	return &Error{Kind: KindDataSave, Detail: path, Err: err}
}

func InvalidPeriod(period string) error {
	return &Error{Kind: KindInvalidPeriod, Detail: fmt.Sprintf("%q (supported: today)", period)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCode maps an error to a process exit status: 0 for nil, 2 for storage
// failures and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindDataLoad, KindDataSave:
		return 2
	default:
		return 1
	}
}
