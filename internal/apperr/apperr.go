// Package apperr defines the error kinds shared by pman's collaborators and
// the UI that reports them.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingPrerequisite
	KindSessionManager
	KindVersionControl
	KindNotARepository
	KindUncommittedChanges
	KindBridge
	KindIO
	KindTerminal
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindMissingPrerequisite:
		return "missing prerequisite"
	case KindSessionManager:
		return "tmux"
	case KindVersionControl:
		return "git"
	case KindNotARepository:
		return "not a git repository"
	case KindUncommittedChanges:
		return "uncommitted changes"
	case KindBridge:
		return "nvim"
	case KindIO:
		return "io"
	case KindTerminal:
		return "terminal"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the concrete error carried across package boundaries.
type Error struct {
	Kind Kind
	Tool string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingPrerequisite:
		if e.Msg != "" {
			return e.Msg
		}
		return fmt.Sprintf("%s is required", e.Tool)
	case KindNotARepository, KindUncommittedChanges, KindCancelled:
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		}
		return e.Kind.String()
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind && other.Tool == "" && other.Msg == "" && other.Err == nil
}

var (
	ErrNotARepository     = &Error{Kind: KindNotARepository}
	ErrUncommittedChanges = &Error{Kind: KindUncommittedChanges}
	ErrCancelled          = &Error{Kind: KindCancelled}
)

func MissingPrerequisite(tool, hint string) error {
	return &Error{Kind: KindMissingPrerequisite, Tool: tool, Msg: hint}
}

func SessionManager(format string, args ...interface{}) error {
	return &Error{Kind: KindSessionManager, Msg: fmt.Sprintf(format, args...)}
}

func VersionControl(format string, args ...interface{}) error {
	return &Error{Kind: KindVersionControl, Msg: fmt.Sprintf(format, args...)}
}

func Bridge(format string, args ...interface{}) error {
	return &Error{Kind: KindBridge, Msg: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem or process error.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: err}
}

// Terminal wraps a tty state error.
func Terminal(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindTerminal, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
