// Package errkind defines the closed set of failures the helper can report.
//
// Callers match on the failure kind with errors.Is against the sentinels (ErrForbidden, …)
// or extract the details with errors.As on *Error.
package errkind

import (
	"errors"

	"github.com/xerolinux/xfprintd-gui/internal/i18n"
)

// Kind is the category of a failure.
type Kind int

const (
	// Unknown is returned by KindOf for errors not produced by this package.
	Unknown Kind = iota
	// Forbidden means the target path is outside the allowlisted directories.
	Forbidden
	// UnknownTarget means no patch content can be resolved for the target.
	UnknownTarget
	// NotFound means a required resource, like a patch fragment, is missing.
	NotFound
	// IOFailure wraps an operating system level read, write, rename or chmod failure.
	IOFailure
	// PermissionDenied means a mutating operation was requested without elevated privileges.
	PermissionDenied
)

func (k Kind) String() string {
	switch k {
	case Forbidden:
		return "forbidden"
	case UnknownTarget:
		return "unknown target"
	case NotFound:
		return "not found"
	case IOFailure:
		return "i/o failure"
	case PermissionDenied:
		return "permission denied"
	default:
		return "unknown"
	}
}

// Sentinels to use with errors.Is.
var (
	ErrForbidden        = &Error{Kind: Forbidden}
	ErrUnknownTarget    = &Error{Kind: UnknownTarget}
	ErrNotFound         = &Error{Kind: NotFound}
	ErrIOFailure        = &Error{Kind: IOFailure}
	ErrPermissionDenied = &Error{Kind: PermissionDenied}
)

// Error is a categorized failure about Path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// New returns a new error of kind k about path, wrapping err which can be nil.
func New(k Kind, path string, err error) *Error {
	return &Error{Kind: k, Path: path, Err: err}
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case Forbidden:
		msg = i18n.G("target path is not allowlisted: %s", e.Path)
	case UnknownTarget:
		msg = i18n.G("no configuration known for %s", e.Path)
	case NotFound:
		msg = i18n.G("patch file not found: %s", e.Path)
	case IOFailure:
		msg = i18n.G("i/o failure on %s", e.Path)
	case PermissionDenied:
		msg = i18n.G("permission denied: must be run as root (via pkexec)")
	default:
		msg = e.Path
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	// Only sentinels (no path nor cause) match by kind.
	if t.Path != "" || t.Err != nil {
		return t == e
	}
	return t.Kind == e.Kind
}

// FromIO categorizes a lower level I/O error about path.
// Already categorized errors are returned unchanged and nil stays nil.
func FromIO(path string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return New(IOFailure, path, err)
}

// KindOf returns the kind of the first categorized error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
