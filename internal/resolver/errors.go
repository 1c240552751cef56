package resolver

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrEmptyCandidateSet = errors.New("category has no candidate tweets")
	ErrRemoteUnavailable = errors.New("tweet service unavailable")
	ErrRemoteRejected    = errors.New("tweet service rejected the request")
	ErrMalformedResponse = errors.New("malformed tweet service response")
)

// Error is the failure half of a resolution. Kind is one of the sentinel
// errors above; Err, when set, is the underlying cause.
type Error struct {
	Kind       error
	Category   string
	StatusCode int // set for ErrRemoteRejected
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Category != "" {
		msg = fmt.Sprintf("%s (category %q)", msg, e.Category)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

func failure(kind error, category string, cause error) *Error {
	return &Error{Kind: kind, Category: category, Err: cause}
}

// KindOf returns the sentinel kind of err, or nil when err did not come
// from a resolver.
func KindOf(err error) error {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return nil
}
