package domain

import "errors"

var (
	ErrNotLoggedIn        = errors.New("no user logged in")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientPoints = errors.New("insufficient reward points")
	ErrNotCached          = errors.New("no cached entry")
)

// Kind buckets a failure for callers that care about the class of problem
// rather than the exact error.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindTransport   Kind = "transport"
	KindPersistence Kind = "persistence"
	KindUnknown     Kind = "unknown"
)

// ClassifiedError attaches a Kind to an underlying error.
type ClassifiedError struct {
	Kind Kind
	Err  error
}

func (e *ClassifiedError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Classify wraps err with the given kind. A nil err returns nil.
func Classify(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{Kind: kind, Err: err}
}

// KindOf reports the failure kind of err, checking explicit classification
// first and falling back to the sentinel errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Kind
	}

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrProductNotFound), errors.Is(err, ErrNotCached):
		return KindNotFound
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrInsufficientPoints):
		return KindValidation
	default:
		return KindUnknown
	}
}
