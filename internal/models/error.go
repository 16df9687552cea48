package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
)

// Reason strips the sentinel prefix from a wrapped validation error so the
// remaining text can be shown to the user.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var re *ReasonError
	if errors.As(err, &re) {
		return re.Reason
	}
	return err.Error()
}

// ReasonError pairs a sentinel error with a user-facing reason
type ReasonError struct {
	Kind   error
	Reason string
}

func (e *ReasonError) Error() string {
	return e.Reason
}

func (e *ReasonError) Unwrap() error {
	return e.Kind
}

// Errorf builds a ReasonError with the given sentinel kind
func Errorf(kind error, reason string) error {
	return &ReasonError{Kind: kind, Reason: reason}
}
