package ai

import "errors"

var (
	ErrUnavailable       = errors.New("ai service unavailable")
	ErrTimeout           = errors.New("ai request timed out")
	ErrUpstream          = errors.New("ai upstream failed")
	ErrMalformedResponse = errors.New("malformed ai response")
)

// Error is a classified provider failure. Kind is one of the sentinels above,
// Detail is safe to return to the client.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Detail returns the client-facing text of err.
func Detail(err error) string {
	var aiErr *Error
	if errors.As(err, &aiErr) && aiErr.Detail != "" {
		return aiErr.Detail
	}
	return err.Error()
}
