package gwerror

import "fmt"

// Error is the gateway's single error type: a Kind plus an optional
// non-sensitive Detail shown to the client, and an optional cause kept only
// for logs (never rendered).
//
// Detail may carry a short, non-sensitive hint such as an offered algorithm
// name — never key material, signature bytes, or raw headers. Callers are
// responsible for only populating Detail with values
// that are already safe to show; Render still escapes it regardless.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

// New constructs an *Error of the given kind with an optional detail hint.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs an *Error of the given kind, carrying cause for logging.
// Detail is independent of cause.Error() — it is never derived from the
// wrapped error, since arbitrary internal error text is not guaranteed safe
// to show a client.
func Wrap(kind Kind, cause error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// Error implements the error interface. The returned string is intended for
// logs, not for clients — use Render for the client-facing page.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("gwerror: %s: %v", e.Kind, e.cause)
	}

	if e.Detail != "" {
		return fmt.Sprintf("gwerror: %s: %s", e.Kind, e.Detail)
	}

	return fmt.Sprintf("gwerror: %s", e.Kind)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status code for e's Kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}
