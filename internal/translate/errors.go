package translate

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; use errors.As with *Error for details.
var (
	// ErrTransport covers connection failures and non-JSON error bodies.
	// These are not retried here.
	ErrTransport = errors.New("transport error")
	// ErrProtocol means the response was not shaped as expected.
	ErrProtocol = errors.New("protocol error")
	// ErrRateLimitExceeded means the throttle code outlived every retry.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrTranslationFailed means any other remote error outlived the retry budget.
	ErrTranslationFailed = errors.New("translation failed")
	// ErrAuthFetch means the auth endpoint could not produce a token.
	ErrAuthFetch = errors.New("auth fetch failed")
)

type Error struct {
	Kind    error
	Chunk   int
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Chunk >= 0 {
		msg = fmt.Sprintf("%s (chunk %d)", msg, e.Chunk)
	}
	switch {
	case e.Code != 0:
		// Err is the remote error itself; Code and Message already say it all.
		return fmt.Sprintf("%s: code %d: %s", msg, e.Code, e.Message)
	case e.Message != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, chunk int, err error) *Error {
	return &Error{Kind: kind, Chunk: chunk, Err: err}
}
