package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrTimeout             = errors.New("generation timed out")
	ErrEmptyResponse       = errors.New("empty response from provider")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderError       = errors.New("provider error")
)

// Error is the tagged failure returned by providers and the Client.
type Error struct {
	Kind     error // One of the Err* kinds above
	Provider string
	Err      error // Underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, provider string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// transportError tags an error returned while talking to a provider.
// Dial, DNS and other network failures count as unavailability.
func transportError(provider string, err error) *Error {
	var netErr net.Error
	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.As(err, &netErr) || errors.As(err, &urlErr) {
		if !errors.Is(err, context.Canceled) {
			return newError(ErrProviderUnavailable, provider, err)
		}
	}
	return newError(ErrProviderError, provider, err)
}
