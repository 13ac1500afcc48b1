package domain

import (
	"errors"
	"fmt"
)

// ErrNoPlaceID means no branch of the resolver could derive a place id.
var ErrNoPlaceID = errors.New("place id not found in url")

// RedirectError reports a failed short-link expansion. The resolver treats it
// as non-fatal and keeps trying pattern extraction on the original URL.
type RedirectError struct {
	URL string
	Err error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("expanding short link %s: %v", e.URL, e.Err)
}

func (e *RedirectError) Unwrap() error { return e.Err }

// FetchError reports a failed Places API call. APIStatus is set when the call
// succeeded at the HTTP level but the body carried a non-OK status field;
// otherwise Err holds the transport-level failure.
type FetchError struct {
	Endpoint  string
	APIStatus string
	Err       error
}

func (e *FetchError) Error() string {
	if e.APIStatus != "" {
		return fmt.Sprintf("places %s returned status %q", e.Endpoint, e.APIStatus)
	}
	return fmt.Sprintf("places %s request failed: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
