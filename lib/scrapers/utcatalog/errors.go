package utcatalog

import "fmt"

type FetchErrorKind int

const (
	// FetchTimeout means the request (or its context) timed out.
	FetchTimeout FetchErrorKind = iota
	// FetchExhaustedRetries means every attempt at a transient failure
	// (network error, 5xx, 429) was used up.
	FetchExhaustedRetries
	// FetchHttpStatus means a non-retryable HTTP status was returned,
	// retrying would not have helped.
	FetchHttpStatus
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchExhaustedRetries:
		return "exhausted retries"
	case FetchHttpStatus:
		return "http status"
	}
	return fmt.Sprintf("FetchErrorKind(%d)", int(k))
}

// FetchError is a transport-level failure from the fetch layer. Transient
// conditions are retried internally before one of these surfaces.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchHttpStatus {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %s", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the HTML did not match any known page shape. Retrying
// will not fix a layout mismatch, so these are never retried.
type ParseError struct {
	Shape  PageShape
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected page layout (%s): %s", e.Shape, e.Reason)
}

// MappingError means a required field could not be extracted even though
// the page parsed structurally. Optional fields never produce one, they
// degrade to defaults instead.
type MappingError struct {
	Field string
	Value string
}

func (e *MappingError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("unparseable required field %q: %q", e.Field, e.Value)
}

// NotFoundError means a detail fetch landed on the catalogue's well-formed
// "no such course" page, as opposed to an unrecognized layout.
type NotFoundError struct {
	Code string
	Year int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("course %s (%d) not found", e.Code, e.Year)
}
