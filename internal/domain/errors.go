package domain

import "fmt"

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError reports a collaborator that answered with a failure.
// StatusCode is zero when the collaborator exposes no HTTP status.
type UpstreamError struct {
	Service    string
	StatusCode int
	StatusText string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: %d %s: %v", e.Service, e.StatusCode, e.StatusText, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d %s", e.Service, e.StatusCode, e.StatusText)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return e.Service + ": upstream failure"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// TransportError reports a collaborator that could not be reached.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a collaborator response that broke the expected format.
// Raw carries the untouched payload for diagnosis.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
