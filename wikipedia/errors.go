package wikipedia

import (
	"errors"
	"fmt"
)

// TransportError indicates the request never produced a usable HTTP response:
// network failure, non-2xx status, or an open circuit breaker.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("wikipedia request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("wikipedia request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError indicates the response body was not a JSON object.
type ParseError struct {
	Snippet string // leading part of the body, for diagnostics
	Err     error
}

func (e *ParseError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("failed to parse wikipedia response: %v (body: %q)", e.Err, e.Snippet)
	}
	return fmt.Sprintf("failed to parse wikipedia response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError indicates a page title with no matching result, or a page
// lacking the requested sub-field (revisions, coordinates, extract...).
type NotFoundError struct {
	Title string
	Field string // empty when the page itself is missing
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("page not found: %s", e.Title)
	case e.Title == "":
		return fmt.Sprintf("%s not found in response", e.Field)
	default:
		return fmt.Sprintf("%s not found for page %s", e.Field, e.Title)
	}
}

// ProtocolError indicates a response that breaks the query API contract,
// such as a continuation object carrying several cursors.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "wikipedia protocol error: " + e.Reason
}

// APIError is a MediaWiki error envelope: {"error": {"code": ..., "info": ...}}
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wikipedia API error [%s]: %s", e.Code, e.Info)
}

// IsTransport returns true if the error chain contains a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsParse returns true if the error chain contains a ParseError.
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsNotFound returns true if the error chain contains a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsProtocol returns true if the error chain contains a ProtocolError.
func IsProtocol(err error) bool {
	var target *ProtocolError
	return errors.As(err, &target)
}

// errorKind labels an error for metrics
func errorKind(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case IsTransport(err):
		return "transport"
	case IsParse(err):
		return "parse"
	case IsNotFound(err):
		return "not_found"
	case IsProtocol(err):
		return "protocol"
	case errors.As(err, &apiErr):
		return "api"
	default:
		return "other"
	}
}
