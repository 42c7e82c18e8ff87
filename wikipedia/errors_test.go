package wikipedia

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "transport with status",
			err:  &TransportError{StatusCode: 502, Err: errors.New("Bad Gateway")},
			want: "wikipedia request failed with status 502: Bad Gateway",
		},
		{
			name: "transport without status",
			err:  &TransportError{Err: errors.New("connection refused")},
			want: "wikipedia request failed: connection refused",
		},
		{
			name: "missing page",
			err:  &NotFoundError{Title: "Qwxzzy"},
			want: "page not found: Qwxzzy",
		},
		{
			name: "missing field",
			err:  &NotFoundError{Title: "Batman", Field: "coordinates"},
			want: "coordinates not found for page Batman",
		},
		{
			name: "missing list",
			err:  &NotFoundError{Field: "query.search"},
			want: "query.search not found in response",
		},
		{
			name: "protocol",
			err:  &ProtocolError{Reason: "two cursors"},
			want: "wikipedia protocol error: two cursors",
		},
		{
			name: "api",
			err:  &APIError{Code: "badvalue", Info: "Unrecognized value"},
			want: "wikipedia API error [badvalue]: Unrecognized value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	cause := errors.New("eof")
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		kind  string
	}{
		{name: "transport", err: &TransportError{Err: cause}, check: IsTransport, kind: "transport"},
		{name: "parse", err: &ParseError{Err: cause}, check: IsParse, kind: "parse"},
		{name: "not found", err: &NotFoundError{Title: "X"}, check: IsNotFound, kind: "not_found"},
		{name: "protocol", err: &ProtocolError{Reason: "x"}, check: IsProtocol, kind: "protocol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wikipedia_get_page failed: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate did not match wrapped %T", tt.err)
			}
			if got := errorKind(wrapped); got != tt.kind {
				t.Errorf("errorKind() = %s, want %s", got, tt.kind)
			}
		})
	}

	if !errors.Is(&TransportError{Err: cause}, cause) {
		t.Error("TransportError should unwrap to its cause")
	}
	if !errors.Is(&ParseError{Err: cause}, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
	if got := errorKind(&APIError{Code: "x"}); got != "api" {
		t.Errorf("errorKind(APIError) = %s, want api", got)
	}
	if got := errorKind(errors.New("plain")); got != "other" {
		t.Errorf("errorKind(plain) = %s, want other", got)
	}
	if got := errorKind(nil); got != "" {
		t.Errorf("errorKind(nil) = %q, want empty", got)
	}
}
