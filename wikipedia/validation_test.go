package wikipedia

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		title   string
		wantErr bool
	}{
		{"Batman", false},
		{"Go (programming language)", false},
		{"Île-de-France", false},
		{"", true},
		{"   ", true},
		{"Foo#Section", true},
		{"{{Template}}", true},
		{strings.Repeat("a", MaxTitleLength), false},
		{strings.Repeat("a", MaxTitleLength+1), true},
	}

	for _, tt := range tests {
		err := ValidateTitle(tt.title)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		limit   int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxToolLimit, false},
		{-1, true},
		{MaxToolLimit + 1, true},
	}

	for _, tt := range tests {
		err := ValidateLimit(tt.limit)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLimit(%d) error = %v, wantErr %v", tt.limit, err, tt.wantErr)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		wantErr  bool
	}{
		{0, 0, false},
		{90, 180, false},
		{-90, -180, false},
		{90.1, 0, true},
		{0, 180.1, true},
	}

	for _, tt := range tests {
		err := ValidateCoordinates(tt.lat, tt.lon)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCoordinates(%v, %v) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
		}
	}
}
