package wikipedia

import (
	"fmt"
	"strings"
)

// MaxTitleLength is the MediaWiki limit on page title length in bytes
const MaxTitleLength = 255

// MaxQueryLength is the maximum allowed search query length
const MaxQueryLength = 300

// MaxToolLimit caps per-page limits accepted from tool callers
const MaxToolLimit = 500

// illegalTitleChars cannot appear in a MediaWiki page title
const illegalTitleChars = "#<>[]|{}"

// ValidateTitle validates a page title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("page title is required")
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("page title exceeds maximum length of %d bytes", MaxTitleLength)
	}
	if i := strings.IndexAny(title, illegalTitleChars); i >= 0 {
		return fmt.Errorf("invalid page title %q: character %q is not allowed", title, title[i])
	}
	return nil
}

// ValidateSearchQuery validates a search query.
func ValidateSearchQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}
	if len(query) > MaxQueryLength {
		return fmt.Errorf("search query exceeds maximum length of %d characters", MaxQueryLength)
	}
	return nil
}

// ValidateLimit accepts 0 (server default) through MaxToolLimit.
func ValidateLimit(limit int) error {
	if limit < 0 || limit > MaxToolLimit {
		return fmt.Errorf("limit must be between 0 and %d, got %d", MaxToolLimit, limit)
	}
	return nil
}

// ValidateCoordinates checks latitude and longitude ranges.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}
