package wikipedia

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Language-edition endpoints
const (
	EndpointEN = "https://en.wikipedia.org/w/api.php"
	EndpointFR = "https://fr.wikipedia.org/w/api.php"
)

const (
	DefaultLanguage  = "en"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "WikipediaMCPServer/1.0 (https://github.com/olgasafonova/wikipedia-mcp-server)"
)

// MergeMode decides which side wins when caller options collide with defaults
type MergeMode int

const (
	// MergeCallerWins lets caller options override defaults; defaults only
	// fill keys the caller left empty.
	MergeCallerWins MergeMode = iota

	// MergeDefaultsWin keeps every default and only takes caller values for
	// keys without a default. Per-language endpoints stay fixed in this mode,
	// but BaseURL has no default, so a caller BaseURL still replaces them.
	MergeDefaultsWin
)

func (m MergeMode) String() string {
	switch m {
	case MergeCallerWins:
		return "caller-wins"
	case MergeDefaultsWin:
		return "defaults-win"
	default:
		return "unknown"
	}
}

// ParseMergeMode parses "caller-wins" or "defaults-win". Empty means caller-wins.
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "caller-wins":
		return MergeCallerWins, nil
	case "defaults-win":
		return MergeDefaultsWin, nil
	default:
		return MergeCallerWins, fmt.Errorf("unknown merge mode %q (want caller-wins or defaults-win)", s)
	}
}

// Config holds Wikipedia connection settings
type Config struct {
	// Language selects the edition endpoint from Endpoints (e.g. "en", "fr")
	Language string

	// Endpoints maps a language edition to its api.php URL
	Endpoints map[string]string

	// BaseURL overrides the language selector when set
	BaseURL string

	// UserAgent identifies the client to Wikipedia
	UserAgent string

	// Timeout for a single API request
	Timeout time.Duration
}

// DefaultConfig returns the built-in defaults: English edition, FR and EN endpoints.
func DefaultConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		Endpoints: map[string]string{
			"en": EndpointEN,
			"fr": EndpointFR,
		},
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// MergeConfig combines defaults with caller overrides. Either side may be nil.
func MergeConfig(defaults, overrides *Config, mode MergeMode) *Config {
	if defaults == nil {
		defaults = &Config{}
	}
	if overrides == nil {
		overrides = &Config{}
	}

	primary, secondary := overrides, defaults
	if mode == MergeDefaultsWin {
		primary, secondary = defaults, overrides
	}

	merged := &Config{
		Language:  firstNonEmpty(primary.Language, secondary.Language),
		BaseURL:   firstNonEmpty(primary.BaseURL, secondary.BaseURL),
		UserAgent: firstNonEmpty(primary.UserAgent, secondary.UserAgent),
		Timeout:   primary.Timeout,
		Endpoints: make(map[string]string, len(defaults.Endpoints)+len(overrides.Endpoints)),
	}
	if merged.Timeout <= 0 {
		merged.Timeout = secondary.Timeout
	}

	for lang, u := range secondary.Endpoints {
		merged.Endpoints[lang] = u
	}
	for lang, u := range primary.Endpoints {
		if u != "" {
			merged.Endpoints[lang] = u
		}
	}

	return merged
}

// Endpoint resolves the API URL: BaseURL when set, else the endpoint of Language.
func (c *Config) Endpoint() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	lang := c.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	u, ok := c.Endpoints[lang]
	if !ok || u == "" {
		return "", fmt.Errorf("no endpoint configured for language %q", lang)
	}
	return u, nil
}

// LoadConfig loads configuration from environment variables, merged over
// DefaultConfig according to WIKIPEDIA_MERGE_MODE.
func LoadConfig() (*Config, error) {
	mode, err := ParseMergeMode(os.Getenv("WIKIPEDIA_MERGE_MODE"))
	if err != nil {
		return nil, err
	}

	overrides := &Config{
		Language:  strings.ToLower(os.Getenv("WIKIPEDIA_LANG")),
		BaseURL:   os.Getenv("WIKIPEDIA_API_URL"),
		UserAgent: os.Getenv("WIKIPEDIA_USER_AGENT"),
		Endpoints: map[string]string{},
	}
	if u := os.Getenv("WIKIPEDIA_API_URL_EN"); u != "" {
		overrides.Endpoints["en"] = u
	}
	if u := os.Getenv("WIKIPEDIA_API_URL_FR"); u != "" {
		overrides.Endpoints["fr"] = u
	}
	if t := os.Getenv("WIKIPEDIA_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid WIKIPEDIA_TIMEOUT %q: %w", t, err)
		}
		overrides.Timeout = d
	}

	cfg := MergeConfig(DefaultConfig(), overrides, mode)
	if _, err := cfg.Endpoint(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
