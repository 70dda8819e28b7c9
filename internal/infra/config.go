package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source is one layer of configuration. Lookup reports whether the key is
// present in this layer; earlier sources in a Resolver win.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// EnvSource resolves keys from process environment variables. Empty values
// count as absent so a blank var falls through to the next layer.
type EnvSource struct{}

func (EnvSource) Name() string { return "env" }

func (EnvSource) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// StaticSource resolves keys from a fixed map, used for built-in defaults.
type StaticSource struct {
	Label  string
	Values map[string]string
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Lookup(key string) (string, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Resolver walks its sources in order and returns the first hit.
type Resolver struct {
	sources []Source
}

func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

func (r *Resolver) String(key string) string {
	for _, src := range r.sources {
		if v, ok := src.Lookup(key); ok {
			return v
		}
	}
	return ""
}

func (r *Resolver) Int(key string) int {
	for _, src := range r.sources {
		v, ok := src.Lookup(key)
		if !ok {
			continue
		}
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return 0
}

// Config represents application configuration resolved from the environment
// layered over built-in defaults.
type Config struct {
	AppEnv               string
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	GeoIPDBPath          string
	GoogleClientID       string
	GoogleIssuer         string
	RewriteProvider      string
	GeminiAPIKey         string
	GeminiModel          string
	GeminiBaseURL        string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	OpenAIOrg            string
	StripePublishableKey string
	StripePriceID        string
	FreeDailyLimit       int
	WordLimit            int
	MaxTextChars         int
	AllowedOrigins       []string
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
	RateLimitPerMin      int
}

func defaults() StaticSource {
	return StaticSource{Label: "defaults", Values: map[string]string{
		"APP_ENV":                    "development",
		"PORT":                       "8080",
		"GOOGLE_ISSUER":              "https://accounts.google.com",
		"REWRITE_PROVIDER":           "openai",
		"GEMINI_MODEL":               "gemini-1.5-flash",
		"GEMINI_BASE_URL":            "https://generativelanguage.googleapis.com/v1beta",
		"OPENAI_MODEL":               "gpt-4o-mini",
		"OPENAI_BASE_URL":            "https://api.openai.com/v1",
		"FREE_DAILY_LIMIT":           "5",
		"WORD_LIMIT":                 "700",
		"MAX_TEXT_CHARS":             "5000",
		"HTTP_READ_TIMEOUT_SECONDS":  "15",
		"HTTP_WRITE_TIMEOUT_SECONDS": "30",
		"HTTP_IDLE_TIMEOUT_SECONDS":  "60",
		"RATE_LIMIT_PER_MINUTE":      "30",
	}}
}

// LoadConfig resolves configuration through the standard layering: process
// environment first, built-in defaults last.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(NewResolver(EnvSource{}, defaults()))
}

// LoadConfigFrom resolves configuration through an explicit resolver.
func LoadConfigFrom(r *Resolver) (*Config, error) {
	cfg := &Config{
		AppEnv:               r.String("APP_ENV"),
		Port:                 r.String("PORT"),
		DatabaseURL:          r.String("DATABASE_URL"),
		JWTSecret:            r.String("JWT_SECRET"),
		GeoIPDBPath:          r.String("GEOIP_DB_PATH"),
		GoogleClientID:       r.String("GOOGLE_CLIENT_ID"),
		GoogleIssuer:         r.String("GOOGLE_ISSUER"),
		RewriteProvider:      r.String("REWRITE_PROVIDER"),
		GeminiAPIKey:         r.String("GEMINI_API_KEY"),
		GeminiModel:          r.String("GEMINI_MODEL"),
		GeminiBaseURL:        r.String("GEMINI_BASE_URL"),
		OpenAIAPIKey:         r.String("OPENAI_API_KEY"),
		OpenAIModel:          r.String("OPENAI_MODEL"),
		OpenAIBaseURL:        r.String("OPENAI_BASE_URL"),
		OpenAIOrg:            r.String("OPENAI_ORG"),
		StripePublishableKey: r.String("STRIPE_PUBLISHABLE_KEY"),
		StripePriceID:        r.String("STRIPE_PRICE_ID"),
		FreeDailyLimit:       r.Int("FREE_DAILY_LIMIT"),
		WordLimit:            r.Int("WORD_LIMIT"),
		MaxTextChars:         r.Int("MAX_TEXT_CHARS"),
		AllowedOrigins:       splitCSV(r.String("ALLOWED_ORIGINS")),
		HTTPReadTimeout:      time.Second * time.Duration(r.Int("HTTP_READ_TIMEOUT_SECONDS")),
		HTTPWriteTimeout:     time.Second * time.Duration(r.Int("HTTP_WRITE_TIMEOUT_SECONDS")),
		HTTPIdleTimeout:      time.Second * time.Duration(r.Int("HTTP_IDLE_TIMEOUT_SECONDS")),
		RateLimitPerMin:      r.Int("RATE_LIMIT_PER_MINUTE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.FreeDailyLimit < 0 {
		return nil, fmt.Errorf("FREE_DAILY_LIMIT must not be negative")
	}

	return cfg, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
