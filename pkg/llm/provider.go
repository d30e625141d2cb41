package llm

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Provider names a supported judge backend.
type Provider string

const (
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// ErrNoCredentials means the selected provider has no usable API key.
var ErrNoCredentials = errors.New("no API key configured for the remote evaluator")

// placeholderKeys are the sample values shipped in example env files.
//
//nolint:gochecknoglobals // fixed lookup table
var placeholderKeys = map[string]bool{
	"your-api-key-here":        true,
	"your-groq-api-key-here":   true,
	"your-gemini-api-key-here": true,
}

// UsableKey reports whether key looks like a real credential.
func UsableKey(key string) (ok bool) {
	key = strings.TrimSpace(key)
	ok = key != "" && !placeholderKeys[strings.ToLower(key)]
	return ok
}

// NewCompleter builds the backend for provider. ErrNoCredentials is returned for ProviderNone and
// for a missing or placeholder key, which callers treat as "use the local fallback".
func NewCompleter(ctx context.Context, provider Provider, apiKey, model string) (completer Completer, err error) {
	if provider == ProviderNone {
		err = ErrNoCredentials
		return completer, err
	}

	if !UsableKey(apiKey) {
		err = errors.Wrapf(ErrNoCredentials, "provider %s", provider)
		return completer, err
	}

	switch provider {
	case ProviderGroq, "":
		completer = NewClient(strings.TrimSpace(apiKey), model)
	case ProviderGemini:
		completer, err = NewGeminiClient(ctx, strings.TrimSpace(apiKey), model)
		if err != nil {
			return completer, err
		}
	default:
		err = errors.Errorf("unknown evaluator provider %q", provider)
	}

	return completer, err
}
