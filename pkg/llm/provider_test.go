package llm

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

func TestUsableKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"your-groq-api-key-here", false},
		{"YOUR-API-KEY-HERE", false},
		{"gsk_live_123", true},
	}

	for _, tt := range tests {
		if got := UsableKey(tt.key); got != tt.want {
			t.Errorf("UsableKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestNewCompleter(t *testing.T) {
	ctx := context.Background()

	_, err := NewCompleter(ctx, ProviderNone, "gsk_live_123", "")
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected ErrNoCredentials for provider none, got %v", err)
	}

	_, err = NewCompleter(ctx, ProviderGroq, "your-groq-api-key-here", "")
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected ErrNoCredentials for placeholder key, got %v", err)
	}

	_, err = NewCompleter(ctx, ProviderGemini, "", "")
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected ErrNoCredentials for missing key, got %v", err)
	}

	completer, err := NewCompleter(ctx, ProviderGroq, " gsk_live_123 ", "")
	if err != nil {
		t.Fatalf("NewCompleter failed: %v", err)
	}
	client, ok := completer.(*Client)
	if !ok {
		t.Fatalf("Expected *Client, got %T", completer)
	}
	if client.apiKey != "gsk_live_123" {
		t.Errorf("Expected trimmed key, got %q", client.apiKey)
	}

	_, err = NewCompleter(ctx, Provider("openai"), "sk-123", "")
	if err == nil || errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected unknown provider error, got %v", err)
	}
}
