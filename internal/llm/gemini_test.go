package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-lite", "gemini-2.0-flash-lite"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema_LessonDraftShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":           map[string]any{"type": "string", "description": "One sentence"},
			"estimated_minutes": map[string]any{"type": "integer", "minimum": 1},
			"difficulty":        map[string]any{"type": "string", "enum": []any{"beginner", "advanced"}},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"course": map[string]any{
				"type":                 "object",
				"properties":           map[string]any{"url": map[string]any{"type": "string"}},
				"additionalProperties": false,
			},
		},
		"required":             []any{"summary", "estimated_minutes", "tags"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)

	if s.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", s.Type)
	}
	if len(s.Properties) != 5 || len(s.Required) != 3 {
		t.Fatalf("expected 5 properties and 3 required, got %d and %d", len(s.Properties), len(s.Required))
	}
	if s.Properties["summary"].Description != "One sentence" {
		t.Errorf("description lost: %q", s.Properties["summary"].Description)
	}
	if m := s.Properties["estimated_minutes"].Minimum; m == nil || *m != 1 {
		t.Errorf("expected minimum 1, got %v", m)
	}
	if len(s.Properties["difficulty"].Enum) != 2 {
		t.Errorf("expected 2 enum values, got %v", s.Properties["difficulty"].Enum)
	}
	if s.Properties["tags"].Items.Type != "STRING" {
		t.Errorf("expected STRING tag items, got %s", s.Properties["tags"].Items.Type)
	}
	if n := s.Properties["course"].Nullable; n == nil || !*n {
		t.Error("optional course should be nullable")
	}
	if n := s.Properties["summary"].Nullable; n != nil {
		t.Error("required summary should not be nullable")
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"title":"Gems","minutes":4}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     30,
				"candidatesTokenCount": 10,
				"totalTokenCount":      40,
			},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write short technical lessons.",
		Messages:  []Message{{Role: RoleUser, Content: "Draft a lesson about Gems."}},
		Schema:    lessonSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 40 {
		t.Fatalf("expected 40 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.Model != "gemini-2.5-flash" || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 16,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestNewGeminiProvider_MissingKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
