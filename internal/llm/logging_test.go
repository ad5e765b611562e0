package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/lessonhub/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"title":"Hooks"}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 80, TotalTokens: 200},
	})

	p := WithLogging(mock, "mock", zap.New(core), repo)
	ctx := WithPurpose(context.Background(), "lesson-draft")
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "draft"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "lesson-draft" || ev.Provider != "mock" || ev.Model != "mock" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 120 || ev.OutputTokens != 80 {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if n := logs.FilterMessage("llm request").FilterLevelExact(zapcore.DebugLevel).Len(); n != 1 {
		t.Fatalf("expected 1 debug request log, got %d", n)
	}
	info := logs.FilterMessage("llm request").FilterLevelExact(zapcore.InfoLevel).All()
	if len(info) != 1 {
		t.Fatalf("expected 1 info log, got %d", len(info))
	}
	if got := info[0].ContextMap()["purpose"]; got != "lesson-draft" {
		t.Fatalf("purpose field = %v", got)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})

	p := WithLogging(mock, "mock", zap.New(core), repo)
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
	if repo.events[0].Purpose != PurposeUnspecified {
		t.Fatalf("expected default purpose, got %q", repo.events[0].Purpose)
	}
	if n := logs.FilterMessage("llm request failed").Len(); n != 1 {
		t.Fatalf("expected 1 failure log, got %d", n)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	p := WithLogging(mock, "mock", zap.New(core), repo)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := logs.FilterMessage("failed to record LLM request event").Len(); n != 1 {
		t.Fatalf("expected repo failure to be logged, got %d", n)
	}
}

func TestLoggingProvider_NilLoggerAndRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "lesson", Definition: map[string]any{"type": "object"}},
	})
	want := "[system]\nbe brief\n\n[user]\nhello\n\n[schema: lesson]\n{\"type\":\"object\"}\n"
	if got != want {
		t.Fatalf("serializeRequest =\n%q\nwant\n%q", got, want)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("Cost = %v, want 0.75", got)
	}
	if LookupCost("not-a-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	cfg.Retry.MaxAttempts = 1

	repo := &recordingRepo{}
	p, err := NewProvider(context.Background(), cfg, zap.NewNop(), repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	// The mock starts with an empty queue.
	_, err = p.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 recorded attempt, got %d", len(repo.events))
	}
}

func TestNewProvider_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected missing key error")
	}

	cfg.Provider = "llama"
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected unknown provider error")
	}
}
