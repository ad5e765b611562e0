package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. Queued responses are returned
// in FIFO order; once the queue is empty the fallback, if any, answers.
// Every request is recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  func(Request) (json.RawMessage, error)
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewSampleProvider returns a MockProvider that answers every request with
// SampleFor. It is what `--provider mock` resolves to.
func NewSampleProvider() *MockProvider {
	m := NewMockProvider()
	m.fallback = SampleFor
	return m
}

// Generate returns the next queued response, then falls back. Without a
// fallback an empty queue is ErrProviderUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		content, err := m.fallback(req)
		resp = MockResponse{Content: content, Err: err}
	default:
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock has no responses left")}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SampleFor builds a response that satisfies req.Schema: every property is
// filled (required or not, nested objects included), strings read
// "sample <name>", numbers take their minimum or 1, arrays hold one item and
// enums their first value. Without a schema the response is a JSON string.
func SampleFor(req Request) (json.RawMessage, error) {
	if req.Schema == nil {
		return json.Marshal("sample response")
	}
	return json.Marshal(sampleValue("", req.Schema.Definition))
}

func sampleValue(name string, def map[string]any) any {
	if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}

	switch def["type"] {
	case "object":
		out := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		for k, v := range props {
			if pd, ok := v.(map[string]any); ok {
				out[k] = sampleValue(k, pd)
			}
		}
		return out
	case "array":
		items, _ := def["items"].(map[string]any)
		n := 1
		if minItems, ok := number(def["minItems"]); ok && minItems > 1 {
			n = int(minItems)
		}
		out := make([]any, n)
		for i := range out {
			out[i] = sampleValue(fmt.Sprintf("%s %d", strings.TrimSuffix(name, "s"), i+1), items)
		}
		return out
	case "integer", "number":
		if minimum, ok := number(def["minimum"]); ok {
			return minimum
		}
		return 1
	case "boolean":
		return false
	default:
		if def["format"] == "uri" || strings.EqualFold(name, "url") {
			return "https://example.com/" + strings.ReplaceAll(name, "_", "-")
		}
		return "sample " + strings.ReplaceAll(name, "_", " ")
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
