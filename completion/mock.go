package completion

import (
	"context"
	"encoding/json"
)

// MockClient is a lightweight in-memory Client useful for tests & examples.
// Responses are canned raw-JSON payloads keyed by the content of the last
// request message. Every request is recorded for later assertions.
type MockClient struct {
	responses map[string]json.RawMessage
	requests  []Request
	err       error
}

// NewMockClient constructs an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{responses: make(map[string]json.RawMessage)}
}

// AddResponse registers a deterministic canned completion for an input
// message content.
func (m *MockClient) AddResponse(input string, raw string) {
	m.responses[input] = json.RawMessage(raw)
}

// FailWith makes every subsequent Complete call return err.
func (m *MockClient) FailWith(err error) { m.err = err }

// Requests returns all recorded requests in call order.
func (m *MockClient) Requests() []Request { return m.requests }

// LastRequest returns the most recent request, or a zero Request when none
// was made.
func (m *MockClient) LastRequest() Request {
	if len(m.requests) == 0 {
		return Request{}
	}
	return m.requests[len(m.requests)-1]
}

// Complete implements Client; returns the canned payload for the last
// message content, or an echo response shaped like the default output
// envelope.
func (m *MockClient) Complete(_ context.Context, req Request) (json.RawMessage, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	var key string
	if len(req.Messages) > 0 {
		key = req.Messages[len(req.Messages)-1].Content
	}
	if raw, ok := m.responses[key]; ok {
		return raw, nil
	}
	echo, _ := json.Marshal(map[string]string{"chat_message": "Mock response to: " + key})
	return echo, nil
}
