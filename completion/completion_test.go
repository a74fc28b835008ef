package completion

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ Client = (*MockClient)(nil)

type reply struct {
	ChatMessage string `json:"chat_message" jsonschema_description:"The assistant reply."`
}

func (r reply) SchemaDescription() string { return "A single assistant reply." }

type rating struct {
	Score       int    `json:"score" jsonschema:"minimum=1,maximum=10"`
	Explanation string `json:"explanation"`
}

func TestSchemaFor(t *testing.T) {
	rs := SchemaFor[reply]()
	assert.Equal(t, "reply", rs.Name)
	assert.Equal(t, "A single assistant reply.", rs.Description)
	require.NotNil(t, rs.Schema)

	data, err := json.Marshal(rs.Schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chat_message")
	assert.Contains(t, string(data), "The assistant reply.")
}

func TestSchemaFor_SnakeCaseName(t *testing.T) {
	type RatingResponse struct {
		Score int `json:"score"`
	}
	rs := SchemaFor[RatingResponse]()
	assert.Equal(t, "rating_response", rs.Name)
}

func TestResponseSchema_Validate(t *testing.T) {
	rs := SchemaFor[rating]()

	assert.NoError(t, rs.Validate(json.RawMessage(`{"score":7,"explanation":"solid"}`)))
	assert.Error(t, rs.Validate(json.RawMessage(`{"score":7}`)), "missing required field")
	assert.Error(t, rs.Validate(json.RawMessage(`{"score":"seven","explanation":"x"}`)), "wrong type")
	assert.Error(t, rs.Validate(json.RawMessage(`not json`)))
}

func TestComplete_DecodesTypedResult(t *testing.T) {
	client := NewMockClient()
	client.AddResponse("rate this", `{"score":9,"explanation":"great"}`)

	got, err := Complete[rating](context.Background(), client, "gpt-4o-mini", []Message{
		{Role: RoleUser, Content: "rate this"},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, got.Score)
	assert.Equal(t, "great", got.Explanation)

	req := client.LastRequest()
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, "rating", req.Schema.Name)
}

func TestComplete_SchemaConformanceError(t *testing.T) {
	client := NewMockClient()
	client.AddResponse("rate this", `{"score":9}`)

	_, err := Complete[rating](context.Background(), client, "m", []Message{
		{Role: RoleUser, Content: "rate this"},
	})
	require.Error(t, err)
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rating", se.Schema)
}

func TestComplete_ClientErrorPropagates(t *testing.T) {
	client := NewMockClient()
	boom := errors.New("network down")
	client.FailWith(boom)

	_, err := Complete[rating](context.Background(), client, "m", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	var se *SchemaError
	assert.False(t, errors.As(err, &se), "client errors must propagate unchanged")
}

func TestMockClient_DefaultEcho(t *testing.T) {
	client := NewMockClient()
	raw, err := client.Complete(context.Background(), Request{Messages: []Message{
		{Role: RoleUser, Content: "hello"},
	}})
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Mock response to: hello", out["chat_message"])
}
