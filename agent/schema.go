package agent

import (
	"encoding/json"
	"fmt"
)

// IO is the contract for input and output envelope schemas. The textual
// serialization must be stable and lossless with respect to the declared
// fields; it is used both for memory storage and for display.
type IO interface {
	fmt.Stringer
}

// Input is the default user-message envelope.
type Input struct {
	ChatMessage string `json:"chat_message" jsonschema_description:"The chat message sent by the user to the assistant."`
}

// NewInput wraps a user message in the default input envelope.
func NewInput(message string) *Input {
	return &Input{ChatMessage: message}
}

// String returns the compact JSON serialization of the envelope.
func (i Input) String() string { return marshalEnvelope(i) }

// SchemaDescription describes the envelope for schema generation.
func (i Input) SchemaDescription() string {
	return "This schema represents the user input message exchanged between the user and the chat agent."
}

// Output is the default assistant-message envelope.
type Output struct {
	ChatMessage string `json:"chat_message" jsonschema_description:"The chat message exchanged between the user and the chat agent. This contains the markdown-enabled response generated by the chat agent."`
}

// String returns the compact JSON serialization of the envelope.
func (o Output) String() string { return marshalEnvelope(o) }

// SchemaDescription describes the envelope for schema generation.
func (o Output) SchemaDescription() string {
	return "This schema represents the response message exchanged between the user and the chat agent."
}

func marshalEnvelope(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
