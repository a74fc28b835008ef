package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/invopop/jsonschema"
	schemavalidate "github.com/santhosh-tekuri/jsonschema/v5"
)

// Message roles used across providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged entry of the completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Describer lets an envelope type attach a human-readable description to
// its generated schema. Implementing it is optional.
type Describer interface {
	SchemaDescription() string
}

// ResponseSchema is the JSON shape the model must produce, derived from a
// Go type by SchemaFor.
type ResponseSchema struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema
}

// Request captures the normalized input handed to a Client: which model to
// call, the ordered message sequence, and the target response schema.
type Request struct {
	Model    string
	Messages []Message
	Schema   ResponseSchema
}

// Client is the minimal interface required to obtain a structured
// completion. Implementations return the raw JSON produced by the model;
// schema validation and decoding happen in Complete.
type Client interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}

// SchemaError reports a model response that does not conform to the
// requested schema, or that cannot be decoded into the target type.
type SchemaError struct {
	Schema string
	Err    error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not conform to schema %q: %v", e.Schema, e.Err)
}

// Unwrap exposes the underlying validation or decoding error.
func (e *SchemaError) Unwrap() error { return e.Err }

// SchemaFor reflects T into a ResponseSchema. Definitions are inlined and
// additional properties rejected so the schema is usable for strict
// structured outputs.
func SchemaFor[T any]() ResponseSchema {
	var v T
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	rs := ResponseSchema{
		Name:   schemaName(reflect.TypeOf(v)),
		Schema: reflector.Reflect(v),
	}
	if d, ok := any(v).(Describer); ok {
		rs.Description = d.SchemaDescription()
	}
	return rs
}

// Validate checks a raw JSON payload against the schema.
func (s ResponseSchema) Validate(raw json.RawMessage) error {
	schemaJSON, err := json.Marshal(s.Schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	resourceID := "inmemory://" + s.Name
	compiler := schemavalidate.NewCompiler()
	if err := compiler.AddResource(resourceID, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(resourceID)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return compiled.Validate(payload)
}

// Complete requests a completion and decodes the result into T. The model
// output is validated against T's schema first; conformance failures
// surface as *SchemaError, client failures propagate unchanged.
func Complete[T any](ctx context.Context, c Client, model string, messages []Message) (T, error) {
	var out T
	rs := SchemaFor[T]()

	raw, err := c.Complete(ctx, Request{Model: model, Messages: messages, Schema: rs})
	if err != nil {
		return out, err
	}
	if err := rs.Validate(raw); err != nil {
		return out, &SchemaError{Schema: rs.Name, Err: err}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &SchemaError{Schema: rs.Name, Err: err}
	}
	return out, nil
}

// schemaName derives a snake_case schema identifier from a Go type name,
// e.g. RatingResponse -> rating_response.
func schemaName(t reflect.Type) string {
	if t == nil {
		return "response"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return "response"
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
