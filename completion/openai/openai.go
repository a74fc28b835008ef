// Package openai provides a completion.Client implementation backed by the
// OpenAI Chat Completions API using strict JSON-schema structured outputs.
// It adapts the normalized Request shape into the SDK's message format and
// returns the raw JSON payload produced by the model.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/schemaforge/chatagent/completion"
)

// Options configure the OpenAI client adapter. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	APIKey              string
	Temperature         float64
	MaxCompletionTokens int64
}

// Client wraps the OpenAI Chat Completions API behind completion.Client.
type Client struct {
	client *openai.Client
	opts   Options
}

var _ completion.Client = (*Client)(nil)

// New creates a new OpenAI client adapter using the official SDK. Without
// an explicit APIKey the SDK reads OPENAI_API_KEY from the environment.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Client{client: &client, opts: opts}
}

// NewFromClient creates an adapter from an existing SDK client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

// Complete implements completion.Client. The target schema is enforced via
// the strict json_schema response format; the returned message content is
// the schema-shaped JSON document.
func (c *Client) Complete(ctx context.Context, req completion.Request) (json.RawMessage, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               openai.ChatModel(req.Model),
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   req.Schema.Name,
		Schema: req.Schema.Schema,
		Strict: openai.Bool(true),
	}
	if req.Schema.Description != "" {
		schemaParam.Description = openai.String(req.Schema.Description)
	}
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: schemaParam,
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	return json.RawMessage(resp.Choices[0].Message.Content), nil
}

// buildMessages converts normalized messages into OpenAI chat messages.
func buildMessages(messages []completion.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case completion.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case completion.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			// Treat unknown roles as user
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
