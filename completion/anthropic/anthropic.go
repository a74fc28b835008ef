// Package anthropic provides a completion.Client implementation backed by
// the Anthropic Messages API. Claude has no JSON-schema response format, so
// the target schema is exposed as a single forced tool; the tool_use input
// block is returned as the structured result.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/schemaforge/chatagent/completion"
)

// Options configures the Anthropic client adapter (temperature, max tokens,
// API key). Extend via functional options to preserve stability.
type Options struct {
	APIKey      string
	Temperature float64
	MaxTokens   int64
}

// Client wraps the Anthropic Messages API behind completion.Client.
type Client struct {
	client *anthropic.Client
	opts   Options
}

var _ completion.Client = (*Client)(nil)

// New creates a new Anthropic client adapter using the official SDK.
// Without an explicit APIKey the SDK reads ANTHROPIC_API_KEY from the
// environment.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Client{client: &client, opts: opts}
}

// Complete implements completion.Client. The schema becomes the input
// schema of a tool the model is forced to call; the call arguments are the
// schema-shaped JSON document.
func (c *Client) Complete(ctx context.Context, req completion.Request) (json.RawMessage, error) {
	tool, err := buildSchemaTool(req.Schema)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		Messages:    buildMessages(req.Messages),
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		Tools:       []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: req.Schema.Name},
		},
	}
	if systemBlocks := extractSystemMessage(req.Messages); len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" {
			continue
		}
		toolBlock := block.AsToolUse()
		if toolBlock.Name != req.Schema.Name {
			continue
		}
		raw, err := json.Marshal(toolBlock.Input)
		if err != nil {
			return nil, fmt.Errorf("marshal tool input: %w", err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("no structured tool_use block in response")
}

// buildSchemaTool converts the reflected response schema into an Anthropic
// tool definition.
func buildSchemaTool(rs completion.ResponseSchema) (anthropic.ToolUnionParam, error) {
	schemaJSON, err := json.Marshal(rs.Schema)
	if err != nil {
		return anthropic.ToolUnionParam{}, fmt.Errorf("marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return anthropic.ToolUnionParam{}, fmt.Errorf("decode schema: %w", err)
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Type: constant.Object("object"),
	}
	if props, ok := schemaMap["properties"]; ok {
		inputSchema.Properties = props
	}
	if required, ok := schemaMap["required"].([]any); ok {
		var reqStrings []string
		for _, r := range required {
			if s, ok := r.(string); ok {
				reqStrings = append(reqStrings, s)
			}
		}
		inputSchema.Required = reqStrings
	}

	description := rs.Description
	if description == "" {
		description = fmt.Sprintf("Record the response using the %s schema.", rs.Name)
	}

	tool := anthropic.ToolUnionParamOfTool(inputSchema, rs.Name)
	tool.OfTool.Description = anthropic.String(description)
	return tool, nil
}

// buildMessages converts normalized messages to the Anthropic format.
// System messages are handled separately via extractSystemMessage.
func buildMessages(messages []completion.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case completion.RoleSystem:
			continue
		case completion.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			// Treat unknown roles as user
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}

// extractSystemMessage collects system-role message text into system blocks.
func extractSystemMessage(messages []completion.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range messages {
		if m.Role == completion.RoleSystem && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}
