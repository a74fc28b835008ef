package agent

import (
	"context"
	"errors"

	"github.com/schemaforge/chatagent/completion"
	"github.com/schemaforge/chatagent/logging"
	"github.com/schemaforge/chatagent/memory"
	"github.com/schemaforge/chatagent/systemprompt"
)

// DefaultModel is used when Config.Model is left empty.
const DefaultModel = "gpt-3.5-turbo"

// ErrMissingClient is returned by New when no completion client is
// configured.
var ErrMissingClient = errors.New("completion client is required")

// Config bundles the collaborators of an agent. It is read once at
// construction; later changes to a Config value have no effect on agents
// already built from it.
type Config struct {
	// Client performs the structured completion call. Required.
	Client completion.Client
	// Model identifies the model passed to the client. Defaults to
	// DefaultModel.
	Model string
	// Memory holds the conversation transcript. Defaults to a fresh empty
	// memory.
	Memory *memory.Memory
	// SystemPromptGenerator produces the system message. Defaults to a
	// fresh generator with generic assistant sections.
	SystemPromptGenerator *systemprompt.Generator
	// Logger receives turn lifecycle events at debug level. Defaults to a
	// no-op logger.
	Logger logging.Logger
}

// Agent executes single conversational turns against a structured
// completion client. In and Out are the envelope schemas enforced for user
// input and model output; use ResponseAs for a per-call override of Out.
//
// An agent owns its memory and prompt generator exclusively and assumes one
// sequential caller; running turns concurrently against the same agent is
// unsupported.
type Agent[In IO, Out IO] struct {
	client        completion.Client
	model         string
	memory        *memory.Memory
	promptGen     *systemprompt.Generator
	initialMemory *memory.Memory
	currentInput  *In
	logger        logging.Logger
}

// New constructs an agent from cfg, resolving absent collaborators to fresh
// defaults and capturing a structural snapshot of the memory as the reset
// baseline.
func New[In IO, Out IO](cfg Config) (*Agent[In, Out], error) {
	if cfg.Client == nil {
		return nil, ErrMissingClient
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	mem := cfg.Memory
	if mem == nil {
		mem = memory.New()
	}
	promptGen := cfg.SystemPromptGenerator
	if promptGen == nil {
		promptGen = systemprompt.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	return &Agent[In, Out]{
		client:        cfg.Client,
		model:         model,
		memory:        mem,
		promptGen:     promptGen,
		initialMemory: mem.Copy(),
		logger:        logger,
	}, nil
}

// Run executes one turn. When input is non-nil it is recorded and appended
// to memory as a user message before the completion call; the response is
// appended as an assistant message afterwards. The completion call never
// observes its own reply.
//
// A nil input still requests and appends a response, for agent-initiated
// turns.
func (a *Agent[In, Out]) Run(ctx context.Context, input *In) (Out, error) {
	if input != nil {
		a.currentInput = input
		a.memory.NewTurn()
		a.memory.AddMessage(completion.RoleUser, (*input).String())
	}

	a.logger.Debug("agent.run.start", "model", a.model, "history", a.memory.Len())

	response, err := a.Response(ctx)
	if err != nil {
		a.logger.Debug("agent.run.error", "model", a.model, "error", err.Error())
		var zero Out
		return zero, err
	}

	a.memory.AddMessage(completion.RoleAssistant, response.String())
	a.logger.Debug("agent.run.complete", "model", a.model, "history", a.memory.Len())

	return response, nil
}

// Response obtains a completion targeting the agent's configured output
// schema. The message sequence is exactly one system message followed by
// the full ordered history. Client and schema conformance failures
// propagate unchanged; nothing is retried.
func (a *Agent[In, Out]) Response(ctx context.Context) (Out, error) {
	return completion.Complete[Out](ctx, a.client, a.model, a.buildMessages())
}

// ResponseAs obtains a completion targeting T instead of the agent's
// configured output schema. Memory is not touched; callers append the
// result themselves if it belongs in the transcript.
func ResponseAs[T IO, In IO, Out IO](ctx context.Context, a *Agent[In, Out]) (T, error) {
	return completion.Complete[T](ctx, a.client, a.model, a.buildMessages())
}

// buildMessages assembles the system message plus the ordered history.
func (a *Agent[In, Out]) buildMessages() []completion.Message {
	history := a.memory.History()
	messages := make([]completion.Message, 0, len(history)+1)
	messages = append(messages, completion.Message{
		Role:    completion.RoleSystem,
		Content: a.promptGen.Generate(),
	})
	for _, m := range history {
		messages = append(messages, completion.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

// ResetMemory replaces the active memory with a fresh copy of the baseline
// snapshot captured at construction. Idempotent.
func (a *Agent[In, Out]) ResetMemory() {
	a.memory = a.initialMemory.Copy()
}

// Memory returns the active memory.
func (a *Agent[In, Out]) Memory() *memory.Memory { return a.memory }

// SystemPromptGenerator returns the prompt generator.
func (a *Agent[In, Out]) SystemPromptGenerator() *systemprompt.Generator { return a.promptGen }

// Model returns the configured model identifier.
func (a *Agent[In, Out]) Model() string { return a.model }

// CurrentUserInput returns the most recent user input, or nil before the
// first input-bearing turn.
func (a *Agent[In, Out]) CurrentUserInput() *In { return a.currentInput }

// ContextProvider looks up a named provider in the prompt generator's
// registry. The provider remains owned by the registry. Fails with
// systemprompt.ErrProviderNotFound when absent.
func (a *Agent[In, Out]) ContextProvider(name string) (systemprompt.ContextProvider, error) {
	return a.promptGen.Provider(name)
}

// RegisterContextProvider inserts or overwrites the registry entry for
// name. Always succeeds.
func (a *Agent[In, Out]) RegisterContextProvider(name string, p systemprompt.ContextProvider) {
	a.promptGen.Register(name, p)
}

// UnregisterContextProvider removes the registry entry for name. Fails with
// systemprompt.ErrProviderNotFound when absent.
func (a *Agent[In, Out]) UnregisterContextProvider(name string) error {
	return a.promptGen.Unregister(name)
}
