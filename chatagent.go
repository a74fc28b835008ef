// Package chatagent provides a high-level façade over the agent, memory and
// prompt abstractions for building schema-first chat agents. Most
// applications interact with this package by:
//  1. Creating a completion client (completion/openai, completion/anthropic,
//     or any completion.Client implementation)
//  2. Building an agent via New() with optional overrides (model, memory,
//     prompt generator, logger)
//  3. Driving turns with Run; registering context providers as needed
//
// The façade builds agents with the default Input/Output envelopes. For
// custom envelope schemas use agent.New directly with explicit type
// parameters. All defaults are safe for local development and testing.
package chatagent

import (
	"github.com/schemaforge/chatagent/agent"
	"github.com/schemaforge/chatagent/completion"
	"github.com/schemaforge/chatagent/logging"
	"github.com/schemaforge/chatagent/memory"
	"github.com/schemaforge/chatagent/systemprompt"
)

// Options configures the agent built by New.
type Options struct {
	// Model identifies the model passed to the client on every turn.
	// Defaults to agent.DefaultModel.
	Model string

	// Memory seeds the conversation transcript (defaults to a fresh empty
	// memory if not provided).
	Memory *memory.Memory

	// SystemPromptGenerator produces the system message (defaults to a
	// generator with generic assistant sections).
	SystemPromptGenerator *systemprompt.Generator

	// Logger receives turn lifecycle events (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Agent is the default-envelope chat agent built by New.
type Agent = agent.Agent[agent.Input, agent.Output]

// New creates a chat agent with the default Input/Output envelopes and
// optional overrides. Any unset collaborator is initialized with a fresh
// in-process default.
func New(client completion.Client, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	return agent.New[agent.Input, agent.Output](agent.Config{
		Client:                client,
		Model:                 opts.Model,
		Memory:                opts.Memory,
		SystemPromptGenerator: opts.SystemPromptGenerator,
		Logger:                opts.Logger,
	})
}
