package systemprompt

import (
	"fmt"
	"sort"
	"strings"
)

// ErrProviderNotFound is returned when a context provider is looked up or
// unregistered under a name that was never registered.
var ErrProviderNotFound = fmt.Errorf("context provider not found")

// ContextProvider contributes a dynamic section to the generated prompt.
// Title names the section; Info returns its current content.
type ContextProvider interface {
	Title() string
	Info() string
}

// ProviderFunc adapts an ordinary function into a ContextProvider with a
// fixed title.
type ProviderFunc struct {
	Name string
	Fn   func() string
}

// Title returns the fixed section title.
func (p ProviderFunc) Title() string { return p.Name }

// Info invokes the wrapped function.
func (p ProviderFunc) Info() string { return p.Fn() }

// Options configures a Generator.
type Options struct {
	Background         []string
	Steps              []string
	OutputInstructions []string
	ContextProviders   map[string]ContextProvider
}

// Generator produces the system prompt text. It owns the context provider
// registry; all registry access goes through Provider / Register /
// Unregister. Not safe for concurrent use.
type Generator struct {
	background         []string
	steps              []string
	outputInstructions []string
	providers          map[string]ContextProvider
}

// New creates a Generator. Unset sections fall back to a generic assistant
// identity and schema-following output instructions.
func New(optFns ...func(o *Options)) *Generator {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if len(opts.Background) == 0 {
		opts.Background = []string{"This is a conversation with a helpful and friendly AI assistant."}
	}
	if len(opts.OutputInstructions) == 0 {
		opts.OutputInstructions = []string{
			"Always respond using the proper JSON schema.",
			"Always use the available additional information and context to enhance the response.",
		}
	}
	providers := make(map[string]ContextProvider, len(opts.ContextProviders))
	for name, p := range opts.ContextProviders {
		providers[name] = p
	}
	return &Generator{
		background:         opts.Background,
		steps:              opts.Steps,
		outputInstructions: opts.OutputInstructions,
		providers:          providers,
	}
}

// Generate renders the full system prompt. Provider sections are emitted in
// name order so the prompt is deterministic for a given registry state.
func (g *Generator) Generate() string {
	var b strings.Builder

	writeSection := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("# " + title + "\n")
		for _, line := range lines {
			b.WriteString("- " + line + "\n")
		}
	}

	writeSection("IDENTITY and PURPOSE", g.background)
	writeSection("INTERNAL ASSISTANT STEPS", g.steps)
	writeSection("OUTPUT INSTRUCTIONS", g.outputInstructions)

	if len(g.providers) > 0 {
		names := make([]string, 0, len(g.providers))
		for name := range g.providers {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\n# EXTRA INFORMATION AND CONTEXT\n")
		for _, name := range names {
			p := g.providers[name]
			b.WriteString("## " + p.Title() + "\n")
			b.WriteString(p.Info() + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Provider returns the registered provider for name. The provider stays
// owned by the registry; callers receive a reference.
func (g *Generator) Provider(name string) (ContextProvider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	return p, nil
}

// Register inserts or overwrites the provider under name. Overwriting an
// existing name is allowed and silent.
func (g *Generator) Register(name string, p ContextProvider) {
	g.providers[name] = p
}

// Unregister removes the provider under name, failing when absent.
func (g *Generator) Unregister(name string) error {
	if _, ok := g.providers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	delete(g.providers, name)
	return nil
}

// ProviderNames returns the registered names in sorted order.
func (g *Generator) ProviderNames() []string {
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
