// Package systemprompt assembles the system message sent ahead of the
// conversation history. A Generator combines static sections (background,
// steps, output instructions) with dynamic context contributed by named
// ContextProvider implementations registered at runtime.
package systemprompt
