// Package memory holds the conversational transcript for a single agent.
// Memory is an ordered, role-tagged message log with turn grouping and an
// optional sliding window. It deliberately carries no locking: one memory
// belongs to one agent driven by one sequential caller. Agents needing
// concurrent conversations get separate Memory instances.
package memory
