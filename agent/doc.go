// Package agent contains the schema-first chat agent and its input/output
// envelopes. The package focuses on three concerns:
//
//  1. Envelope schemas (Input, Output) with deterministic JSON serialization
//  2. Turn execution: memory update, prompt assembly, structured completion
//  3. Context provider registration on the system prompt generator
//
// Design principles:
//   - Explicit wiring via Config; defaults resolve at construction time
//   - Schema types are generic parameters, fixed when the agent is built
//   - No local recovery: collaborator failures surface unchanged
//
// Execution model:
//   - Run drives one turn: optional user input, completion call, memory
//     append, in that strict order
//   - One agent serves one sequential conversation; callers needing
//     concurrent conversations instantiate separate agents
//
// The package intentionally keeps provider specifics, memory representation
// and prompt mechanics in their respective packages to avoid cyclic deps.
package agent
