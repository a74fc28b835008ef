// Package completion defines the provider-agnostic contract for structured
// language model completions.
//
// Core goals:
//   - Normalize the request shape (model id, role-tagged messages, target
//     JSON schema) across providers
//   - Derive the target schema from a Go type via reflection
//   - Validate the raw model output against that schema before decoding
//   - Facilitate lightweight mocking for tests (MockClient)
//
// Providers (e.g. OpenAI, Anthropic) implement the Client interface from
// this package so the agent layer remains decoupled from vendor SDKs. The
// generic Complete function layers typed decoding on top of Client.
package completion
