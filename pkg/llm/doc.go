// Package llm provides the core abstractions shared by the Bedrock workflow
// components.
//
// This package defines the types that flow between component ports, along
// with the invoker contract that the Bedrock client implements.
//
// The main components include:
//
// - Invoker interface: model invocation (blocking and streaming)
// - Message and Conversation: chat transcripts threaded between components
// - InvokeRequest / InvokeResponse: provider-agnostic invocation types
// - Error handling: standardized error types
// - Retry: exponential backoff wrapper around any Invoker
// - Middleware: request/response/stream hooks for hosts
// - Prompts: YAML prompt configuration and Go template rendering
//
// The Bedrock implementation lives in /pkg/bedrock, the workflow component
// surface in /pkg/components, to maintain clean separation of concerns and
// avoid import cycles.
package llm
