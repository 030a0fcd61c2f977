// Package router derives externally addressable URIs for skill resources
// from their position in the skills directory tree, and resolves incoming
// request URIs back to the registered resource plus extracted parameters.
//
// The package is split into three pieces that mirror the lifecycle of a
// resource address:
//
//   - Derive converts a file path (as a sequence of raw path segments) into
//     a ResourceDefinition with a canonical URI template. Directory names
//     wrapped in parentheses are route groups: they organize files on disk
//     and never appear in the address. Names wrapped in brackets become
//     named parameter captures. Everything else is a literal segment.
//
//   - Registry collects definitions during a scan. Insertion rejects
//     duplicate templates and template pairs that could both match the same
//     request with equal specificity, so routing conflicts surface at
//     registration time rather than per request.
//
//   - Table publishes a registry for concurrent request matching. A rescan
//     builds a complete new registry and swaps it in atomically; in-flight
//     matches always observe either the old or the new registry, never a
//     partially populated one.
//
// Matching is a pure in-memory computation. The router locates a handler
// and extracts its parameters but never invokes the handler itself.
package router
