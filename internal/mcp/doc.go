// Package mcp implements the Model Context Protocol server for skillmcp
// using the mcp-go library.
//
// The server exposes the skill corpus to AI assistants over stdio using
// JSON-RPC 2.0 as specified by the MCP standard. Each skill file becomes an
// addressable MCP resource whose URI is derived from the file's position in
// the skills directory: fully-literal templates are registered as concrete
// resources, parameterized templates as MCP resource templates. Incoming
// resources/read requests are resolved through the routing table in
// internal/router, so concurrent reads always observe a consistent corpus
// snapshot and a rescan swaps the whole snapshot atomically.
package mcp
