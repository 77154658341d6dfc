// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants like Claude ask questions about the indexed
// mailbox and read the underlying documents.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
