package mcp

import (
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions about the indexed mailbox.
	Answer driving.AnswerService

	// Documents exposes the indexed documents as MCP resources.
	// Optional; resources return empty results when unset.
	Documents driven.DocumentStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	return nil
}
