// Package tui provides an interactive terminal user interface for inboxqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions about the indexed mailbox.
	Answer driving.AnswerService

	// Documents gives read access to the indexed emails.
	Documents driven.DocumentStore
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(answer driving.AnswerService, documents driven.DocumentStore) *Ports {
	return &Ports{
		Answer:    answer,
		Documents: documents,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	if p.Documents == nil {
		return ErrMissingDocumentStore
	}
	return nil
}
