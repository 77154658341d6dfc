// Package domain defines the core business entities for InboxQA.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: A raw Outlook message fetched from Microsoft Graph
//   - Document: An indexed email fragment with metadata
//   - Intent: The answer strategy chosen for a question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
