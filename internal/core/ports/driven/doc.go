// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - MailSource: Fetches messages from the mail API
//   - TokenProvider: Supplies access tokens for the mail API
//   - DocumentStore: Indexed document persistence
//   - VectorIndex: Vector storage/search over indexed documents
//   - EmbeddingService: Generates vector embeddings
//   - Retriever: Semantic retrieval over the active index
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Generative answering. Without it, questions that match
//     no keyword rule return ErrLLMUnavailable instead of a generated answer.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
