package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the generative model is not configured.
	// Fallback answering is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Indexing and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRetrieverUnavailable indicates no retriever is configured.
	ErrRetrieverUnavailable = errors.New("retriever unavailable")

	// ErrNoIndex indicates no emails have been indexed yet.
	ErrNoIndex = errors.New("no index for the requested date")

	// Authentication Errors.

	// ErrAuthRequired indicates sign-in is needed before fetching mail.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the cached token expired and refresh failed.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrRateLimited indicates the mail API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
