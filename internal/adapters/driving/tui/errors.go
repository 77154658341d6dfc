package tui

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("tui: answer service is required")

// ErrMissingDocumentStore is returned when the document store is not provided.
var ErrMissingDocumentStore = errors.New("tui: document store is required")
