// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// AnswerCompleted carries the answer and its retrieved emails back to
// the model.
type AnswerCompleted struct {
	Question string
	Answer   string
	Sources  []domain.Document
	Err      error
}

// EmailsLoaded carries the indexed emails for the browser view.
type EmailsLoaded struct {
	Documents []domain.Document
	Err       error
}

// EmailSelected is sent when an email is selected in the browser.
type EmailSelected struct {
	Document domain.Document
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer view.
	ViewAsk ViewType = iota
	// ViewEmails is the indexed email browser.
	ViewEmails
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewEmails:
		return "emails"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
