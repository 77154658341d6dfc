package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask_mail tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer about the indexed day of mail"`
}

// AskOutput is the output schema for the ask_mail tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// RetrieveInput is the input schema for the retrieve_mail tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the query to retrieve matching emails for"`
}

// RetrieveOutput is the output schema for the retrieve_mail tool.
type RetrieveOutput struct {
	Emails []EmailOutput `json:"emails"`
	Count  int           `json:"count"`
}

// EmailOutput represents a single retrieved email.
type EmailOutput struct {
	DocumentID string `json:"document_id"`
	Subject    string `json:"subject"`
	From       string `json:"from,omitempty"`
	Received   string `json:"received,omitempty"`
	Content    string `json:"content,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_mail",
		Description: "Answer a question about the indexed day of mailbox messages",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_mail",
		Description: "Return the raw emails retrieved for a query, without answering",
	}, s.handleRetrieve)
}

// handleAsk handles the ask_mail tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Answer: answer}, nil
}

// handleRetrieve handles the retrieve_mail tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	docs, err := s.ports.Answer.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Emails: make([]EmailOutput, len(docs)),
		Count:  len(docs),
	}

	for i := range docs {
		output.Emails[i] = EmailOutput{
			DocumentID: docs[i].ID,
			Subject:    docs[i].Metadata.Subject,
			From:       docs[i].Metadata.From,
			Received:   docs[i].Metadata.Received,
			Content:    docs[i].Content,
		}
	}

	return nil, output, nil
}
