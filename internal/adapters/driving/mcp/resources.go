package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for mailbox resources.
	uriScheme = "inboxqa://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the indexed emails.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "emails",
		Name:        "emails",
		Description: "List of all emails indexed for the active day",
		MIMEType:    "application/json",
	}, s.handleEmailsResource)

	// Template for a single email's content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "emails/{documentId}",
		Name:        "email-content",
		Description: "Cleaned text content of a specific email",
		MIMEType:    "text/plain",
	}, s.handleEmailContentResource)
}

// handleEmailsResource returns a listing of all indexed emails.
func (s *Server) handleEmailsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Documents.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified email list.
	type emailInfo struct {
		ID       string `json:"id"`
		Subject  string `json:"subject"`
		From     string `json:"from,omitempty"`
		Received string `json:"received,omitempty"`
	}

	infos := make([]emailInfo, len(docs))
	for i := range docs {
		infos[i] = emailInfo{
			ID:       docs[i].ID,
			Subject:  docs[i].Metadata.Subject,
			From:     docs[i].Metadata.From,
			Received: docs[i].Metadata.Received,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling emails: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEmailContentResource returns the content of a specific email.
func (s *Server) handleEmailContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: inboxqa://emails/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Documents.GetDocument(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Content,
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like inboxqa://emails/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "emails/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
