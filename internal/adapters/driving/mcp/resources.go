package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

const (
	uriScheme = "libris://"

	// BooksURI is the resource listing every book sorted by title.
	BooksURI = uriScheme + "books"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         BooksURI,
		Name:        "books",
		Description: "Every book in the catalog, sorted by title",
		MIMEType:    mimeJSON,
	}, s.handleBooksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: BooksURI + "/{title}",
		Name:        "books-by-title",
		Description: "Books whose title exactly equals the path-escaped title",
		MIMEType:    mimeJSON,
	}, s.handleBooksByTitleResource)
}

func (s *Server) handleBooksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	books, err := s.ports.Catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return jsonResource(req.Params.URI, books)
}

func (s *Server) handleBooksByTitleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	title := extractTitle(req.Params.URI)
	if title == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	books, err := s.ports.Catalog.Find(ctx, domain.FieldTitle, title)
	if err != nil {
		return nil, fmt.Errorf("finding books: %w", err)
	}
	if len(books) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, books)
}

func jsonResource(uri string, books []domain.Book) (*mcp.ReadResourceResult, error) {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling books: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractTitle returns the unescaped title from libris://books/{title}.
func extractTitle(uri string) string {
	const prefix = BooksURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	title, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return title
}
