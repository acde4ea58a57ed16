package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

// AddBookInput is the input schema for the add_book tool.
type AddBookInput struct {
	Title  string `json:"title" jsonschema:"book title"`
	Author string `json:"author" jsonschema:"author name"`
	Genre  string `json:"genre" jsonschema:"free-form genre label"`
	Stock  int    `json:"stock" jsonschema:"number of copies on hand, zero or more"`
}

// AddBookOutput is the output schema for the add_book tool.
type AddBookOutput struct {
	ID string `json:"id"`
}

// FindBooksInput is the input schema for the find_books tool.
type FindBooksInput struct {
	Field string `json:"field,omitempty" jsonschema:"field to match exactly: title (default) or author"`
	Value string `json:"value" jsonschema:"exact, case-sensitive value to match"`
}

// BooksOutput lists books.
type BooksOutput struct {
	Books []domain.Book `json:"books"`
	Count int           `json:"count"`
}

// UpdateStockInput is the input schema for the update_stock tool.
type UpdateStockInput struct {
	Title string `json:"title" jsonschema:"exact title of the book; the first match is updated"`
	Stock int    `json:"stock" jsonschema:"new stock count, zero or more"`
}

// UpdateStockOutput is the output schema for the update_stock tool.
type UpdateStockOutput struct {
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}

// DeleteBookInput is the input schema for the delete_book tool.
type DeleteBookInput struct {
	Title string `json:"title" jsonschema:"exact title of the book; the first match is deleted"`
}

// DeleteBookOutput is the output schema for the delete_book tool.
type DeleteBookOutput struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// ListBooksInput takes no arguments.
type ListBooksInput struct{}

const noMatch = "No matching book found."

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_book",
		Description: "Add a book to the catalog. Titles are not unique; adding the same title twice creates two records.",
	}, s.handleAddBook)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_books",
		Description: "Find books whose title or author exactly equals a value",
	}, s.handleFindBooks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_stock",
		Description: "Set the stock count of the first book with the given title",
	}, s.handleUpdateStock)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_book",
		Description: "Delete the first book with the given title",
	}, s.handleDeleteBook)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_books",
		Description: "List every book sorted by title",
	}, s.handleListBooks)
}

func (s *Server) handleAddBook(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddBookInput,
) (*mcp.CallToolResult, AddBookOutput, error) {
	id, err := s.ports.Catalog.Add(ctx, domain.Book{
		Title:  input.Title,
		Author: input.Author,
		Genre:  input.Genre,
		Stock:  input.Stock,
	})
	if err != nil {
		return nil, AddBookOutput{}, fmt.Errorf("adding book: %w", err)
	}
	return nil, AddBookOutput{ID: id}, nil
}

func (s *Server) handleFindBooks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindBooksInput,
) (*mcp.CallToolResult, BooksOutput, error) {
	field := domain.FieldTitle
	if input.Field != "" {
		field = domain.ParseBookField(input.Field)
	}

	books, err := s.ports.Catalog.Find(ctx, field, input.Value)
	if err != nil {
		return nil, BooksOutput{}, fmt.Errorf("finding books: %w", err)
	}
	return nil, booksOutput(books), nil
}

func (s *Server) handleUpdateStock(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateStockInput,
) (*mcp.CallToolResult, UpdateStockOutput, error) {
	updated, err := s.ports.Catalog.SetStock(ctx, input.Title, input.Stock)
	if err != nil {
		return nil, UpdateStockOutput{}, fmt.Errorf("updating stock: %w", err)
	}
	if !updated {
		return nil, UpdateStockOutput{Message: noMatch}, nil
	}
	return nil, UpdateStockOutput{Updated: true, Message: "Stock updated successfully."}, nil
}

func (s *Server) handleDeleteBook(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteBookInput,
) (*mcp.CallToolResult, DeleteBookOutput, error) {
	deleted, err := s.ports.Catalog.Remove(ctx, input.Title)
	if err != nil {
		return nil, DeleteBookOutput{}, fmt.Errorf("deleting book: %w", err)
	}
	if !deleted {
		return nil, DeleteBookOutput{Message: noMatch}, nil
	}
	return nil, DeleteBookOutput{Deleted: true, Message: "Book deleted successfully."}, nil
}

func (s *Server) handleListBooks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListBooksInput,
) (*mcp.CallToolResult, BooksOutput, error) {
	books, err := s.ports.Catalog.ListAll(ctx)
	if err != nil {
		return nil, BooksOutput{}, fmt.Errorf("listing books: %w", err)
	}
	return nil, booksOutput(books), nil
}

// booksOutput never returns a nil slice so the result encodes as [].
func booksOutput(books []domain.Book) BooksOutput {
	if books == nil {
		books = []domain.Book{}
	}
	return BooksOutput{Books: books, Count: len(books)}
}
