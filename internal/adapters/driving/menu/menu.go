// Package menu provides the numbered interactive menu for managing the catalog.
//
// The menu reads one line per prompt from an io.Reader and writes results to
// an io.Writer, so it runs the same on a terminal, over a pipe, or in tests.
// End of input is treated like choosing Exit.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
	"github.com/custodia-labs/libris-cli/internal/core/ports/driving"
	"github.com/custodia-labs/libris-cli/internal/logger"
)

// Menu choices.
const (
	ChoiceAdd    = "1"
	ChoiceQuery  = "2"
	ChoiceStock  = "3"
	ChoiceDelete = "4"
	ChoiceList   = "5"
	ChoiceExit   = "6"
)

// Output messages.
const (
	msgBookAdded      = "Book added with ID: %s"
	msgInvalidSearch  = "Invalid choice."
	msgNoBooksFound   = "No books found."
	msgStockUpdated   = "Stock updated successfully."
	msgNoMatch        = "No matching book found."
	msgBookDeleted    = "Book deleted successfully."
	msgLibraryEmpty   = "No books found in the library."
	msgInvalidChoice  = "Invalid choice, please try again."
	msgInvalidCopies  = "Invalid number of copies."
	msgOperationError = "Error: %v"
)

const header = `
Library Management System
1. Add Book
2. Query Books
3. Update Stock
4. Delete Book
5. List All Books
6. Exit
`

// errExit ends the loop without error.
var errExit = errors.New("exit")

// Menu is the read-dispatch-print loop over a CatalogService.
type Menu struct {
	catalog driving.CatalogService
	in      *bufio.Reader
	out     io.Writer
}

// New creates a menu reading from in and writing to out.
func New(catalog driving.CatalogService, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		catalog: catalog,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled.
// Store errors are printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, header)
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return ignoreEOF(err)
		}

		err = m.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			logger.Debug("menu choice %s failed: %v", choice, err)
			m.println(fmt.Sprintf(msgOperationError, err))
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case ChoiceAdd:
		return m.addBook(ctx)
	case ChoiceQuery:
		return m.queryBooks(ctx)
	case ChoiceStock:
		return m.updateStock(ctx)
	case ChoiceDelete:
		return m.deleteBook(ctx)
	case ChoiceList:
		return m.listBooks(ctx)
	case ChoiceExit:
		return errExit
	default:
		m.println(msgInvalidChoice)
		return nil
	}
}

func (m *Menu) addBook(ctx context.Context) error {
	title, err := m.prompt("Enter book title: ")
	if err != nil {
		return err
	}
	author, err := m.prompt("Enter author name: ")
	if err != nil {
		return err
	}
	genre, err := m.prompt("Enter genre: ")
	if err != nil {
		return err
	}
	stock, ok, err := m.promptStock("Enter number of copies: ")
	if err != nil || !ok {
		return err
	}

	id, err := m.catalog.Add(ctx, domain.Book{Title: title, Author: author, Genre: genre, Stock: stock})
	if err != nil {
		return err
	}
	m.println(fmt.Sprintf(msgBookAdded, id))
	return nil
}

func (m *Menu) queryBooks(ctx context.Context) error {
	queryType, err := m.prompt("Search by (1) Title or (2) Author? ")
	if err != nil {
		return err
	}

	var field domain.BookField
	var label string
	switch queryType {
	case "1":
		field, label = domain.FieldTitle, "Enter book title: "
	case "2":
		field, label = domain.FieldAuthor, "Enter author name: "
	default:
		m.println(msgInvalidSearch)
		return nil
	}

	value, err := m.prompt(label)
	if err != nil {
		return err
	}
	books, err := m.catalog.Find(ctx, field, value)
	if err != nil {
		return err
	}
	m.printBooks(books, msgNoBooksFound)
	return nil
}

func (m *Menu) updateStock(ctx context.Context) error {
	title, err := m.prompt("Enter book title: ")
	if err != nil {
		return err
	}
	stock, ok, err := m.promptStock("Enter new stock quantity: ")
	if err != nil || !ok {
		return err
	}

	updated, err := m.catalog.SetStock(ctx, title, stock)
	if err != nil {
		return err
	}
	if updated {
		m.println(msgStockUpdated)
	} else {
		m.println(msgNoMatch)
	}
	return nil
}

func (m *Menu) deleteBook(ctx context.Context) error {
	title, err := m.prompt("Enter book title to delete: ")
	if err != nil {
		return err
	}

	deleted, err := m.catalog.Remove(ctx, title)
	if err != nil {
		return err
	}
	if deleted {
		m.println(msgBookDeleted)
	} else {
		m.println(msgNoMatch)
	}
	return nil
}

func (m *Menu) listBooks(ctx context.Context) error {
	books, err := m.catalog.ListAll(ctx)
	if err != nil {
		return err
	}
	m.printBooks(books, msgLibraryEmpty)
	return nil
}

func (m *Menu) printBooks(books []domain.Book, empty string) {
	if len(books) == 0 {
		m.println(empty)
		return
	}
	for _, b := range books {
		m.println(b.String())
	}
}

// promptStock reads a non-negative integer. ok is false when the input was
// rejected and the message already printed.
func (m *Menu) promptStock(label string) (stock int, ok bool, err error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, false, err
	}
	stock, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil || domain.ValidateStock(stock) != nil {
		m.println(msgInvalidCopies)
		return 0, false, nil
	}
	return stock, true, nil
}

// prompt writes label and reads one line without its line terminator.
// A final line without a newline is returned normally; io.EOF is only
// returned once nothing is left to read.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
