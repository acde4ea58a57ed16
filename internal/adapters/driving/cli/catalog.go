package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

var (
	findBy   string
	findJSON bool
	listJSON bool
)

var addCmd = &cobra.Command{
	Use:   "add <title> <author> <genre> <stock>",
	Short: "Add a book to the catalog",
	Long: `Adds a book record. No duplicate check is made: adding the same
title twice creates two records.`,
	Args: cobra.ExactArgs(4),
	RunE: runAdd,
}

var findCmd = &cobra.Command{
	Use:   "find <value>",
	Short: "Find books by title or author",
	Long: `Finds books whose title or author exactly equals the value.
Matching is case-sensitive and on a single field.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

var stockCmd = &cobra.Command{
	Use:   "stock <title> <stock>",
	Short: "Set the stock of a book",
	Long:  `Overwrites the stock count of the first book with the given title.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runStock,
}

var removeCmd = &cobra.Command{
	Use:     "remove <title>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete a book by title",
	Long:    `Deletes the first book with the given title.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all books sorted by title",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	findCmd.Flags().StringVar(&findBy, "by", string(domain.FieldTitle), "field to match: title or author")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output results as JSON")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	stock, err := parseStock(args[3])
	if err != nil {
		return err
	}

	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	id, err := catalog.Add(cmd.Context(), domain.Book{
		Title:  args[0],
		Author: args[1],
		Genre:  args[2],
		Stock:  stock,
	})
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	cmd.Printf("Book added with ID: %s\n", id)
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	field := domain.ParseBookField(findBy)

	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	books, err := catalog.Find(cmd.Context(), field, args[0])
	if err != nil {
		return fmt.Errorf("failed to find books: %w", err)
	}

	if findJSON {
		return outputBooksJSON(cmd, books)
	}
	outputBooks(cmd, books, "No books found.")
	return nil
}

func runStock(cmd *cobra.Command, args []string) error {
	stock, err := parseStock(args[1])
	if err != nil {
		return err
	}

	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	updated, err := catalog.SetStock(cmd.Context(), args[0], stock)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	if updated {
		cmd.Println("Stock updated successfully.")
	} else {
		cmd.Println("No matching book found.")
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	deleted, err := catalog.Remove(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if deleted {
		cmd.Println("Book deleted successfully.")
	} else {
		cmd.Println("No matching book found.")
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	catalog, err := requireCatalog(cmd.Context())
	if err != nil {
		return err
	}

	books, err := catalog.ListAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if listJSON {
		return outputBooksJSON(cmd, books)
	}
	outputBooks(cmd, books, "No books found in the library.")
	return nil
}

func parseStock(raw string) (int, error) {
	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || stock < 0 {
		return 0, fmt.Errorf("%w: invalid number of copies %q", domain.ErrInvalidInput, raw)
	}
	return stock, nil
}

func outputBooksJSON(cmd *cobra.Command, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal books: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputBooks(cmd *cobra.Command, books []domain.Book, empty string) {
	if len(books) == 0 {
		cmd.Println(empty)
		return
	}
	for _, b := range books {
		cmd.Println(b.String())
	}
}
