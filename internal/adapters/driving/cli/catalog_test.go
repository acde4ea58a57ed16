package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/libris-cli/internal/core/domain"
)

func seedBooks(t *testing.T, books ...domain.Book) {
	t.Helper()
	catalog, _ := setupTestServices(t)
	for _, b := range books {
		_, err := catalog.Add(context.Background(), b)
		require.NoError(t, err)
	}
}

func TestAddCmd(t *testing.T) {
	catalog, _ := setupTestServices(t)

	out, err := executeCommand(t, "", "add", "Dune", "Frank Herbert", "SF", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Book added with ID: ")

	books, err := catalog.Find(context.Background(), domain.FieldTitle, "Dune")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 3, books[0].Stock)
}

func TestAddCmd_InvalidStock(t *testing.T) {
	for _, raw := range []string{"many", "-1", ""} {
		t.Run(raw, func(t *testing.T) {
			setupTestServices(t)

			_, err := executeCommand(t, "", "add", "--", "Dune", "Frank Herbert", "SF", raw)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddCmd_WrongArgCount(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "add", "Dune")

	assert.Error(t, err)
}

func TestFindCmd(t *testing.T) {
	seedBooks(t,
		domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3},
		domain.Book{Title: "Emma", Author: "Jane Austen", Genre: "Classic", Stock: 1},
	)

	out, err := executeCommand(t, "", "find", "Dune")
	require.NoError(t, err)
	assert.Contains(t, out, `"Dune" by Frank Herbert`)
	assert.NotContains(t, out, "Emma")

	out, err = executeCommand(t, "", "find", "--by", "author", "Jane Austen")
	require.NoError(t, err)
	assert.Contains(t, out, `"Emma" by Jane Austen`)
}

func TestFindCmd_IsExactAndCaseSensitive(t *testing.T) {
	seedBooks(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3})

	out, err := executeCommand(t, "", "find", "dune")

	require.NoError(t, err)
	assert.Contains(t, out, "No books found.")
}

func TestFindCmd_UnsupportedFieldFindsNothing(t *testing.T) {
	seedBooks(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3})

	out, err := executeCommand(t, "", "find", "--by", "genre", "SF")

	require.NoError(t, err)
	assert.Contains(t, out, "No books found.")
	assert.NotContains(t, out, "Dune")
}

func TestFindCmd_FieldIsCaseInsensitive(t *testing.T) {
	seedBooks(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3})

	out, err := executeCommand(t, "", "find", "--by", "AUTHOR", "Frank Herbert")

	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
}

func TestFindCmd_JSON(t *testing.T) {
	seedBooks(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3})

	out, err := executeCommand(t, "", "find", "--json", "Dune")
	require.NoError(t, err)

	var books []domain.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.NotEmpty(t, books[0].ID)
}

func TestStockCmd(t *testing.T) {
	seedBooks(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Stock: 3})

	out, err := executeCommand(t, "", "stock", "Dune", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Stock updated successfully.")

	out, err = executeCommand(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "stock=7")
}

func TestStockCmd_NoMatch(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "stock", "Missing", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching book found.")
}

func TestStockCmd_Negative(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "stock", "--", "Dune", "-2")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveCmd(t *testing.T) {
	seedBooks(t,
		domain.Book{Title: "Dune", Author: "A", Genre: "SF", Stock: 1},
		domain.Book{Title: "Dune", Author: "B", Genre: "SF", Stock: 2},
	)

	out, err := executeCommand(t, "", "rm", "Dune")
	require.NoError(t, err)
	assert.Contains(t, out, "Book deleted successfully.")

	out, err = executeCommand(t, "", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, `"Dune"`), "only the first match is removed")
}

func TestRemoveCmd_NoMatch(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "remove", "Missing")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching book found.")
}

func TestListCmd_SortedByTitle(t *testing.T) {
	seedBooks(t,
		domain.Book{Title: "Zorba", Author: "A", Genre: "G", Stock: 1},
		domain.Book{Title: "Anna", Author: "B", Genre: "G", Stock: 1},
		domain.Book{Title: "Moby", Author: "C", Genre: "G", Stock: 1},
	)

	out, err := executeCommand(t, "", "ls")
	require.NoError(t, err)

	a, m, z := strings.Index(out, "Anna"), strings.Index(out, "Moby"), strings.Index(out, "Zorba")
	assert.True(t, a < m && m < z, "titles out of order:\n%s", out)
}

func TestListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No books found in the library.")
}

func TestListCmd_JSONEmpty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "list", "--json")

	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{" 12 ", 12, false},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseStock(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
