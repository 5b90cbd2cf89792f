package transfer

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bookkeeper/catalog"
)

func tempStore(t *testing.T) *catalog.Store {
	t.Helper()
	st, err := catalog.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func addBook(t *testing.T, st *catalog.Store, title, author string, f catalog.BookFields) int64 {
	t.Helper()
	f.Title = catalog.String(title)
	f.Author = catalog.String(author)
	id, err := st.AddBook(f)
	require.NoError(t, err)
	return id
}

func TestExportCSVEmptyStore(t *testing.T) {
	st := tempStore(t)
	out := filepath.Join(t.TempDir(), "books.csv")

	path, err := ExportCSV(st, out)
	require.NoError(t, err)
	require.Equal(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strings.Join(csvColumns, ",")+"\n", string(data))
}

func TestExportCSVCreatesDirectories(t *testing.T) {
	st := tempStore(t)
	out := filepath.Join(t.TempDir(), "a", "b", "books.csv")

	_, err := ExportCSV(st, out)
	require.NoError(t, err)
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	src := tempStore(t)
	addBook(t, src, "The Hobbit", "J.R.R. Tolkien", catalog.BookFields{
		ISBN:   catalog.String("978-0261103344"),
		Year:   catalog.Int(1937),
		Pages:  catalog.Int(310),
		Rating: catalog.Float(4.5),
	})

	// Category ids differ across stores; the name is what travels.
	cats, err := src.GetAllCategories()
	require.NoError(t, err)
	var fiction int64
	for _, c := range cats {
		if c.Name == "Fiction" {
			fiction = c.ID
		}
	}
	addBook(t, src, "Dune", "Frank Herbert", catalog.BookFields{
		CategoryID: &fiction,
	})

	out := filepath.Join(t.TempDir(), "books.csv")
	_, err = ExportCSV(src, out)
	require.NoError(t, err)

	dst := tempStore(t)
	n, err := ImportCSV(dst, out)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	books, err := dst.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	require.Equal(t, "Dune", books[0].Title)
	require.NotNil(t, books[0].CategoryName)
	require.Equal(t, "Fiction", *books[0].CategoryName)

	hobbit := books[1]
	require.Equal(t, "The Hobbit", hobbit.Title)
	require.Equal(t, "J.R.R. Tolkien", hobbit.Author)
	require.Equal(t, "978-0261103344", *hobbit.ISBN)
	require.Equal(t, 1937, *hobbit.Year)
	require.Equal(t, 310, *hobbit.Pages)
	require.Equal(t, 4.5, hobbit.Rating)
}

func writeCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())
	return path
}

func TestImportCSVSkipsRowsMissingAuthor(t *testing.T) {
	st := tempStore(t)
	path := writeCSV(t, [][]string{
		{"title", "author", "year"},
		{"Kept", "Someone", "2001"},
		{"Dropped", "", "2002"},
		{"", "Orphan Author", "2003"},
	})

	n, err := ImportCSV(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	books, err := st.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Kept", books[0].Title)
}

func TestImportCSVLenientNumericCoercion(t *testing.T) {
	st := tempStore(t)
	path := writeCSV(t, [][]string{
		{"title", "author", "year", "pages", "rating"},
		{"Odd Numbers", "Someone", "unknown", "not-a-number", "4.5"},
	})

	n, err := ImportCSV(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	books, err := st.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Nil(t, books[0].Year)
	require.Nil(t, books[0].Pages)
	require.Equal(t, 4.5, books[0].Rating)
	require.Equal(t, "English", books[0].Language)
}

func TestImportCSVUnknownCategoryNotCreated(t *testing.T) {
	st := tempStore(t)
	path := writeCSV(t, [][]string{
		{"title", "author", "category_name"},
		{"Strays", "Someone", "No Such Shelf"},
	})

	n, err := ImportCSV(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	books, err := st.GetAllBooks()
	require.NoError(t, err)
	require.Nil(t, books[0].CategoryID)

	cats, err := st.GetAllCategories()
	require.NoError(t, err)
	require.Len(t, cats, 10) // import never invents categories
}

func TestImportCSVDuplicateISBNSkippedNotFatal(t *testing.T) {
	st := tempStore(t)
	addBook(t, st, "Original", "Someone", catalog.BookFields{
		ISBN: catalog.String("dup-1"),
	})
	path := writeCSV(t, [][]string{
		{"title", "author", "isbn"},
		{"Clash", "Someone", "dup-1"},
		{"Fine", "Someone", "uniq-1"},
	})

	n, err := ImportCSV(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestImportCSVMissingFile(t *testing.T) {
	st := tempStore(t)

	_, err := ImportCSV(st, filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestExportJSONEmptyStore(t *testing.T) {
	st := tempStore(t)
	out := filepath.Join(t.TempDir(), "books.json")

	_, err := ExportJSON(st, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, 0, env.TotalBooks)
	require.NotNil(t, env.Books)
	require.Empty(t, env.Books)
	require.NotEmpty(t, env.ExportDate)
}

func TestJSONRoundTrip(t *testing.T) {
	src := tempStore(t)
	addBook(t, src, "Cosmos", "Carl Sagan", catalog.BookFields{
		Year:   catalog.Int(1980),
		Rating: catalog.Float(5),
	})

	out := filepath.Join(t.TempDir(), "books.json")
	_, err := ExportJSON(src, out)
	require.NoError(t, err)

	dst := tempStore(t)
	n, err := ImportJSON(dst, out)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	books, err := dst.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Cosmos", books[0].Title)
	require.Equal(t, 1980, *books[0].Year)
	require.Equal(t, 5.0, books[0].Rating)
}

func TestImportJSONSkipsBooksMissingAuthor(t *testing.T) {
	st := tempStore(t)
	path := filepath.Join(t.TempDir(), "books.json")
	doc := `{"export_date":"2026-01-01T00:00:00Z","total_books":2,"books":[
        {"title":"Kept","author":"Someone"},
        {"title":"Dropped"}
    ]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	n, err := ImportJSON(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestImportJSONStringNumbers(t *testing.T) {
	st := tempStore(t)
	path := filepath.Join(t.TempDir(), "books.json")
	doc := `{"books":[{"title":"Mixed","author":"Someone","year":"1999","rating":"3.5","pages":"x"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	n, err := ImportJSON(st, path)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	books, err := st.GetAllBooks()
	require.NoError(t, err)
	require.Equal(t, 1999, *books[0].Year)
	require.Equal(t, 3.5, books[0].Rating)
	require.Nil(t, books[0].Pages)
}

func TestImportJSONMissingFile(t *testing.T) {
	st := tempStore(t)

	_, err := ImportJSON(st, filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrFileNotFound)
}
