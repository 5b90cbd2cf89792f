package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"bookkeeper/catalog"
)

// Envelope wraps an exported book collection with its export time and count.
type Envelope struct {
	ExportDate string               `json:"export_date"`
	TotalBooks int                  `json:"total_books"`
	Books      []catalog.BookRecord `json:"books"`
}

// ExportJSON writes every book, wrapped in an Envelope, to a JSON file and
// returns the path written. An empty path selects the default
// exports/books_export_<timestamp>.json. An empty collection serializes to an
// empty list.
func ExportJSON(store *catalog.Store, path string) (string, error) {
	if path == "" {
		path = filepath.Join("exports", fmt.Sprintf("books_export_%s.json", stamp()))
	}
	if err := ensureParent(path); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	books, err := store.GetAllBooks()
	if err != nil {
		return "", err
	}
	if books == nil {
		books = []catalog.BookRecord{}
	}

	env := Envelope{
		ExportDate: time.Now().Format(time.RFC3339),
		TotalBooks: len(books),
		Books:      books,
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("books", len(books)).Msg("exported json")
	return path, nil
}

// ImportJSON reads books from a JSON export through the store and returns
// the number imported. Row handling matches ImportCSV: missing title or
// author skips the row, numeric fields are coerced leniently, categories are
// resolved by exact name and never auto-created. Only a missing source file
// is an error.
func ImportJSON(store *catalog.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// Books decode into loose maps so a hand-edited file with strings where
	// numbers belong still imports.
	var doc struct {
		Books []map[string]interface{} `json:"books"`
	}
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	catIDs, err := categoryIndex(store)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, book := range doc.Books {
		fields, ok := buildFields(
			jsonStr(book["title"]), jsonStr(book["author"]),
			jsonStr(book["isbn"]), jsonStr(book["publisher"]),
			jsonStr(book["language"]), jsonStr(book["description"]),
			jsonStr(book["purchase_date"]), jsonStr(book["purchase_store"]),
			jsonInt(book["year"]), jsonInt(book["pages"]),
			jsonFloat(book["rating"]), jsonFloat(book["purchase_price"]),
			jsonStr(book["category_name"]), catIDs,
		)
		if !ok {
			log.Warn().Int("index", i).Msg("skipping json book: missing title or author")
			continue
		}

		if _, err := store.AddBook(fields); err != nil {
			log.Warn().Int("index", i).Str("title", jsonStr(book["title"])).Err(err).
				Msg("skipping json book")
			continue
		}
		imported++
	}

	log.Info().Str("path", path).Int("imported", imported).Msg("imported json")
	return imported, nil
}
