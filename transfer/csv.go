package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"bookkeeper/catalog"
)

// csvColumns is the fixed export column set, in order. Import matches
// columns by header name, so column order in a hand-edited file is free.
var csvColumns = []string{
	"id", "title", "author", "isbn", "year", "publisher", "pages",
	"language", "description", "rating", "category_name",
	"purchase_date", "purchase_price", "purchase_store", "date_added",
}

// ExportCSV writes every book to a CSV file and returns the path written.
// An empty path selects the default exports/books_export_<timestamp>.csv.
// Zero books still produce a header-only file.
func ExportCSV(store *catalog.Store, path string) (string, error) {
	if path == "" {
		path = filepath.Join("exports", fmt.Sprintf("books_export_%s.csv", stamp()))
	}
	if err := ensureParent(path); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	books, err := store.GetAllBooks()
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, b := range books {
		if err := w.Write(csvRow(b)); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	log.Info().Str("path", path).Int("books", len(books)).Msg("exported csv")
	return path, nil
}

func csvRow(b catalog.BookRecord) []string {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	intStr := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	floatStr := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'g', -1, 64)
	}

	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.Author,
		str(b.ISBN),
		intStr(b.Year),
		str(b.Publisher),
		intStr(b.Pages),
		b.Language,
		str(b.Description),
		strconv.FormatFloat(b.Rating, 'g', -1, 64),
		str(b.CategoryName),
		str(b.PurchaseDate),
		floatStr(b.PurchasePrice),
		str(b.PurchaseStore),
		b.DateAdded,
	}
}

// ImportCSV reads books from a CSV file through the store and returns the
// number of rows imported. Rows missing a title or author are skipped, bad
// numeric values are treated as absent, and an unmatched category name leaves
// the book uncategorized; a failed row is logged and never aborts the batch.
// Only a missing source file is an error.
func ImportCSV(store *catalog.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	catIDs, err := categoryIndex(store)
	if err != nil {
		return 0, err
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("skipping malformed csv row")
			continue
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		fields, ok := buildFields(
			get("title"), get("author"), get("isbn"), get("publisher"),
			get("language"), get("description"), get("purchase_date"),
			get("purchase_store"),
			intOrNil(get("year")), intOrNil(get("pages")),
			floatOrNil(get("rating")), floatOrNil(get("purchase_price")),
			get("category_name"), catIDs,
		)
		if !ok {
			log.Warn().Int("line", line).Msg("skipping csv row: missing title or author")
			continue
		}

		if _, err := store.AddBook(fields); err != nil {
			log.Warn().Int("line", line).Str("title", get("title")).Err(err).
				Msg("skipping csv row")
			continue
		}
		imported++
	}

	log.Info().Str("path", path).Int("imported", imported).Msg("imported csv")
	return imported, nil
}

// categoryIndex maps existing category names to ids for import resolution.
// Import never creates categories.
func categoryIndex(store *catalog.Store) (map[string]int64, error) {
	cats, err := store.GetAllCategories()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}
	return byName, nil
}

// buildFields assembles the sparse field set for one imported book. It
// reports false when title or author is missing. Language defaults to
// English and an unmatched category name resolves to no category.
func buildFields(
	title, author, isbn, publisher, language, description, purchaseDate, purchaseStore string,
	year, pages *int, rating, purchasePrice *float64,
	categoryName string, catIDs map[string]int64,
) (catalog.BookFields, bool) {
	if title == "" || author == "" {
		return catalog.BookFields{}, false
	}
	if language == "" {
		language = "English"
	}

	fields := catalog.BookFields{
		Title:         catalog.String(title),
		Author:        catalog.String(author),
		ISBN:          strOrNil(isbn),
		Publisher:     strOrNil(publisher),
		Language:      catalog.String(language),
		Description:   strOrNil(description),
		PurchaseDate:  strOrNil(purchaseDate),
		PurchaseStore: strOrNil(purchaseStore),
		Year:          year,
		Pages:         pages,
		Rating:        rating,
		PurchasePrice: purchasePrice,
	}
	if id, ok := catIDs[categoryName]; ok && categoryName != "" {
		fields.CategoryID = catalog.CategoryRef(id)
	}
	return fields, true
}
