// Package transfer moves the book collection in and out of the catalog:
// CSV and JSON export/import plus whole-file backup and restore. Import goes
// through the store's public operations only; backup copies the database
// file as an opaque blob.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrFileNotFound is returned when an import source or restore backup does
// not exist.
var ErrFileNotFound = errors.New("file not found")

// stamp formats a timestamp for embedding in export and backup file names.
func stamp() string { return time.Now().Format("20060102_150405") }

// DefaultExportPath returns dir/books_export_<timestamp>.<ext>, with dir
// falling back to "exports".
func DefaultExportPath(dir, ext string) string {
	if dir == "" {
		dir = "exports"
	}
	return filepath.Join(dir, fmt.Sprintf("books_export_%s.%s", stamp(), ext))
}

// ensureParent creates the destination's directory tree if needed.
func ensureParent(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

// copyFile duplicates src to dst verbatim.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// Lenient numeric coercion for import rows. A value that does not parse is
// treated as absent rather than failing the row.

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intOrNil(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func floatOrNil(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// JSON counterparts. Decoding uses json.Number so numeric fields survive
// whether the source carried them as numbers or strings.

func jsonStr(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func jsonInt(v interface{}) *int {
	return intOrNil(jsonStr(v))
}

func jsonFloat(v interface{}) *float64 {
	return floatOrNil(jsonStr(v))
}
