package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// CountBooks returns the number of books in the catalog.
func (s *Store) CountBooks() (int, error) {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// GetStatistics computes the aggregate summary: totals, the count of open
// lendings, the average rating over rated books (a rating of exactly 0 means
// unrated and is excluded), the most-collected author, and how many books
// were added in the trailing 30 days.
func (s *Store) GetStatistics() (*Statistics, error) {
	var stats Statistics

	if err := s.db.Get(&stats.TotalBooks, `SELECT COUNT(*) FROM books`); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if err := s.db.Get(&stats.TotalCategories, `SELECT COUNT(*) FROM categories`); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if err := s.db.Get(&stats.BooksBorrowed,
		`SELECT COUNT(*) FROM lending WHERE status = ?`, StatusBorrowed); err != nil {
		return nil, fmt.Errorf("count borrowed: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.Get(&avg, `SELECT AVG(rating) FROM books WHERE rating > 0`); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if avg.Valid {
		stats.AverageRating = math.Round(avg.Float64*100) / 100
	}

	var top struct {
		Author string `db:"author"`
		N      int    `db:"n"`
	}
	err := s.db.Get(&top, `
        SELECT author, COUNT(*) AS n
        FROM books
        GROUP BY author
        ORDER BY n DESC
        LIMIT 1`)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		stats.TopAuthor = NoTopAuthor
	case err != nil:
		return nil, fmt.Errorf("top author: %w", err)
	default:
		stats.TopAuthor = top.Author
		stats.TopAuthorCount = top.N
	}

	if err := s.db.Get(&stats.RecentAdditions,
		`SELECT COUNT(*) FROM books WHERE date_added >= date('now', '-30 days')`); err != nil {
		return nil, fmt.Errorf("recent additions: %w", err)
	}

	return &stats, nil
}
