package catalog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LendBook records a book going out to a borrower and returns the lending
// record id. The record is created in the borrowed state, stamped with the
// current time. Contact, expected return date and notes are optional.
//
// The store does not check for an existing open lending record unless it was
// opened with WithStrictLending; re-lending an already-borrowed book is
// otherwise the caller's business.
func (s *Store) LendBook(bookID int64, borrowerName, contact, expectedReturn, notes string) (int64, error) {
	if err := validation.Validate(borrowerName, validation.Required); err != nil {
		return 0, fmt.Errorf("borrower name: %w", err)
	}

	if s.strictLending {
		var open int
		err := s.db.Get(&open,
			`SELECT COUNT(*) FROM lending WHERE book_id=? AND status=?`, bookID, StatusBorrowed)
		if err != nil {
			return 0, fmt.Errorf("lend book %d: %w", bookID, err)
		}
		if open > 0 {
			return 0, fmt.Errorf("lend book %d: %w", bookID, ErrAlreadyBorrowed)
		}
	}

	res, err := s.db.Exec(`
        INSERT INTO lending (book_id, borrower_name, borrower_contact,
                             lend_date, expected_return_date, notes, status)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bookID, borrowerName, contact, timestamp(), expectedReturn, notes, StatusBorrowed)
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("lend book %d: %w", bookID, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("lend book %d: %w", bookID, err)
	}
	return res.LastInsertId()
}

// ReturnBook stamps the actual return date and flips the record to returned.
// An unknown or already-returned id is a harmless no-op at the storage level,
// though a repeat call does re-stamp the return time.
func (s *Store) ReturnBook(lendingID int64) error {
	_, err := s.db.Exec(
		`UPDATE lending SET actual_return_date=?, status=? WHERE id=?`,
		timestamp(), StatusReturned, lendingID)
	if err != nil {
		return fmt.Errorf("return lending %d: %w", lendingID, err)
	}
	return nil
}

// GetBorrowedBooks returns all currently-borrowed records joined with book
// title and author, newest lend date first.
func (s *Store) GetBorrowedBooks() ([]LendingRecord, error) {
	var recs []LendingRecord
	err := s.db.Select(&recs, `
        SELECT l.*, b.title, b.author
        FROM lending l
        JOIN books b ON l.book_id = b.id
        WHERE l.status = ?
        ORDER BY l.lend_date DESC`, StatusBorrowed)
	if err != nil {
		return nil, fmt.Errorf("get borrowed books: %w", err)
	}
	return recs, nil
}

// GetLendingHistory returns lending records of any status, newest first.
// A bookID of 0 means the whole catalog.
func (s *Store) GetLendingHistory(bookID int64) ([]LendingRecord, error) {
	query := `
        SELECT l.*, b.title, b.author
        FROM lending l
        JOIN books b ON l.book_id = b.id`
	args := []interface{}{}
	if bookID > 0 {
		query += ` WHERE l.book_id = ?`
		args = append(args, bookID)
	}
	query += ` ORDER BY l.lend_date DESC`

	var recs []LendingRecord
	if err := s.db.Select(&recs, query, args...); err != nil {
		return nil, fmt.Errorf("get lending history: %w", err)
	}
	return recs, nil
}

// OverdueLendings returns borrowed records whose expected return date has
// passed, earliest due date first. Records without an expected return date
// never show up here.
func (s *Store) OverdueLendings() ([]LendingRecord, error) {
	var recs []LendingRecord
	err := s.db.Select(&recs, `
        SELECT l.*, b.title, b.author
        FROM lending l
        JOIN books b ON l.book_id = b.id
        WHERE l.status = ?
          AND l.expected_return_date IS NOT NULL
          AND l.expected_return_date <> ''
          AND l.expected_return_date < date('now')
        ORDER BY l.expected_return_date ASC`, StatusBorrowed)
	if err != nil {
		return nil, fmt.Errorf("get overdue lendings: %w", err)
	}
	return recs, nil
}
