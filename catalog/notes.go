package catalog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddNote attaches a note to a book and returns the note id.
func (s *Store) AddNote(bookID int64, text string) (int64, error) {
	if err := validation.Validate(text, validation.Required); err != nil {
		return 0, fmt.Errorf("note text: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO notes (book_id, note_text, date_created) VALUES (?, ?, ?)`,
		bookID, text, timestamp())
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("add note for book %d: %w", bookID, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("add note for book %d: %w", bookID, err)
	}
	return res.LastInsertId()
}

// GetBookNotes lists a book's notes, newest first.
func (s *Store) GetBookNotes(bookID int64) ([]Note, error) {
	var notes []Note
	err := s.db.Select(&notes,
		`SELECT id, book_id, note_text, date_created FROM notes
         WHERE book_id = ? ORDER BY date_created DESC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("get notes for book %d: %w", bookID, err)
	}
	return notes, nil
}

// DeleteNote removes a note. A missing id is a no-op.
func (s *Store) DeleteNote(noteID int64) error {
	if _, err := s.db.Exec(`DELETE FROM notes WHERE id=?`, noteID); err != nil {
		return fmt.Errorf("delete note %d: %w", noteID, err)
	}
	return nil
}
