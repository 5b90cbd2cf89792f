package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// joinedBookColumns is the projection shared by every book query: the full
// book row plus the category's display attributes.
var joinedBookColumns = []string{
	"b.id", "b.title", "b.author", "b.isbn", "b.year", "b.publisher",
	"b.pages", "b.language", "b.description", "b.rating", "b.category_id",
	"b.purchase_date", "b.purchase_price", "b.purchase_store",
	"b.cover_image_path", "b.date_added", "b.last_modified",
	"c.name AS category_name", "c.color AS category_color",
}

func joinedBookSelect() squirrel.SelectBuilder {
	return squirrel.Select(joinedBookColumns...).
		From("books b").
		LeftJoin("categories c ON b.category_id = c.id")
}

// AddBook inserts a new book and returns its id. Title and author are
// required; every other supplied field is persisted as-is and unset optional
// fields fall back to the schema defaults. date_added is stamped with the
// current time when the caller did not supply one, and last_modified mirrors
// it. A duplicate non-null ISBN fails with ErrConstraintViolation.
func (s *Store) AddBook(f BookFields) (int64, error) {
	if err := f.validateForAdd(); err != nil {
		return 0, err
	}

	cols := f.insertColumns()
	if _, ok := cols["date_added"]; !ok {
		cols["date_added"] = timestamp()
	}
	// Keep last_modified in the same format as every later update stamp.
	cols["last_modified"] = cols["date_added"]

	query, args, err := squirrel.Insert("books").SetMap(cols).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build book insert: %w", err)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("add book: %w", ErrConstraintViolation)
		}
		return 0, fmt.Errorf("add book: %w", err)
	}
	return res.LastInsertId()
}

// GetAllBooks returns every book joined with its category, ordered by title.
func (s *Store) GetAllBooks() ([]BookRecord, error) {
	query, args, err := joinedBookSelect().OrderBy("b.title").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book select: %w", err)
	}

	var books []BookRecord
	if err := s.db.Select(&books, query, args...); err != nil {
		return nil, fmt.Errorf("get all books: %w", err)
	}
	return books, nil
}

// GetBookByID returns one joined record, or nil when the id does not exist.
// Absence is a result, not an error.
func (s *Store) GetBookByID(id int64) (*BookRecord, error) {
	query, args, err := joinedBookSelect().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book select: %w", err)
	}

	var b BookRecord
	if err := s.db.Get(&b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &b, nil
}

// UpdateBook applies a sparse partial update to exactly the supplied fields
// and always refreshes last_modified. A missing id is a silent no-op by
// design; a successful call does not imply the book exists.
func (s *Store) UpdateBook(id int64, f BookFields) error {
	if err := f.Validate(); err != nil {
		return err
	}

	cols := f.updateColumns()
	cols["last_modified"] = timestamp()

	query, args, err := squirrel.Update("books").
		SetMap(cols).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build book update: %w", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("update book %d: %w", id, ErrConstraintViolation)
		}
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// DeleteBook removes the book and its lending and note rows in one
// transaction. The two-step delete keeps the cascade explicit instead of
// relying on the foreign_keys pragma being active. A missing id is a no-op.
func (s *Store) DeleteBook(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM lending WHERE book_id=?`, id); err != nil {
		return fmt.Errorf("delete lending for book %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE book_id=?`, id); err != nil {
		return fmt.Errorf("delete notes for book %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM books WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return tx.Commit()
}

// SearchBooks matches query case-insensitively against title, author, ISBN
// and description (OR across fields), optionally restricted to one category.
// An empty query matches everything, so a bare category filter lists that
// category.
func (s *Store) SearchBooks(query string, categoryID *int64) ([]BookRecord, error) {
	like := "%" + query + "%"
	qb := joinedBookSelect().
		Where(squirrel.Or{
			squirrel.Like{"b.title": like},
			squirrel.Like{"b.author": like},
			squirrel.Like{"b.isbn": like},
			squirrel.Like{"b.description": like},
		}).
		OrderBy("b.title")
	if categoryID != nil {
		qb = qb.Where(squirrel.Eq{"b.category_id": *categoryID})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book search: %w", err)
	}

	var books []BookRecord
	if err := s.db.Select(&books, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}
