package catalog

import (
	"fmt"
)

// defaultCategoryColor is applied when AddCategory is called without a color.
const defaultCategoryColor = "#3498db"

// GetAllCategories returns every category ordered by name.
func (s *Store) GetAllCategories() ([]Category, error) {
	var cats []Category
	err := s.db.Select(&cats, `SELECT id, name, description, color FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return cats, nil
}

// AddCategory inserts a category and returns its id. A duplicate name fails
// with ErrConstraintViolation.
func (s *Store) AddCategory(name, description, color string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("category name is required")
	}
	if color == "" {
		color = defaultCategoryColor
	}

	res, err := s.db.Exec(
		`INSERT INTO categories (name, description, color) VALUES (?, ?, ?)`,
		name, description, color,
	)
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("add category %q: %w", name, ErrConstraintViolation)
		}
		return 0, fmt.Errorf("add category %q: %w", name, err)
	}
	return res.LastInsertId()
}

// GetCategoryStats returns every category with its book count, most populous
// first, name as the tie-breaker. Categories with zero books are included.
func (s *Store) GetCategoryStats() ([]CategoryStat, error) {
	var stats []CategoryStat
	err := s.db.Select(&stats, `
        SELECT c.id, c.name, c.color, COUNT(b.id) AS book_count
        FROM categories c
        LEFT JOIN books b ON c.id = b.category_id
        GROUP BY c.id, c.name, c.color
        ORDER BY book_count DESC, c.name`)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return stats, nil
}
