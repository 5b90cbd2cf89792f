package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookFields is a sparse set of book attributes. A nil field is "not
// supplied": AddBook persists only supplied, non-empty values (schema
// defaults cover the rest) and UpdateBook touches only supplied fields.
// The field set is closed, so an unknown column can't reach the SQL layer.
type BookFields struct {
	Title          *string
	Author         *string
	ISBN           *string
	Year           *int
	Publisher      *string
	Pages          *int
	Language       *string
	Description    *string
	Rating         *float64
	CategoryID     *int64
	PurchaseDate   *string
	PurchasePrice  *float64
	PurchaseStore  *string
	CoverImagePath *string
	DateAdded      *string
}

// Validate checks range constraints on whichever fields are supplied.
func (f BookFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&f.Pages, validation.Min(0)),
		validation.Field(&f.Year, validation.Min(0)),
		validation.Field(&f.PurchasePrice, validation.Min(0.0)),
	)
}

// validateForAdd additionally requires title and author.
func (f BookFields) validateForAdd() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Author, validation.Required),
	); err != nil {
		return err
	}
	return f.Validate()
}

// insertColumns returns the column map for AddBook. Unset fields and empty
// strings are dropped so schema defaults apply.
func (f BookFields) insertColumns() map[string]interface{} {
	cols := map[string]interface{}{}
	setStr := func(name string, v *string) {
		if v != nil && *v != "" {
			cols[name] = *v
		}
	}
	setStr("title", f.Title)
	setStr("author", f.Author)
	setStr("isbn", f.ISBN)
	setStr("publisher", f.Publisher)
	setStr("language", f.Language)
	setStr("description", f.Description)
	setStr("purchase_date", f.PurchaseDate)
	setStr("purchase_store", f.PurchaseStore)
	setStr("cover_image_path", f.CoverImagePath)
	setStr("date_added", f.DateAdded)
	if f.Year != nil {
		cols["year"] = *f.Year
	}
	if f.Pages != nil {
		cols["pages"] = *f.Pages
	}
	if f.Rating != nil {
		cols["rating"] = *f.Rating
	}
	if f.PurchasePrice != nil {
		cols["purchase_price"] = *f.PurchasePrice
	}
	if f.CategoryID != nil {
		cols["category_id"] = *f.CategoryID
	}
	return cols
}

// updateColumns returns the column map for UpdateBook. Unlike insert, a
// supplied empty string is kept so a field can be cleared. ISBN is the
// exception: it carries a UNIQUE index, so clearing it stores NULL instead of
// "" to keep two cleared books from colliding.
func (f BookFields) updateColumns() map[string]interface{} {
	cols := map[string]interface{}{}
	setStr := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	setStr("title", f.Title)
	setStr("author", f.Author)
	if f.ISBN != nil {
		if *f.ISBN == "" {
			cols["isbn"] = nil
		} else {
			cols["isbn"] = *f.ISBN
		}
	}
	setStr("publisher", f.Publisher)
	setStr("language", f.Language)
	setStr("description", f.Description)
	setStr("purchase_date", f.PurchaseDate)
	setStr("purchase_store", f.PurchaseStore)
	setStr("cover_image_path", f.CoverImagePath)
	setStr("date_added", f.DateAdded)
	if f.Year != nil {
		cols["year"] = *f.Year
	}
	if f.Pages != nil {
		cols["pages"] = *f.Pages
	}
	if f.Rating != nil {
		cols["rating"] = *f.Rating
	}
	if f.PurchasePrice != nil {
		cols["purchase_price"] = *f.PurchasePrice
	}
	if f.CategoryID != nil {
		cols["category_id"] = *f.CategoryID
	}
	return cols
}

// Convenience constructors for pointer fields, mirroring how sparse values
// are assembled from CLI flags and import rows.

func String(v string) *string { return &v }

func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }

func CategoryRef(id int64) *int64 { return &id }
