package catalog

// BookRecord is a book row joined with its category's display attributes.
// Nullable columns map to pointers so absent values survive JSON round trips
// as null rather than zero values.
type BookRecord struct {
	ID             int64    `db:"id" json:"id"`
	Title          string   `db:"title" json:"title"`
	Author         string   `db:"author" json:"author"`
	ISBN           *string  `db:"isbn" json:"isbn"`
	Year           *int     `db:"year" json:"year"`
	Publisher      *string  `db:"publisher" json:"publisher"`
	Pages          *int     `db:"pages" json:"pages"`
	Language       string   `db:"language" json:"language"`
	Description    *string  `db:"description" json:"description"`
	Rating         float64  `db:"rating" json:"rating"`
	CategoryID     *int64   `db:"category_id" json:"category_id"`
	PurchaseDate   *string  `db:"purchase_date" json:"purchase_date"`
	PurchasePrice  *float64 `db:"purchase_price" json:"purchase_price"`
	PurchaseStore  *string  `db:"purchase_store" json:"purchase_store"`
	CoverImagePath *string  `db:"cover_image_path" json:"cover_image_path"`
	DateAdded      string   `db:"date_added" json:"date_added"`
	LastModified   string   `db:"last_modified" json:"last_modified"`
	CategoryName   *string  `db:"category_name" json:"category_name"`
	CategoryColor  *string  `db:"category_color" json:"category_color"`
}

// Category is a shelving category. Color is a display hint for the UI.
type Category struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Color       string  `db:"color" json:"color"`
}

// CategoryStat is a category with its book count.
type CategoryStat struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color"`
	BookCount int    `db:"book_count" json:"book_count"`
}

// Lending statuses. A record is created in StatusBorrowed and moves to
// StatusReturned exactly once.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
)

// LendingRecord is a lending row joined with the book's title and author.
type LendingRecord struct {
	ID                 int64   `db:"id" json:"id"`
	BookID             int64   `db:"book_id" json:"book_id"`
	BorrowerName       string  `db:"borrower_name" json:"borrower_name"`
	BorrowerContact    *string `db:"borrower_contact" json:"borrower_contact"`
	LendDate           string  `db:"lend_date" json:"lend_date"`
	ExpectedReturnDate *string `db:"expected_return_date" json:"expected_return_date"`
	ActualReturnDate   *string `db:"actual_return_date" json:"actual_return_date"`
	Notes              *string `db:"notes" json:"notes"`
	Status             string  `db:"status" json:"status"`
	Title              string  `db:"title" json:"title"`
	Author             string  `db:"author" json:"author"`
}

// Note is a free-form note or review attached to a book.
type Note struct {
	ID          int64  `db:"id" json:"id"`
	BookID      int64  `db:"book_id" json:"book_id"`
	NoteText    string `db:"note_text" json:"note_text"`
	DateCreated string `db:"date_created" json:"date_created"`
}

// Statistics is the aggregate summary over the whole catalog.
type Statistics struct {
	TotalBooks      int     `json:"total_books"`
	TotalCategories int     `json:"total_categories"`
	BooksBorrowed   int     `json:"books_borrowed"`
	AverageRating   float64 `json:"average_rating"`
	TopAuthor       string  `json:"top_author"`
	TopAuthorCount  int     `json:"top_author_count"`
	RecentAdditions int     `json:"recent_additions"`
}

// NoTopAuthor is the TopAuthor sentinel when the catalog holds no books.
const NoTopAuthor = "N/A"
