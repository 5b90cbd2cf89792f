package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookkeeper/catalog"
)

// bookFlags registers the full sparse field set on a command. add and update
// share it; update applies only the flags actually set.
func bookFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("title", "", "book title")
	f.String("author", "", "book author")
	f.String("isbn", "", "ISBN (must be unique)")
	f.Int("year", 0, "publication year")
	f.String("publisher", "", "publisher")
	f.Int("pages", 0, "page count")
	f.String("language", "", "language (default English)")
	f.String("description", "", "description")
	f.Float64("rating", 0, "rating, 0 to 5")
	f.Int64("category", 0, "category id")
	f.String("purchase-date", "", "purchase date")
	f.Float64("purchase-price", 0, "purchase price")
	f.String("purchase-store", "", "purchase store")
	f.String("cover", "", "cover image path")
}

// fieldsFromFlags builds the sparse field set from whichever flags were set.
func fieldsFromFlags(c *cobra.Command) catalog.BookFields {
	var bf catalog.BookFields
	f := c.Flags()

	setStr := func(name string, dst **string) {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = &v
		}
	}
	setStr("title", &bf.Title)
	setStr("author", &bf.Author)
	setStr("isbn", &bf.ISBN)
	setStr("publisher", &bf.Publisher)
	setStr("language", &bf.Language)
	setStr("description", &bf.Description)
	setStr("purchase-date", &bf.PurchaseDate)
	setStr("purchase-store", &bf.PurchaseStore)
	setStr("cover", &bf.CoverImagePath)

	if f.Changed("year") {
		v, _ := f.GetInt("year")
		bf.Year = &v
	}
	if f.Changed("pages") {
		v, _ := f.GetInt("pages")
		bf.Pages = &v
	}
	if f.Changed("rating") {
		v, _ := f.GetFloat64("rating")
		bf.Rating = &v
	}
	if f.Changed("category") {
		v, _ := f.GetInt64("category")
		bf.CategoryID = &v
	}
	if f.Changed("purchase-price") {
		v, _ := f.GetFloat64("purchase-price")
		bf.PurchasePrice = &v
	}
	return bf
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddBook(fieldsFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Printf("Added book %d\n", id)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every book, ordered by title",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		books, err := store.GetAllBooks()
		if err != nil {
			return err
		}
		printBooks(books)

		total, err := store.CountBooks()
		if err != nil {
			return err
		}
		fmt.Printf("%d book(s) in catalog\n", total)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one book in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		b, err := store.GetBookByID(id)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("book %d not found", id)
		}
		printBookDetail(b)

		notes, err := store.GetBookNotes(id)
		if err != nil {
			return err
		}
		for _, n := range notes {
			fmt.Printf("  note %d (%s): %s\n", n.ID, n.DateCreated, n.NoteText)
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the supplied fields of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.UpdateBook(id, fieldsFromFlags(cmd)); err != nil {
			return err
		}
		fmt.Printf("Updated book %d\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book and its lending and note records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteBook(id); err != nil {
			return err
		}
		fmt.Printf("Deleted book %d\n", id)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search title, author, ISBN and description",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		var categoryID *int64
		if cmd.Flags().Changed("category") {
			v, _ := cmd.Flags().GetInt64("category")
			categoryID = &v
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		books, err := store.SearchBooks(query, categoryID)
		if err != nil {
			return err
		}
		printBooks(books)
		return nil
	},
}

func printBooks(books []catalog.BookRecord) {
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}
	fmt.Printf("%-5s %-35s %-25s %-15s %s\n", "ID", "Title", "Author", "Category", "Rating")
	for _, b := range books {
		cat := ""
		if b.CategoryName != nil {
			cat = *b.CategoryName
		}
		fmt.Printf("%-5d %-35s %-25s %-15s %.1f\n",
			b.ID, truncate(b.Title, 35), truncate(b.Author, 25), truncate(cat, 15), b.Rating)
	}
}

func printBookDetail(b *catalog.BookRecord) {
	str := func(p *string) string {
		if p == nil {
			return "-"
		}
		return *p
	}
	fmt.Printf("Book %d: %s by %s\n", b.ID, b.Title, b.Author)
	fmt.Printf("  isbn: %s  language: %s  rating: %.1f\n", str(b.ISBN), b.Language, b.Rating)
	if b.Year != nil {
		fmt.Printf("  year: %d\n", *b.Year)
	}
	if b.Pages != nil {
		fmt.Printf("  pages: %d\n", *b.Pages)
	}
	fmt.Printf("  publisher: %s  category: %s\n", str(b.Publisher), str(b.CategoryName))
	fmt.Printf("  description: %s\n", str(b.Description))
	if b.PurchaseDate != nil || b.PurchasePrice != nil || b.PurchaseStore != nil {
		price := "-"
		if b.PurchasePrice != nil {
			price = fmt.Sprintf("%.2f", *b.PurchasePrice)
		}
		fmt.Printf("  purchased: %s for %s at %s\n", str(b.PurchaseDate), price, str(b.PurchaseStore))
	}
	fmt.Printf("  added: %s  modified: %s\n", b.DateAdded, b.LastModified)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func init() {
	bookFlags(addCmd)
	bookFlags(updateCmd)
	searchCmd.Flags().Int64("category", 0, "restrict to category id")
}
