package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func addTestBook(t *testing.T, st *Store, title string) int64 {
	t.Helper()
	id, err := st.AddBook(BookFields{Title: String(title), Author: String("Author")})
	require.NoError(t, err)
	return id
}

func TestLendAndReturnLifecycle(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Lent Out")

	lendID, err := st.LendBook(bookID, "Alice", "alice@example.com", "", "handle with care")
	require.NoError(t, err)
	require.Positive(t, lendID)

	borrowed, err := st.GetBorrowedBooks()
	require.NoError(t, err)
	require.Len(t, borrowed, 1)
	require.Equal(t, "Alice", borrowed[0].BorrowerName)
	require.Equal(t, StatusBorrowed, borrowed[0].Status)
	require.Equal(t, "Lent Out", borrowed[0].Title)
	require.Nil(t, borrowed[0].ActualReturnDate)

	require.NoError(t, st.ReturnBook(lendID))

	// Gone from the borrowed list, still in history with a return stamp.
	borrowed, err = st.GetBorrowedBooks()
	require.NoError(t, err)
	require.Empty(t, borrowed)

	hist, err := st.GetLendingHistory(bookID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, StatusReturned, hist[0].Status)
	require.NotNil(t, hist[0].ActualReturnDate)
}

func TestReturnBookMissingIDIsNoop(t *testing.T) {
	st := tempStore(t)
	require.NoError(t, st.ReturnBook(999))
}

func TestRelendAfterReturn(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Popular")

	first, err := st.LendBook(bookID, "Alice", "", "", "")
	require.NoError(t, err)
	require.NoError(t, st.ReturnBook(first))

	second, err := st.LendBook(bookID, "Bob", "", "", "")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	hist, err := st.GetLendingHistory(bookID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
}

func TestLendBookPermissiveByDefault(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Doubly Lent")

	// The default contract never checks for an open record.
	_, err := st.LendBook(bookID, "Alice", "", "", "")
	require.NoError(t, err)
	_, err = st.LendBook(bookID, "Bob", "", "", "")
	require.NoError(t, err)

	borrowed, err := st.GetBorrowedBooks()
	require.NoError(t, err)
	require.Len(t, borrowed, 2)
}

func TestStrictLendingGuard(t *testing.T) {
	st := tempStore(t, WithStrictLending())
	bookID := addTestBook(t, st, "Guarded")

	lendID, err := st.LendBook(bookID, "Alice", "", "", "")
	require.NoError(t, err)

	_, err = st.LendBook(bookID, "Bob", "", "", "")
	require.ErrorIs(t, err, ErrAlreadyBorrowed)

	require.NoError(t, st.ReturnBook(lendID))
	_, err = st.LendBook(bookID, "Bob", "", "", "")
	require.NoError(t, err)
}

func TestLendBookRequiresBorrowerName(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Nameless")

	_, err := st.LendBook(bookID, "", "", "", "")
	require.Error(t, err)
}

func TestLendUnknownBookFails(t *testing.T) {
	st := tempStore(t)

	_, err := st.LendBook(777, "Alice", "", "", "")
	require.ErrorIs(t, err, ErrConstraintViolation)
}

func TestGetLendingHistoryAllBooks(t *testing.T) {
	st := tempStore(t)
	b1 := addTestBook(t, st, "One")
	b2 := addTestBook(t, st, "Two")

	_, err := st.LendBook(b1, "Alice", "", "", "")
	require.NoError(t, err)
	_, err = st.LendBook(b2, "Bob", "", "", "")
	require.NoError(t, err)

	all, err := st.GetLendingHistory(0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	one, err := st.GetLendingHistory(b1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "One", one[0].Title)
}

func TestOverdueLendings(t *testing.T) {
	st := tempStore(t)
	late := addTestBook(t, st, "Late")
	fine := addTestBook(t, st, "Fine")
	open := addTestBook(t, st, "No Due Date")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	_, err := st.LendBook(late, "Alice", "", yesterday, "")
	require.NoError(t, err)
	_, err = st.LendBook(fine, "Bob", "", nextWeek, "")
	require.NoError(t, err)
	_, err = st.LendBook(open, "Carol", "", "", "")
	require.NoError(t, err)

	overdue, err := st.OverdueLendings()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, "Late", overdue[0].Title)

	// Returning clears it.
	require.NoError(t, st.ReturnBook(overdue[0].ID))
	overdue, err = st.OverdueLendings()
	require.NoError(t, err)
	require.Empty(t, overdue)
}

func TestNotesLifecycle(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Annotated")

	id1, err := st.AddNote(bookID, "first impression")
	require.NoError(t, err)
	_, err = st.AddNote(bookID, "second thought")
	require.NoError(t, err)

	notes, err := st.GetBookNotes(bookID)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	require.NoError(t, st.DeleteNote(id1))
	notes, err = st.GetBookNotes(bookID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "second thought", notes[0].NoteText)

	// Unknown id is a no-op.
	require.NoError(t, st.DeleteNote(9999))
}

func TestAddNoteRequiresText(t *testing.T) {
	st := tempStore(t)
	bookID := addTestBook(t, st, "Quiet")

	_, err := st.AddNote(bookID, "")
	require.Error(t, err)
}
