package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookkeeper/catalog"
)

var lendCmd = &cobra.Command{
	Use:   "lend <bookID> <borrower>",
	Short: "Record a book going out",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		contact, _ := cmd.Flags().GetString("contact")
		due, _ := cmd.Flags().GetString("due")
		notes, _ := cmd.Flags().GetString("notes")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.LendBook(bookID, args[1], contact, due, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Lending record %d created\n", id)
		return nil
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <lendingID>",
	Short: "Mark a lending record as returned",
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

		if err := store.ReturnBook(id); err != nil {
			return err
		}
		fmt.Printf("Lending record %d returned\n", id)
		return nil
	},
}

var borrowedCmd = &cobra.Command{
	Use:   "borrowed",
	Short: "List books currently out",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.GetBorrowedBooks()
		if err != nil {
			return err
		}
		printLendings(recs)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [bookID]",
	Short: "Lending history, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bookID int64
		if len(args) == 1 {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			bookID = id
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.GetLendingHistory(bookID)
		if err != nil {
			return err
		}
		printLendings(recs)
		return nil
	},
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List borrowed books past their expected return date",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.OverdueLendings()
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("Nothing overdue.")
			return nil
		}
		fmt.Printf("%-5s %-30s %-20s %s\n", "ID", "Title", "Borrower", "Due")
		for _, r := range recs {
			due := ""
			if r.ExpectedReturnDate != nil {
				due = *r.ExpectedReturnDate
			}
			fmt.Printf("%-5d %-30s %-20s %s\n", r.ID, truncate(r.Title, 30), truncate(r.BorrowerName, 20), due)
		}
		return nil
	},
}

func printLendings(recs []catalog.LendingRecord) {
	if len(recs) == 0 {
		fmt.Println("No lending records.")
		return
	}
	fmt.Printf("%-5s %-30s %-20s %-10s %s\n", "ID", "Title", "Borrower", "Status", "Lent")
	for _, r := range recs {
		fmt.Printf("%-5d %-30s %-20s %-10s %s\n",
			r.ID, truncate(r.Title, 30), truncate(r.BorrowerName, 20), r.Status, r.LendDate)
	}
}

func init() {
	lendCmd.Flags().String("contact", "", "borrower contact")
	lendCmd.Flags().String("due", "", "expected return date, e.g. 2026-09-15")
	lendCmd.Flags().String("notes", "", "lending notes")
}
