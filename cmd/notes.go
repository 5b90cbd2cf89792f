package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage book notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <bookID> <text...>",
	Short: "Attach a note to a book",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddNote(bookID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Added note %d\n", id)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list <bookID>",
	Short: "List a book's notes, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		notes, err := store.GetBookNotes(bookID)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes.")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%d (%s): %s\n", n.ID, n.DateCreated, n.NoteText)
		}
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <noteID>",
	Short: "Delete a note",
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

		if err := store.DeleteNote(id); err != nil {
			return err
		}
		fmt.Printf("Deleted note %d\n", id)
		return nil
	},
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}
