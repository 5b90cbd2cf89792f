package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summary statistics for the whole catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		s, err := store.GetStatistics()
		if err != nil {
			return err
		}

		fmt.Printf("Books:             %d\n", s.TotalBooks)
		fmt.Printf("Categories:        %d\n", s.TotalCategories)
		fmt.Printf("Currently lent:    %d\n", s.BooksBorrowed)
		fmt.Printf("Average rating:    %.2f\n", s.AverageRating)
		fmt.Printf("Top author:        %s (%d)\n", s.TopAuthor, s.TopAuthorCount)
		fmt.Printf("Added last 30d:    %d\n", s.RecentAdditions)
		return nil
	},
}
