package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage shelving categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		cats, err := store.GetAllCategories()
		if err != nil {
			return err
		}
		fmt.Printf("%-5s %-15s %-8s %s\n", "ID", "Name", "Color", "Description")
		for _, c := range cats {
			desc := ""
			if c.Description != nil {
				desc = *c.Description
			}
			fmt.Printf("%-5d %-15s %-8s %s\n", c.ID, c.Name, c.Color, desc)
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		color, _ := cmd.Flags().GetString("color")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.AddCategory(args[0], description, color)
		if err != nil {
			return err
		}
		fmt.Printf("Added category %d\n", id)
		return nil
	},
}

var categoryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Book count per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.GetCategoryStats()
		if err != nil {
			return err
		}
		fmt.Printf("%-15s %s\n", "Category", "Books")
		for _, s := range stats {
			fmt.Printf("%-15s %d\n", s.Name, s.BookCount)
		}
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().String("description", "", "category description")
	categoryAddCmd.Flags().String("color", "", "display color, e.g. #3498db")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryStatsCmd)
}
