package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookkeeper/transfer"
)

var exportCmd = &cobra.Command{
	Use:       "export {csv|json}",
	Short:     "Export the whole collection",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = transfer.DefaultExportPath(cfg.ExportDir, args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch args[0] {
		case "csv":
			path, err = transfer.ExportCSV(store, out)
		case "json":
			path, err = transfer.ExportJSON(store, out)
		default:
			return fmt.Errorf("unknown format %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import {csv|json} <file>",
	Short: "Import books from an export file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var n int
		switch args[0] {
		case "csv":
			n, err = transfer.ImportCSV(store, args[1])
		case "json":
			n, err = transfer.ImportJSON(store, args[1])
		default:
			return fmt.Errorf("unknown format %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d books\n", n)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "", "destination file (default embeds a timestamp under the export dir)")
}
