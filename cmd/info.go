package cmd

import (
	"fmt"

	"github.com/aquachem/electrodb/api"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show record counts for each collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := databasePath()
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", path)
		for _, coll := range api.Collections() {
			n, err := store.Count(coll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %d\n", coll, n)
		}
		return nil
	},
}
