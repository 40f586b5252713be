package cmd

import (
	"fmt"

	"github.com/aquachem/electrodb/api"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var dumpType string

func init() {
	dumpCmd.Flags().StringVarP(&dumpType, "type", "t", "", "Record type: component, reaction, or base")
	_ = dumpCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump [name...]",
	Short: "Print records from the database as JSON",
	Long:  "dump prints stored records as a JSON array. With no arguments it prints every\nrecord of the given type; otherwise only the named records.",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		coll, err := collectionForType(dumpType)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		names := args
		if len(names) == 0 {
			names, err = store.Names(coll)
			if err != nil {
				return err
			}
		}

		records := make([]any, 0, len(names))
		for _, name := range names {
			rec, err := store.Get(coll, name)
			if err != nil {
				return err
			}
			delete(rec, api.FieldID)
			records = append(records, rec)
		}

		fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(records, 2))
		return nil
	},
}
