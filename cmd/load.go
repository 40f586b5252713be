package cmd

import (
	"fmt"
	"os"

	"github.com/aquachem/electrodb/api"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var loadType string

func init() {
	loadCmd.Flags().StringVarP(&loadType, "type", "t", "", "Record type: component, reaction, or base")
	_ = loadCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [file.json]",
	Short: "Load records from a JSON file into the database",
	Long:  "load reads a JSON file containing either a single record object or an array of\nrecord objects and stores them in the database under the given type.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coll, err := collectionForType(loadType)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		parsed, err := oj.Parse(content)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		var records []any
		switch v := parsed.(type) {
		case []any:
			records = v
		case map[string]any:
			records = []any{v}
		default:
			return fmt.Errorf("%s: expected a JSON object or array of objects", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		n := 0
		for i, rec := range records {
			m, ok := rec.(map[string]any)
			if !ok {
				return fmt.Errorf("%s: record %d is not a JSON object", args[0], i)
			}
			if err := store.Put(coll, m); err != nil {
				return fmt.Errorf("store record %d: %w", i, err)
			}
			n++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d record(s) into %s\n", n, coll)
		return nil
	},
}

func collectionForType(t string) (api.Collection, error) {
	switch t {
	case "component":
		return api.Components, nil
	case "reaction":
		return api.Reactions, nil
	case "base":
		return api.Bases, nil
	default:
		return "", fmt.Errorf("unknown record type %q (want component, reaction, or base)", t)
	}
}
