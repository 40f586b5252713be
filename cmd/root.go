package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aquachem/electrodb/internal/storage"
	"github.com/spf13/cobra"
)

var dbPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the electrolyte database file")
}

var rootCmd = &cobra.Command{
	Use:           "edb",
	Short:         "Electrolyte database tools",
	Long:          "edb manages a local electrolyte database of component, reaction, and base records\nand generates property-package configurations from them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func databasePath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".aquachem", "edb.db"), nil
}

func openStore() (*storage.Store, error) {
	path, err := databasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return storage.Open(path)
}
