package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeRecords(t *testing.T, records string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(records), 0o644))
	return path
}

func TestLoadDumpRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `[
		{"name": "H2O", "type": "solvent", "mw": 18.02},
		{"name": "NaCl", "type": "component", "mw": 58.44}
	]`)

	out, err := runCommand(t, "load", input, "--type", "component", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 record(s) into components")

	out, err = runCommand(t, "dump", "--type", "component", "--db", db)
	require.NoError(t, err)

	parsed, err := oj.ParseString(out)
	require.NoError(t, err)
	records, ok := parsed.([]any)
	require.True(t, ok)
	require.Len(t, records, 2)

	first, ok := records[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "H2O", first["name"])
	assert.NotContains(t, first, "_id")
}

func TestLoadSingleObject(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `{"name": "bicarbonate", "phases": {}}`)

	out, err := runCommand(t, "load", input, "--type", "base", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 1 record(s) into bases")
}

func TestLoadRejectsUnknownType(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `{"name": "X"}`)

	_, err := runCommand(t, "load", input, "--type", "mineral", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record type")
}

func TestLoadRejectsNonObjectRecord(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `["not-an-object"]`)

	_, err := runCommand(t, "load", input, "--type", "component", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
}

func TestDumpNamedRecords(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `[
		{"name": "A", "mw": 1.0},
		{"name": "B", "mw": 2.0},
		{"name": "C", "mw": 3.0}
	]`)

	_, err := runCommand(t, "load", input, "--type", "reaction", "--db", db)
	require.NoError(t, err)

	out, err := runCommand(t, "dump", "--type", "reaction", "--db", db, "B")
	require.NoError(t, err)

	parsed, err := oj.ParseString(out)
	require.NoError(t, err)
	records, ok := parsed.([]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0].(map[string]any)["name"])
}

func TestInfoCounts(t *testing.T) {
	db := filepath.Join(t.TempDir(), "edb.db")
	input := writeRecords(t, `[{"name": "A"}, {"name": "B"}]`)

	_, err := runCommand(t, "load", input, "--type", "component", "--db", db)
	require.NoError(t, err)

	out, err := runCommand(t, "info", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, db)
	assert.Contains(t, out, "components")
	assert.Contains(t, out, "reactions")
	assert.Contains(t, out, "bases")
}
