// Package storage persists electrolyte-database records in SQLite. Records
// are stored as JSON text keyed by collection and name, matching the
// storable view (DataWrapper.JSONData) of the data model.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"

	"github.com/aquachem/electrodb/api"
	"github.com/aquachem/electrodb/internal/datamodel"
)

// ErrNotFound is returned when a record is absent from its collection.
var ErrNotFound = errors.New("record not found")

// Store is a SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		collection TEXT NOT NULL,
		name TEXT NOT NULL,
		record TEXT NOT NULL,
		PRIMARY KEY (collection, name)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts or replaces one record in the given collection. The record
// must carry a string "name" field.
func (s *Store) Put(coll api.Collection, record map[string]any) error {
	if !coll.Valid() {
		return fmt.Errorf("unknown collection %q", coll)
	}
	name, ok := record[api.FieldName].(string)
	if !ok || name == "" {
		return fmt.Errorf("record has no %q field", api.FieldName)
	}
	_, err := s.db.Exec(
		`INSERT INTO records (collection, name, record) VALUES (?, ?, ?)
		 ON CONFLICT (collection, name) DO UPDATE SET record = excluded.record`,
		string(coll), name, oj.JSON(record))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", coll, name, err)
	}
	return nil
}

// Get retrieves one record by name.
func (s *Store) Get(coll api.Collection, name string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT record FROM records WHERE collection = ? AND name = ?`,
		string(coll), name).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s/%s: %w", coll, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", coll, name, err)
	}
	return parseRecord(raw)
}

// Count returns the number of records in a collection.
func (s *Store) Count(coll api.Collection) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM records WHERE collection = ?`, string(coll)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll, err)
	}
	return n, nil
}

// Names lists the record names of a collection in sorted order.
func (s *Store) Names(coll api.Collection) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM records WHERE collection = ? ORDER BY name`, string(coll))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Components returns a lazy iterator over all component records, wrapped
// for config generation.
func (s *Store) Components() (*datamodel.Result, error) {
	src, err := s.source(api.Components)
	if err != nil {
		return nil, err
	}
	return datamodel.NewResult(src, datamodel.ComponentKind)
}

// Reactions returns a lazy iterator over all reaction records.
func (s *Store) Reactions() (*datamodel.Result, error) {
	src, err := s.source(api.Reactions)
	if err != nil {
		return nil, err
	}
	return datamodel.NewResult(src, datamodel.ReactionKind)
}

// GetBase retrieves one base configuration record and wraps it as the merge
// target for components and reactions.
func (s *Store) GetBase(name string) (*datamodel.Base, error) {
	record, err := s.Get(api.Bases, name)
	if err != nil {
		return nil, err
	}
	return datamodel.NewBase(record), nil
}

// source streams one collection's records. The returned source is
// single-pass; it holds the query cursor open until exhausted.
func (s *Store) source(coll api.Collection) (datamodel.RecordSource, error) {
	rows, err := s.db.Query(
		`SELECT record FROM records WHERE collection = ? ORDER BY name`, string(coll))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", coll, err)
	}
	return &rowSource{rows: rows}, nil
}

type rowSource struct {
	rows *sql.Rows
}

func (r *rowSource) Next() (map[string]any, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	var raw string
	if err := r.rows.Scan(&raw); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}
	return parseRecord(raw)
}

func parseRecord(raw string) (map[string]any, error) {
	parsed, err := oj.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse record json: %w", err)
	}
	record, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record is not a JSON object: %s", raw)
	}
	return record, nil
}
