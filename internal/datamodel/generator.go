// Package datamodel converts stored electrolyte-database records (JSON
// mappings for chemical components, equilibrium reactions, and base
// configurations) into the nested configuration maps consumed by the
// downstream modeling framework, and back.
//
// Typical use:
//
//	base, _ := datamodel.NewBase(baseRecord)
//	for _, rec := range componentRecords {
//		c, _ := datamodel.NewComponent(rec)
//		base.Add(c)
//	}
//	cfg, err := base.Config() // merged configuration for the framework
package datamodel

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// idKey marks the storage identity field; it is never propagated into a
// generated configuration.
const idKey = "_id"

// transformFunc mutates a deep copy of a record into a configuration
// fragment.
type transformFunc func(g *ConfigGenerator, data map[string]any, name string) error

// ConfigGenerator turns one stored record into one configuration fragment.
// A generator's substitution table is built once from a capability binding
// and never mutated; Generate is the only operation.
type ConfigGenerator struct {
	name      string
	subst     substTable
	transform transformFunc
}

// Name identifies the generator in errors and logs.
func (g *ConfigGenerator) Name() string { return g.name }

// Generate deep-copies record, applies the generator's transform to the
// copy, and returns it. The caller's record is never mutated.
func (g *ConfigGenerator) Generate(record map[string]any, name string) (map[string]any, error) {
	data := deepCopy(record)
	slog.Debug("transform to framework config: start", "generator", g.name, "name", name)
	if err := g.transform(g, data, name); err != nil {
		return nil, err
	}
	slog.Debug("transform to framework config: done", "generator", g.name, "name", name)
	return data, nil
}

// configErr tags an error with the generator and record context, unless it
// already carries it.
func (g *ConfigGenerator) configErr(name string, err error, why string) error {
	switch err.(type) {
	case *ConfigError, *BadConfigError:
		return err
	}
	return &ConfigError{Generator: g.name, Record: name, Why: why, Err: err}
}

// topLevelFields are record fields that never move into a wrapped section
// entry.
var topLevelFields = map[string]bool{
	"name":              true,
	"base_units":        true,
	"reaction_type":     true,
	"components":        true,
	"reactant_elements": true,
	idKey:               true,
}

// wrapSection relocates all record fields under data[section][name], where
// name is taken from data["name"], then strips everything but "base_units"
// and the section itself from the top level. Wrapping the same name twice
// is a programming or data error upstream and fails hard.
func (g *ConfigGenerator) wrapSection(section string, data map[string]any) error {
	name, ok := data["name"].(string)
	if !ok {
		return &ConfigError{Generator: g.name, Record: "?", Why: "record has no 'name'"}
	}
	sec, ok := data[section].(map[string]any)
	if !ok {
		sec = make(map[string]any)
		data[section] = sec
	}
	if _, exists := sec[name]; exists {
		return &ConfigError{Generator: g.name, Record: name,
			Why: fmt.Sprintf("section %q already contains an entry named %q", section, name)}
	}
	entry := make(map[string]any)
	sec[name] = entry
	for key, value := range data {
		if key == section {
			continue
		}
		if !topLevelFields[key] {
			entry[key] = value
		}
		if key != "base_units" {
			delete(data, key)
		}
	}
	removeSpecial(data)
	return nil
}

// removeSpecial deletes 'name' and identity-marker fields (leading
// underscore) from the top level of data.
func removeSpecial(data map[string]any) {
	for key := range data {
		if key == "name" || strings.HasPrefix(key, "_") {
			delete(data, key)
		}
	}
}

// deepCopy copies a JSON-shaped value: nested maps and lists are cloned,
// scalars are shared.
func deepCopy(v any) map[string]any {
	return deepCopyValue(v).(map[string]any)
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
