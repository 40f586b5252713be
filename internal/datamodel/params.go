package datamodel

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/aquachem/electrodb/internal/units"
)

// PhaseSpecies keys flattened per-phase, per-species tables (stoichiometry
// and reaction order) in a generated configuration.
type PhaseSpecies struct {
	Phase   string
	Species string
}

// Coeff is one normalized physical parameter value with its units.
type Coeff struct {
	Value any
	Units units.Unit
}

// transformParameterData normalizes the "parameter_data" field of a record
// in place:
//
//   - "reaction_order" (phase -> species -> number) flattens into a
//     PhaseSpecies-keyed map;
//   - a list of more than one {i, v, u} entry becomes a map keyed by the
//     entry indexes (default 0) to Coeff values;
//   - a single-entry list unwraps to a bare Coeff.
//
// Records with no parameters are allowed; that case only logs a warning.
func transformParameterData(gen string, data map[string]any, name string) error {
	params, _ := data["parameter_data"].(map[string]any)
	if len(params) == 0 {
		slog.Warn("no parameter data found", "name", name)
		return nil
	}
	for key, val := range params {
		if key == "reaction_order" {
			table, err := flattenPhaseSpecies(val)
			if err != nil {
				return &ConfigError{Generator: gen, Record: name, Why: "bad reaction_order", Err: err}
			}
			params[key] = table
			continue
		}
		entries, ok := val.([]any)
		if !ok || len(entries) == 0 {
			return &ConfigError{Generator: gen, Record: name,
				Why: fmt.Sprintf("cannot extract parameter %q: expected list of {v, u, i} entries, got %v", key, val)}
		}
		if len(entries) > 1 {
			table := make(map[any]Coeff, len(entries))
			for _, item := range entries {
				index, c, err := coeffEntry(item)
				if err != nil {
					return &ConfigError{Generator: gen, Record: name,
						Why: fmt.Sprintf("cannot extract parameter %q, item %v", key, item), Err: err}
				}
				table[index] = c
			}
			params[key] = table
		} else {
			_, c, err := coeffEntry(entries[0])
			if err != nil {
				return &ConfigError{Generator: gen, Record: name,
					Why: fmt.Sprintf("cannot extract parameter %q, item %v", key, entries[0]), Err: err}
			}
			params[key] = c
		}
	}
	return nil
}

// coeffEntry pulls the index, value and units out of one {i, v, u} mapping.
func coeffEntry(item any) (index any, c Coeff, err error) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, Coeff{}, fmt.Errorf("entry is not a mapping")
	}
	index = 0
	if i, present := m["i"]; present {
		index = normIndex(i)
	}
	v, present := m["v"]
	if !present {
		return nil, Coeff{}, fmt.Errorf("entry has no value ('v')")
	}
	uexpr, present := m["u"]
	if !present {
		return nil, Coeff{}, fmt.Errorf("entry has no units ('u')")
	}
	s, ok := uexpr.(string)
	if !ok {
		return nil, Coeff{}, fmt.Errorf("units ('u') must be a string, got %v", uexpr)
	}
	u, err := units.Parse(s)
	if err != nil {
		return nil, Coeff{}, err
	}
	return index, Coeff{Value: v, Units: u}, nil
}

// normIndex keeps parameter indexes comparable across JSON parses: integral
// numbers become int, everything else is kept as-is.
func normIndex(i any) any {
	switch v := i.(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	case int64:
		return int(v)
	}
	return i
}

// flattenPhaseSpecies turns a phase -> (species -> number) mapping into a
// single PhaseSpecies-keyed map.
func flattenPhaseSpecies(val any) (map[PhaseSpecies]float64, error) {
	byPhase, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected mapping of phase to species table, got %v", val)
	}
	table := make(map[PhaseSpecies]float64)
	for phase, speciesVal := range byPhase {
		species, ok := speciesVal.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("phase %q: expected mapping of species to number, got %v", phase, speciesVal)
		}
		for name, num := range species {
			f, ok := toFloat(num)
			if !ok {
				return nil, fmt.Errorf("phase %q, species %q: expected number, got %v", phase, name, num)
			}
			table[PhaseSpecies{Phase: phase, Species: name}] = f
		}
	}
	return table, nil
}

// nestPhaseSpecies is the inverse of flattenPhaseSpecies.
func nestPhaseSpecies(table map[PhaseSpecies]float64) map[string]any {
	nested := make(map[string]any)
	for key, num := range table {
		phase, ok := nested[key.Phase].(map[string]any)
		if !ok {
			phase = make(map[string]any)
			nested[key.Phase] = phase
		}
		phase[key.Species] = num
	}
	return nested
}

func toFloat(x any) (float64, bool) {
	switch v := x.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// convertParameterData is the storage-bound inverse of
// transformParameterData: src holds a generated configuration entry, tgt
// receives the reconstructed "parameter_data" record field.
func convertParameterData(src, tgt map[string]any, caller string) error {
	raw, present := src["parameter_data"]
	if !present {
		return &BadConfigError{Caller: caller, Config: src, Missing: "parameter_data"}
	}
	pd, ok := raw.(map[string]any)
	if !ok {
		return &BadConfigError{Caller: caller, Config: src,
			Why: fmt.Sprintf("'parameter_data' is not a mapping: %v", raw)}
	}
	data := make(map[string]any, len(pd))
	for param, value := range pd {
		switch v := value.(type) {
		case Coeff:
			data[param] = []any{map[string]any{"v": v.Value, "u": v.Units.String()}}
		case map[PhaseSpecies]float64:
			// reaction order is derivable from stoichiometry and is not
			// stored back
			if param != "reaction_order" {
				return &BadConfigError{Caller: caller, Config: src,
					Why: fmt.Sprintf("unexpected phase/species table for parameter %q", param)}
			}
		case map[any]Coeff:
			if len(v) == 0 {
				return &BadConfigError{Caller: caller, Config: src,
					Why: fmt.Sprintf("empty value table for parameter %q", param)}
			}
			list, err := coeffTableToList(v)
			if err != nil {
				return &BadConfigError{Caller: caller, Config: src,
					Why: fmt.Sprintf("parameter %q: %v", param, err)}
			}
			data[param] = list
		default:
			return &BadConfigError{Caller: caller, Config: src,
				Why: fmt.Sprintf("unexpected value type for 'parameter_data': key=%q value=%v", param, value)}
		}
	}
	tgt["parameter_data"] = data
	return nil
}

// coeffTableToList converts an indexed coefficient table back into the
// stored list-of-{i, v, u} form, ordered by index for stable output.
func coeffTableToList(table map[any]Coeff) ([]any, error) {
	keys := make([]any, 0, len(table))
	for k := range table {
		switch k.(type) {
		case int, string:
			keys = append(keys, k)
		default:
			return nil, fmt.Errorf("unexpected key type: key=%v", k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return indexLess(keys[i], keys[j]) })
	list := make([]any, 0, len(keys))
	for _, k := range keys {
		c := table[k]
		list = append(list, map[string]any{"i": intIndex(k), "v": c.Value, "u": c.Units.String()})
	}
	return list, nil
}

// intIndex converts string indexes that look like integers back to int.
func intIndex(k any) any {
	if s, ok := k.(string); ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return k
}

func indexLess(a, b any) bool {
	ai, aInt := intVal(a)
	bi, bInt := intVal(b)
	switch {
	case aInt && bInt:
		return ai < bi
	case aInt:
		return true
	case bInt:
		return false
	default:
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
}

func intVal(x any) (int, bool) {
	switch v := x.(type) {
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
