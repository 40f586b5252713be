package datamodel

import (
	"log/slog"
	"path"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/aquachem/electrodb/internal/capability"
	"github.com/aquachem/electrodb/internal/units"
)

// A subst describes how to rewrite the value(s) found at one field: either
// a literal token-to-value table, or conversion of unit-expression strings.
type subst struct {
	unitExpr bool
	table    map[string]any
}

// substUnits marks a field whose string values are unit expressions.
var substUnits = subst{unitExpr: true}

func literal(table map[string]any) subst { return subst{table: table} }

// pathSubst binds a substitution to a dotted field path. The non-terminal
// segments are compiled to a JSONPath expression once; the terminal segment
// may contain a shell-style '*' wildcard matched against sibling keys.
type pathSubst struct {
	path   string
	parent jp.Expr
	key    string
	rule   subst
}

// substTable is the full, immutable substitution specification of one
// generator type. Entries are ordered so warnings come out deterministically.
type substTable []pathSubst

func newSubstTable(pairs ...pathSubst) substTable { return substTable(pairs) }

func on(dotted string, rule subst) pathSubst {
	segs := strings.Split(dotted, ".")
	ps := pathSubst{path: dotted, key: segs[len(segs)-1], rule: rule}
	if len(segs) > 1 {
		ps.parent = jp.MustParseString(strings.Join(segs[:len(segs)-1], "."))
	}
	return ps
}

// apply walks every entry of the table against data, substituting in place.
// A path whose intermediate segments are absent is skipped silently; a field
// whose value is not fully substituted is logged as a warning and left as
// found. Unit-expression failures are the only fatal condition.
func (st substTable) apply(data map[string]any) error {
	for _, ps := range st {
		section := data
		if ps.parent != nil {
			node, ok := ps.parent.First(data).(map[string]any)
			if !ok {
				continue
			}
			section = node
		}
		if strings.Contains(ps.key, "*") {
			for _, k := range sortedKeys(section) {
				if matched, _ := path.Match(ps.key, k); !matched {
					continue
				}
				if !stringish(section[k]) {
					continue
				}
				done, err := substituteValue(section, ps.rule, k)
				if err != nil {
					return err
				}
				if !done {
					slog.Warn("could not find substitution",
						"section", ps.path, "match", k, "value", section[k])
				}
			}
		} else if _, present := section[ps.key]; present {
			done, err := substituteValue(section, ps.rule, ps.key)
			if err != nil {
				return err
			}
			if !done {
				slog.Warn("could not find substitution",
					"section", ps.path, "value", section[ps.key])
			}
		}
	}
	return nil
}

// substituteValue rewrites the value(s) at d[key] according to rule. A
// scalar is treated as a length-1 list and unwrapped again afterwards.
// Returns whether every element was substituted. Already-converted unit
// values pass through untouched, so unit substitution is idempotent.
func substituteValue(d map[string]any, rule subst, key string) (bool, error) {
	var values []any
	isList := false
	switch v := d[key].(type) {
	case []any:
		values = v
		isList = true
	case string, int, int64, float64:
		values = []any{v}
	default:
		// already-substituted objects and other non-stringish values
		return false, nil
	}

	numSubst := 0
	out := make([]any, 0, len(values))
	for _, v := range values {
		var replacement any
		if rule.unitExpr {
			if s, ok := v.(string); ok {
				u, err := units.Parse(s)
				if err != nil {
					return false, err
				}
				replacement = u
			}
		} else if s, ok := v.(string); ok {
			if mapped, ok := rule.table[s]; ok {
				replacement = mapped
			}
		}
		if replacement == nil {
			out = append(out, v)
		} else {
			out = append(out, replacement)
			numSubst++
		}
	}

	if isList {
		d[key] = out
	} else {
		d[key] = out[0]
	}
	return numSubst == len(out), nil
}

// tokens builds a literal substitution table for the named storage tokens,
// skipping any the binding does not define.
func tokens(bind capability.Bindings, names ...string) map[string]any {
	m := make(map[string]any, len(names))
	for _, n := range names {
		if c, ok := bind.Lookup(n); ok {
			m[n] = c
		}
	}
	return m
}

// stringish reports whether x is a string or a list of strings, the only
// shapes wildcard matches will try to substitute.
func stringish(x any) bool {
	switch v := x.(type) {
	case string:
		return true
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	}
	return false
}
