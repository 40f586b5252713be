// Package units converts unit-expression strings (e.g. "kJ/mol/K") into
// unit objects carrying SI dimensions and a scale factor. Expressions are
// parsed with a small dedicated parser over a closed grammar and resolved
// against a Registry; no general-purpose expression evaluation is involved.
package units

import (
	"log/slog"

	"github.com/ctessum/unit"
)

// AmountDim is the dimension for amount of substance (the mole). The
// underlying dimension package reserves the "mol" symbol, so the dimension
// is registered under the long name.
var AmountDim = unit.NewDimension("mole")

// Unit is a parsed unit expression. It keeps the normalized source
// expression so values written back to storage reproduce the stored form,
// plus the resolved quantity (SI dimensions and scale factor) for
// dimensional checks.
type Unit struct {
	expr string
	qty  *unit.Unit
}

// String returns the normalized source expression, e.g. "kJ/mol/K".
func (u Unit) String() string { return u.expr }

// Quantity returns the resolved scale factor and SI dimensions. The result
// is a fresh copy; mutating it does not affect the Unit.
func (u Unit) Quantity() *unit.Unit { return u.qty.Clone() }

// Dimensionless is the unit of pure numbers.
var Dimensionless = Unit{expr: "dimensionless", qty: unit.New(1, unit.Dimless)}

// Registry resolves unit symbols to quantities. Lookup results are treated
// as read-only; implementations may return shared values.
type Registry interface {
	Lookup(symbol string) (*unit.Unit, bool)
}

type mapRegistry map[string]*unit.Unit

func (m mapRegistry) Lookup(symbol string) (*unit.Unit, bool) {
	q, ok := m[symbol]
	return q, ok
}

// defaultRegistry covers the SI vocabulary used by stored records.
var defaultRegistry = mapRegistry{
	"s":   unit.New(1, unit.Second),
	"min": unit.New(60, unit.Second),
	"hr":  unit.New(3600, unit.Second),

	"m":  unit.New(1, unit.Meter),
	"cm": unit.New(0.01, unit.Meter),
	"mm": unit.New(0.001, unit.Meter),
	"km": unit.New(1000, unit.Meter),

	"kg": unit.New(1, unit.Kilogram),
	"g":  unit.New(1e-3, unit.Kilogram),
	"mg": unit.New(1e-6, unit.Kilogram),

	"K": unit.New(1, unit.Kelvin),

	"mol":  unit.New(1, unit.Dimensions{AmountDim: 1}),
	"kmol": unit.New(1000, unit.Dimensions{AmountDim: 1}),

	"J":  unit.New(1, unit.Joule),
	"kJ": unit.New(1000, unit.Joule),

	"Pa":  unit.New(1, unit.Pascal),
	"kPa": unit.New(1000, unit.Pascal),
	"bar": unit.New(1e5, unit.Pascal),

	"W":  unit.New(1, unit.Watt),
	"kW": unit.New(1000, unit.Watt),

	"L": unit.New(1e-3, unit.Meter3),

	"dimensionless": unit.New(1, unit.Dimless),
}

// DefaultRegistry returns the built-in SI registry.
func DefaultRegistry() Registry { return defaultRegistry }

// Parse converts a unit expression using the default registry. An empty
// expression is coerced to dimensionless with a logged warning, matching
// the behavior expected for records that omit units.
func Parse(expr string) (Unit, error) {
	return ParseWith(defaultRegistry, expr)
}

// ParseWith converts a unit expression against the given registry.
func ParseWith(reg Registry, expr string) (Unit, error) {
	if expr == "" {
		slog.Warn("empty unit expression, using dimensionless")
		return Dimensionless, nil
	}
	return parse(reg, expr)
}
