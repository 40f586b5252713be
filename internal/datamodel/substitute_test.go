package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquachem/electrodb/internal/capability"
	"github.com/aquachem/electrodb/internal/units"
)

func TestSubstitute_Scalar(t *testing.T) {
	data := map[string]any{"valid_phase_types": "PT.liquidPhase"}
	table := newSubstTable(
		on("valid_phase_types", literal(tokens(capability.Default(), "PT.liquidPhase"))),
	)

	require.NoError(t, table.apply(data))
	assert.Equal(t, capability.LiquidPhaseType, data["valid_phase_types"])
}

func TestSubstitute_ListValues(t *testing.T) {
	data := map[string]any{
		"valid_phase_types": []any{"PT.liquidPhase", "PT.vaporPhase"},
	}
	table := newSubstTable(
		on("valid_phase_types", literal(tokens(capability.Default(),
			"PT.liquidPhase", "PT.vaporPhase"))),
	)

	require.NoError(t, table.apply(data))
	assert.Equal(t,
		[]any{capability.LiquidPhaseType, capability.VaporPhaseType},
		data["valid_phase_types"])
}

func TestSubstitute_WildcardCoverage(t *testing.T) {
	data := map[string]any{
		"dens_mol_liq_comp": "Perrys",
		"enth_mol_liq_comp": "NIST",
		"visc_d_phase":      "Perrys", // does not match *_comp
	}
	table := newSubstTable(
		on("*_comp", literal(tokens(capability.Default(), "Perrys", "NIST"))),
	)

	require.NoError(t, table.apply(data))
	assert.Equal(t, capability.Perrys, data["dens_mol_liq_comp"])
	assert.Equal(t, capability.NIST, data["enth_mol_liq_comp"])
	assert.Equal(t, "Perrys", data["visc_d_phase"])
}

func TestSubstitute_UnitsIdempotent(t *testing.T) {
	table := newSubstTable(on("base_units.*", substUnits))
	data := map[string]any{
		"base_units": map[string]any{"time": "s", "amount": "mol"},
	}

	require.NoError(t, table.apply(data))
	first := deepCopy(data)
	require.NoError(t, table.apply(data))
	assert.Equal(t, first, data)

	bu := data["base_units"].(map[string]any)
	u, ok := bu["time"].(units.Unit)
	require.True(t, ok)
	assert.Equal(t, "s", u.String())
}

func TestSubstitute_UnknownTokenLeftInPlace(t *testing.T) {
	data := map[string]any{"valid_phase_types": "PT.plasmaPhase"}
	table := newSubstTable(
		on("valid_phase_types", literal(tokens(capability.Default(), "PT.liquidPhase"))),
	)

	// partial substitution is a warning, not an error
	require.NoError(t, table.apply(data))
	assert.Equal(t, "PT.plasmaPhase", data["valid_phase_types"])
}

func TestSubstitute_MissingIntermediatePathIsSilent(t *testing.T) {
	data := map[string]any{"name": "x"}
	table := newSubstTable(
		on("phases.Liq.type", literal(tokens(capability.Default(), "LiquidPhase"))),
	)

	require.NoError(t, table.apply(data))
	assert.Equal(t, map[string]any{"name": "x"}, data)
}

func TestSubstitute_DottedPath(t *testing.T) {
	data := map[string]any{
		"phases": map[string]any{
			"Liq": map[string]any{"type": "LiquidPhase"},
		},
	}
	table := newSubstTable(
		on("phases.Liq.type", literal(tokens(capability.Default(), "LiquidPhase"))),
	)

	require.NoError(t, table.apply(data))
	liq := data["phases"].(map[string]any)["Liq"].(map[string]any)
	assert.Equal(t, capability.LiquidPhase, liq["type"])
}

func TestSubstitute_BadUnitExpressionIsFatal(t *testing.T) {
	table := newSubstTable(on("base_units.*", substUnits))
	data := map[string]any{
		"base_units": map[string]any{"time": "blorps"},
	}

	err := table.apply(data)
	require.Error(t, err)
	var pe *units.ParseError
	assert.ErrorAs(t, err, &pe)
}
