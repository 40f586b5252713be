package datamodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquachem/electrodb/internal/units"
)

func mustUnit(t *testing.T, expr string) units.Unit {
	t.Helper()
	u, err := units.Parse(expr)
	require.NoError(t, err)
	return u
}

// Shared fixture records in the storage format: the carbonate second
// dissociation reaction, a calcium hydroxide component, and a liquid-phase
// base configuration.

func carbonateReaction() map[string]any {
	return map[string]any{
		"_id":  "rxn-h2co3-ka2",
		"name": "H2CO3_Ka2",
		"type": "equilibrium",
		"stoichiometry": map[string]any{
			"Liq": map[string]any{"HCO3 -": -1.0, "H +": 1.0, "CO3 2-": 1.0},
		},
		"heat_of_reaction":     "constant_dh_rxn",
		"equilibrium_constant": "van_t_hoff_aqueous",
		"equilibrium_form":     "log_power_law",
		"concentration_form":   "ConcentrationForm.molarity",
		"parameter_data": map[string]any{
			"dh_rxn_ref": []any{map[string]any{"v": 14.9, "u": "kJ/mol"}},
			"ds_rxn_ref": []any{map[string]any{"v": -148.1, "u": "J/mol/K"}},
			"reaction_order": map[string]any{
				"Liq": map[string]any{"HCO3 -": -1.0, "H +": 1.0, "CO3 2-": 1.0},
			},
		},
	}
}

func calciumHydroxide() map[string]any {
	return map[string]any{
		"_id":               "comp-ca-oh-2",
		"name":              "Ca[OH]2",
		"elements":          []any{"Ca", "O", "H"},
		"valid_phase_types": "PT.liquidPhase",
		"dens_mol_liq_comp": "Perrys",
		"enth_mol_liq_comp": "Perrys",
		"cp_mol_liq_comp":   "Perrys",
		"entr_mol_liq_comp": "Perrys",
		"parameter_data": map[string]any{
			"mw": []any{map[string]any{"v": 74.09, "u": "g/mol"}},
			"dens_mol_liq_comp_coeff": []any{
				map[string]any{"i": 1, "v": 13.5, "u": "kmol*m**-3"},
				map[string]any{"i": 2, "v": 1.0, "u": "dimensionless"},
				map[string]any{"i": 3, "v": 1.0, "u": "K"},
				map[string]any{"i": 4, "v": 1.0, "u": "dimensionless"},
			},
			"cp_mol_liq_comp_coeff": []any{
				map[string]any{"i": 1, "v": 276370.0, "u": "J/kmol/K"},
				map[string]any{"i": 2, "v": -2090.1, "u": "J/kmol/K**2"},
				map[string]any{"i": 3, "v": 8.125, "u": "J/kmol/K**3"},
				map[string]any{"i": 4, "v": -0.014116, "u": "J/kmol/K**4"},
				map[string]any{"i": 5, "v": 9.3701e-06, "u": "J/kmol/K**5"},
			},
			"enth_mol_form_liq_comp_ref": []any{map[string]any{"v": -1003.0, "u": "kJ/mol"}},
			"entr_mol_form_liq_comp_ref": []any{map[string]any{"v": -74.5, "u": "J/K/mol"}},
		},
	}
}

func liquidBase() map[string]any {
	return map[string]any{
		"_id":              "base-thermo-liq",
		"name":             "thermo",
		"state_definition": "FTPx",
		"phases": map[string]any{
			"Liq": map[string]any{
				"type":              "LiquidPhase",
				"equation_of_state": "Ideal",
			},
		},
		"base_units": map[string]any{
			"time":        "s",
			"length":      "m",
			"mass":        "kg",
			"amount":      "mol",
			"temperature": "K",
		},
	}
}
