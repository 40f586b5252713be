package datamodel

import (
	"github.com/aquachem/electrodb/internal/capability"
)

// NewThermoConfig builds the component (thermodynamic property) generator
// for the given capability bindings.
func NewThermoConfig(bind capability.Bindings) *ConfigGenerator {
	return &ConfigGenerator{
		name: "ThermoConfig",
		subst: newSubstTable(
			on("valid_phase_types", literal(tokens(bind,
				"PT.liquidPhase", "PT.solidPhase", "PT.vaporPhase", "PT.aqueousPhase"))),
			on("*_comp", literal(tokens(bind, "Perrys", "NIST"))),
			on("phase_equilibrium_form.*", literal(tokens(bind, "fugacity"))),
		),
		transform: thermoTransform,
	}
}

var thermoConfig = NewThermoConfig(capability.Default())

func thermoTransform(g *ConfigGenerator, data map[string]any, name string) error {
	if err := transformParameterData(g.name, data, name); err != nil {
		return err
	}
	if err := g.subst.apply(data); err != nil {
		return g.configErr(name, err, "value substitution failed")
	}
	delete(data, "elements")
	data["type"] = capability.ComponentType
	return g.wrapSection("components", data)
}

// Component wraps one stored chemical species record.
type Component struct {
	DataWrapper
}

// NewComponent wraps a component record. The record must carry a "name"
// field identifying it within the components section.
func NewComponent(data map[string]any) (*Component, error) {
	if _, ok := data["name"]; !ok {
		return nil, ErrNameRequired
	}
	return &Component{DataWrapper: newDataWrapper(data, thermoConfig)}, nil
}

// MergeKeys lists the fragment sections a Component contributes to a Base.
func (c *Component) MergeKeys() []string { return []string{"components"} }
