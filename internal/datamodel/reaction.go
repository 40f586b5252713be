package datamodel

import (
	"fmt"

	"github.com/aquachem/electrodb/internal/capability"
)

// NewReactionConfig builds the reaction generator for the given capability
// bindings.
func NewReactionConfig(bind capability.Bindings) *ConfigGenerator {
	return &ConfigGenerator{
		name: "ReactionConfig",
		subst: newSubstTable(
			on("heat_of_reaction", literal(tokens(bind, "constant_dh_rxn"))),
			on("*_form", literal(tokens(bind, "log_power_law", "power_law_equil", "ConcentrationForm.molarity"))),
			on("*_constant", literal(tokens(bind, "van_t_hoff", "van_t_hoff_aqueous"))),
		),
		transform: reactionTransform,
	}
}

var reactionConfig = NewReactionConfig(capability.Default())

func reactionTransform(g *ConfigGenerator, data map[string]any, name string) error {
	if err := transformParameterData(g.name, data, name); err != nil {
		return err
	}
	if raw, present := data["stoichiometry"]; present {
		table, err := flattenPhaseSpecies(raw)
		if err != nil {
			return &ConfigError{Generator: g.name, Record: name, Why: "bad stoichiometry", Err: err}
		}
		data["stoichiometry"] = table
	}
	if err := g.subst.apply(data); err != nil {
		return g.configErr(name, err, "value substitution failed")
	}

	rtype, ok := data["type"].(string)
	if !ok {
		return &ConfigError{Generator: g.name, Record: name, Why: "record has no reaction 'type'"}
	}
	delete(data, "type")
	// only equilibrium reactions are supported
	if rtype != "equilibrium" {
		return &ConfigError{Generator: g.name, Record: name,
			Why: fmt.Sprintf("unexpected reaction type %q", rtype)}
	}
	return g.wrapSection("equilibrium_reactions", data)
}

// Reaction wraps one stored reaction record.
type Reaction struct {
	DataWrapper
}

// NewReaction wraps a reaction record. The record must carry a "name" field
// identifying it within its reactions section.
func NewReaction(data map[string]any) (*Reaction, error) {
	if _, ok := data["name"]; !ok {
		return nil, ErrNameRequired
	}
	return &Reaction{DataWrapper: newDataWrapper(data, reactionConfig)}, nil
}

// MergeKeys lists the fragment sections a Reaction contributes to a Base.
func (r *Reaction) MergeKeys() []string {
	return []string{"equilibrium_reactions", "rate_reactions"}
}
