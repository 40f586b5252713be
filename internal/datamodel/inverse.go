package datamodel

import (
	"fmt"
	"strings"

	"github.com/aquachem/electrodb/internal/capability"
)

// ComponentsFromConfig is the inverse of Component.Config: it reconstructs
// one storable component record per entry of the configuration's
// "components" section and wraps each in a new Component. Substituted
// capability values are mapped back to their storage tokens through the
// inverse of the binding table.
func ComponentsFromConfig(config map[string]any, bind capability.Bindings) ([]*Component, error) {
	const caller = "Component.FromConfig"
	inv := bind.Inverse()

	section, ok := config["components"].(map[string]any)
	if !ok {
		return nil, &BadConfigError{Caller: caller, Config: config, Missing: "components"}
	}
	result := make([]*Component, 0, len(section))
	for _, name := range sortedKeys(section) {
		entry, ok := section[name].(map[string]any)
		if !ok {
			return nil, &BadConfigError{Caller: caller, Config: config,
				Why: fmt.Sprintf("component %q is not a mapping", name)}
		}
		d := map[string]any{"name": name}

		marker, present := entry["type"]
		if !present {
			return nil, &BadConfigError{Caller: caller, Config: entry, Missing: "type"}
		}
		if marker != capability.ComponentType {
			return nil, &BadConfigError{Caller: caller, Config: entry,
				Why: fmt.Sprintf("bad value for 'type': expected=%v, got=%v", capability.ComponentType, marker)}
		}

		if err := methodToStr("valid_phase_types", entry, d, inv, false, "", caller); err != nil {
			return nil, err
		}
		for _, fld := range sortedKeys(entry) {
			if strings.HasSuffix(fld, "_comp") {
				if err := methodToStr(fld, entry, d, inv, false, "", caller); err != nil {
					return nil, err
				}
			}
		}
		if pef, ok := entry["phase_equilibrium_form"].(map[string]any); ok {
			out := make(map[string]any, len(pef))
			for _, phase := range sortedKeys(pef) {
				c, isCap := pef[phase].(capability.Capability)
				token, known := inv[c]
				if !isCap || !known {
					return nil, &BadConfigError{Caller: caller, Config: entry,
						Why: fmt.Sprintf("unknown value for phase_equilibrium_form.%s", phase)}
				}
				out[phase] = token
			}
			d["phase_equilibrium_form"] = out
		}
		if err := convertParameterData(entry, d, caller); err != nil {
			return nil, err
		}

		c, err := NewComponent(d)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// ReactionsFromConfig is the inverse of Reaction.Config: it reconstructs
// one storable reaction record per entry of the configuration's
// "equilibrium_reactions" section. Reconstructed records are tagged with
// type "equilibrium", and the flattened stoichiometry table is nested back
// into the per-phase form.
func ReactionsFromConfig(config map[string]any, bind capability.Bindings) ([]*Reaction, error) {
	const caller = "Reaction.FromConfig"
	inv := bind.Inverse()

	section, ok := config["equilibrium_reactions"].(map[string]any)
	if !ok {
		return nil, &BadConfigError{Caller: caller, Config: config, Missing: "equilibrium_reactions"}
	}
	result := make([]*Reaction, 0, len(section))
	for _, name := range sortedKeys(section) {
		entry, ok := section[name].(map[string]any)
		if !ok {
			return nil, &BadConfigError{Caller: caller, Config: config,
				Why: fmt.Sprintf("reaction %q is not a mapping", name)}
		}
		d := map[string]any{"name": name, "type": "equilibrium"}

		for _, fld := range sortedKeys(entry) {
			switch v := entry[fld].(type) {
			case string:
				d[fld] = v
			case map[string]any, map[PhaseSpecies]float64, map[any]Coeff:
				// mapping-valued fields (parameter_data, stoichiometry)
				// are handled below
			default:
				if err := methodToStr(fld, entry, d, inv, false, "", caller); err != nil {
					return nil, err
				}
			}
		}
		if err := convertParameterData(entry, d, caller); err != nil {
			return nil, err
		}
		if st, ok := entry["stoichiometry"].(map[PhaseSpecies]float64); ok {
			d["stoichiometry"] = nestPhaseSpecies(st)
		}

		r, err := NewReaction(d)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// methodToStr maps the capability at src[fld] back to its storage token and
// writes it to tgt[fld]. A value with no inverse mapping falls back to
// defaultTok when given and is fatal otherwise; an absent field is fatal
// only when required.
func methodToStr(fld string, src, tgt map[string]any, inv map[capability.Capability]string,
	required bool, defaultTok string, caller string) error {
	value, present := src[fld]
	if !present {
		if required {
			return &BadConfigError{Caller: caller, Config: src, Missing: fld}
		}
		return nil
	}
	if c, ok := value.(capability.Capability); ok {
		if token, known := inv[c]; known {
			tgt[fld] = token
			return nil
		}
	}
	if defaultTok != "" {
		tgt[fld] = defaultTok
		return nil
	}
	return &BadConfigError{Caller: caller, Config: src,
		Why: fmt.Sprintf("unknown value for %q", fld)}
}
