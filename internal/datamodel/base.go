package datamodel

import "github.com/aquachem/electrodb/internal/capability"

// NewBaseConfig builds the base-configuration generator for the given
// capability bindings. A base config is the configuration root, so no
// section wrapping happens here.
func NewBaseConfig(bind capability.Bindings) *ConfigGenerator {
	return &ConfigGenerator{
		name: "BaseConfig",
		subst: newSubstTable(
			on("state_definition", literal(tokens(bind, "FTPx"))),
			on("phases.Liq.type", literal(tokens(bind, "LiquidPhase"))),
			on("phases.Liq.equation_of_state", literal(tokens(bind, "Ideal"))),
			on("base_units.*", substUnits),
		),
		transform: baseTransform,
	}
}

var baseConfig = NewBaseConfig(capability.Default())

func baseTransform(g *ConfigGenerator, data map[string]any, name string) error {
	if err := g.subst.apply(data); err != nil {
		return g.configErr(name, err, "value substitution failed")
	}
	removeSpecial(data)
	return nil
}

// Base wraps a base-configuration record and accumulates the fragments of
// added components and reactions into one merged configuration.
type Base struct {
	DataWrapper
	toMerge []Wrapper
	dirty   bool
	merged  map[string]any
}

// NewBase wraps a base-configuration record.
func NewBase(data map[string]any) *Base {
	return &Base{DataWrapper: newDataWrapper(data, baseConfig), dirty: true}
}

// MergeKeys is empty: a Base is the merge target, never a contributor.
func (b *Base) MergeKeys() []string { return nil }

// Add queues item's fragment for merging into this base's configuration.
// Nothing is computed here; the merge happens on the next Config call.
func (b *Base) Add(item Wrapper) {
	b.toMerge = append(b.toMerge, item)
	b.dirty = true
}

// Config returns the merged configuration. When nothing was added since the
// last call, the cached map is returned unchanged (same object). Otherwise
// the base's own fragment is generated if needed, every queued item is
// merged in queue order, and the queue is consumed.
func (b *Base) Config() (map[string]any, error) {
	if !b.dirty {
		return b.merged, nil
	}
	if b.merged == nil {
		cfg, err := b.DataWrapper.Config()
		if err != nil {
			return nil, err
		}
		b.merged = cfg
	}
	for _, item := range b.toMerge {
		if err := mergeConfig(b.merged, item); err != nil {
			return nil, err
		}
	}
	b.dirty, b.toMerge = false, nil
	return b.merged, nil
}

// mergeConfig shallow-updates dst with the merge-key sections of src's
// fragment. Same-named entries arriving from different items silently
// overwrite earlier ones (last-write-wins).
func mergeConfig(dst map[string]any, src Wrapper) error {
	cfg, err := src.Config()
	if err != nil {
		return err
	}
	for _, key := range src.MergeKeys() {
		section, ok := cfg[key].(map[string]any)
		if !ok {
			continue
		}
		if existing, ok := dst[key].(map[string]any); ok {
			for k, v := range section {
				existing[k] = v
			}
		} else {
			dst[key] = section
		}
	}
	return nil
}
