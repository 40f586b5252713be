package datamodel

import "errors"

// ErrNameRequired is returned when a component or reaction record has no
// "name" field.
var ErrNameRequired = errors.New("'name' is required")

// Wrapper is the surface shared by Component, Reaction and Base: access to
// the generated configuration fragment, the storable record view, and the
// sections eligible for merging into a Base.
type Wrapper interface {
	Name() string
	Config() (map[string]any, error)
	JSONData() map[string]any
	MergeKeys() []string
}

type wrapperState int

const (
	uncomputed wrapperState = iota
	computed
	failed
)

// DataWrapper owns one raw record and a generator reference. The
// configuration fragment is produced lazily on the first Config call and
// cached for the wrapper's lifetime; a wrapper never recomputes, so new
// data needs a new wrapper. The explicit state marker distinguishes "not
// yet computed" from a legitimately empty result.
//
// The cache write is a plain assignment; concurrent first access of a
// shared wrapper needs external synchronization.
type DataWrapper struct {
	name   string
	data   map[string]any
	gen    *ConfigGenerator
	state  wrapperState
	config map[string]any
	err    error
}

func newDataWrapper(data map[string]any, gen *ConfigGenerator) DataWrapper {
	name, _ := data["name"].(string)
	return DataWrapper{name: name, data: data, gen: gen}
}

// Name is the record's name as of construction time.
func (w *DataWrapper) Name() string { return w.name }

// Config returns the configuration fragment for this record, generating
// and caching it on first access. Generation failures are cached too.
func (w *DataWrapper) Config() (map[string]any, error) {
	if w.state == uncomputed {
		w.config, w.err = w.gen.Generate(w.data, w.name)
		if w.err != nil {
			w.state = failed
		} else {
			w.state = computed
		}
	}
	return w.config, w.err
}

// JSONData returns the record in its storable form: a shallow copy with the
// identity field stripped. It is the pre-transform view, not the generated
// configuration.
func (w *DataWrapper) JSONData() map[string]any {
	out := make(map[string]any, len(w.data))
	for k, v := range w.data {
		if k != idKey {
			out[k] = v
		}
	}
	return out
}
