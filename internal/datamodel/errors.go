package datamodel

import "fmt"

// ConfigError reports a structural problem found while generating a
// configuration fragment: bad parameter entries, an unsupported reaction
// type, a section collision, or a unit expression that failed to resolve
// (wrapped, so errors.As can still find the units error).
type ConfigError struct {
	Generator string // generator name, e.g. "ThermoConfig"
	Record    string // record name, for locating the stored document
	Why       string
	Err       error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: record %q: %s", e.Generator, e.Record, e.Why)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BadConfigError reports a configuration dictionary that cannot be turned
// back into stored records: a required section or field is missing, a type
// marker mismatches, or a value has no inverse mapping. Exactly one of
// Missing or Why is set.
type BadConfigError struct {
	Caller  string
	Config  map[string]any
	Missing string
	Why     string
}

func (e *BadConfigError) Error() string {
	reason := e.Why
	if e.Missing != "" {
		reason = fmt.Sprintf("missing %q", e.Missing)
	}
	return fmt.Sprintf("%s: bad configuration: %s: config=%s", e.Caller, reason, snippet(e.Config))
}

// snippet renders a shortened view of the offending config for error
// messages. Fragments may hold non-JSON values (tuple-keyed tables,
// capabilities), so plain formatting is used.
func snippet(config map[string]any) string {
	s := fmt.Sprint(config)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
