// Package capability enumerates the symbolic identifiers stored records use
// for framework-provided behavior (property correlation methods, phase
// types, reaction forms) and binds them to opaque handles the downstream
// modeling framework understands. The transformation core only ever handles
// the symbolic identifiers; the embedding application supplies (or accepts
// the default) token-to-capability binding table.
package capability

// Capability is an opaque handle for one framework behavior. Capabilities
// are comparable, so they can key the inverse (capability-to-token) table.
type Capability struct {
	id string
}

// ID returns the stable identifier of the capability.
func (c Capability) ID() string { return c.id }

func (c Capability) String() string { return c.id }

// The standard capability set. The identifiers are arbitrary but stable;
// they are distinct from the storage tokens on purpose so that tests catch
// paths that leak capabilities into stored records.
var (
	// Component type marker set on every generated component entry.
	ComponentType = Capability{"component-type"}

	// Phase type flags.
	LiquidPhaseType  = Capability{"phase-type/liquid"}
	SolidPhaseType   = Capability{"phase-type/solid"}
	VaporPhaseType   = Capability{"phase-type/vapor"}
	AqueousPhaseType = Capability{"phase-type/aqueous"}

	// Pure-component property correlation sources.
	Perrys = Capability{"pure/perrys"}
	NIST   = Capability{"pure/nist"}

	// Phase equilibrium formulation.
	Fugacity = Capability{"phase-equil/fugacity"}

	// Reaction behavior.
	ConstantDHRxn    = Capability{"reaction/constant-dh-rxn"}
	VanTHoff         = Capability{"reaction/van-t-hoff"}
	VanTHoffAqueous  = Capability{"reaction/van-t-hoff-aqueous"}
	LogPowerLaw      = Capability{"reaction/log-power-law"}
	PowerLawEquil    = Capability{"reaction/power-law-equil"}
	MolarityConcForm = Capability{"reaction/concentration-form-molarity"}

	// Base configuration behavior.
	FTPx        = Capability{"state-definition/ftpx"}
	LiquidPhase = Capability{"phase/liquid"}
	IdealEOS    = Capability{"eos/ideal"}
)

// Bindings maps stored tokens to capabilities. A Bindings value is built
// once and treated as immutable afterwards.
type Bindings struct {
	byToken map[string]Capability
}

// NewBindings copies the given table into an immutable Bindings.
func NewBindings(table map[string]Capability) Bindings {
	m := make(map[string]Capability, len(table))
	for k, v := range table {
		m[k] = v
	}
	return Bindings{byToken: m}
}

// Lookup resolves a stored token.
func (b Bindings) Lookup(token string) (Capability, bool) {
	c, ok := b.byToken[token]
	return c, ok
}

// Inverse returns the capability-to-token table used when reconstructing
// stored records from a generated configuration.
func (b Bindings) Inverse() map[Capability]string {
	inv := make(map[Capability]string, len(b.byToken))
	for token, c := range b.byToken {
		inv[c] = token
	}
	return inv
}

var defaultBindings = NewBindings(map[string]Capability{
	"PT.liquidPhase":  LiquidPhaseType,
	"PT.solidPhase":   SolidPhaseType,
	"PT.vaporPhase":   VaporPhaseType,
	"PT.aqueousPhase": AqueousPhaseType,

	"Perrys": Perrys,
	"NIST":   NIST,

	"fugacity": Fugacity,

	"constant_dh_rxn":            ConstantDHRxn,
	"van_t_hoff":                 VanTHoff,
	"van_t_hoff_aqueous":         VanTHoffAqueous,
	"log_power_law":              LogPowerLaw,
	"power_law_equil":            PowerLawEquil,
	"ConcentrationForm.molarity": MolarityConcForm,

	"FTPx":        FTPx,
	"LiquidPhase": LiquidPhase,
	"Ideal":       IdealEOS,
})

// Default returns the standard token bindings.
func Default() Bindings { return defaultBindings }
