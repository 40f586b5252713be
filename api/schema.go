package api

// Collection names one of the record collections in the electrolyte
// database.
type Collection string

const (
	// Components holds chemical species records.
	Components Collection = "components"
	// Reactions holds equilibrium reaction records.
	Reactions Collection = "reactions"
	// Bases holds base configuration records that components and reactions
	// are merged into.
	Bases Collection = "bases"
)

// Collections lists every known collection.
func Collections() []Collection {
	return []Collection{Components, Reactions, Bases}
}

// Valid reports whether c names a known collection.
func (c Collection) Valid() bool {
	return c == Components || c == Reactions || c == Bases
}

// Record field names that are part of the storage contract.
const (
	// FieldName uniquely identifies a record within its collection.
	FieldName = "name"
	// FieldID is the storage identity marker; it is never propagated into
	// generated configurations.
	FieldID = "_id"
)
