// Package entity defines the molecular node type shared by the ingest
// pipeline and the interaction store.
package entity

// Type names the broad molecular class of an Entity. Resources are free to
// introduce additional values; the zero value is treated as unknown.
type Type string

const (
	Protein      Type = "protein"
	Complex      Type = "complex"
	Mirna        Type = "mirna"
	Lncrna       Type = "lncrna"
	SmallMolecule Type = "small_molecule"
)

// Key is the identity tuple Entities are compared and hashed on.
type Key struct {
	Identifier string
	IDType     string
	EntityType Type
	Taxon      int
}

// Entity is a molecular node: a stable identity tuple plus mutable,
// best-effort metadata (a display label and a free-form attribute bag).
//
// Two Entities with equal Key are the same node; Merge unions their
// attribute maps and fills in a missing Label, but never mutates the
// identity tuple: endpoints never change identity after construction.
type Entity struct {
	Key
	Label      string
	Attributes map[string]any
}

// New constructs an Entity with an empty attribute map.
func New(identifier, idType string, entityType Type, taxon int) *Entity {
	return &Entity{
		Key: Key{
			Identifier: identifier,
			IDType:     idType,
			EntityType: entityType,
			Taxon:      taxon,
		},
		Attributes: make(map[string]any),
	}
}

// WithLabel sets Label and returns the receiver for chaining.
func (e *Entity) WithLabel(label string) *Entity {
	e.Label = label
	return e
}

// SetAttr stores a single attribute.
func (e *Entity) SetAttr(key string, value any) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = value
}

// Merge unions other's attributes into e, preferring e's existing non-nil
// values on key collision, and adopts other's Label only if e has none yet
// (a Label, once set, is stable).
func (e *Entity) Merge(other *Entity) {
	if other == nil {
		return
	}
	if e.Label == "" && other.Label != "" {
		e.Label = other.Label
	}
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	for k, v := range other.Attributes {
		if existing, ok := e.Attributes[k]; !ok || existing == nil {
			e.Attributes[k] = v
		}
	}
}

// Less implements the canonical ordering used to pick the (a,b) endpoint
// order for an Interaction: lexicographic by identifier, then id type, then
// entity type, then taxon.
func (e *Entity) Less(other *Entity) bool {
	if e.Identifier != other.Identifier {
		return e.Identifier < other.Identifier
	}
	if e.IDType != other.IDType {
		return e.IDType < other.IDType
	}
	if e.EntityType != other.EntityType {
		return e.EntityType < other.EntityType
	}
	return e.Taxon < other.Taxon
}

// String renders a compact identity string, useful for map keys in callers
// that don't want to carry the full struct as a key (e.g. logging fields).
func (e *Entity) String() string {
	return e.Identifier
}
