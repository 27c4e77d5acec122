// Package schema models the declarative per-resource input schema. Every
// "mixed overload" field the underlying format allows (is_directed as
// bool-or-tuple, resource as name-or-column-or-tuple, ...) is represented
// here as an explicit tagged variant with named constructors instead of an
// untyped union.
package schema

// DirectedMode tags InputSchema.Directed's variant.
type DirectedMode int

const (
	// DirectedFixed: every row is directed (or every row is undirected).
	DirectedFixed DirectedMode = iota
	// DirectedByColumn: directedness is read from a column value.
	DirectedByColumn
)

// DirectedSpec models is_directed: either a boolean, or a triple
// (column, positive-value-set, inner-separator?).
type DirectedSpec struct {
	Mode DirectedMode

	AllDirected bool // meaningful when Mode == DirectedFixed

	Column         int // meaningful when Mode == DirectedByColumn
	PositiveValues []string
	InnerSep       string
}

// DirectedAlways builds a DirectedSpec where every row is directed.
func DirectedAlways() DirectedSpec { return DirectedSpec{Mode: DirectedFixed, AllDirected: true} }

// DirectedNever builds a DirectedSpec where every row is undirected.
func DirectedNever() DirectedSpec { return DirectedSpec{Mode: DirectedFixed, AllDirected: false} }

// DirectedFromColumn builds a DirectedSpec reading directedness from a
// column, split on innerSep, intersected against positiveValues.
func DirectedFromColumn(column int, positiveValues []string, innerSep string) DirectedSpec {
	return DirectedSpec{Mode: DirectedByColumn, Column: column, PositiveValues: positiveValues, InnerSep: innerSep}
}

// SignSpec models sign: absent, or a tuple (column, positive-values,
// negative-values, inner-separator?). A nil *SignSpec means absent.
type SignSpec struct {
	Column         int
	PositiveValues []string
	NegativeValues []string
	InnerSep       string
}

// RefsMode tags InputSchema.Refs's variant.
type RefsMode int

const (
	RefsAbsent RefsMode = iota
	RefsSingleColumn
	RefsColumnWithSeparator
)

// RefsSpec models the refs field.
type RefsSpec struct {
	Mode   RefsMode
	Column int
	Sep    string
}

func RefsNone() RefsSpec { return RefsSpec{Mode: RefsAbsent} }

func RefsFromColumn(column int) RefsSpec { return RefsSpec{Mode: RefsSingleColumn, Column: column} }

func RefsFromColumnSplit(column int, sep string) RefsSpec {
	return RefsSpec{Mode: RefsColumnWithSeparator, Column: column, Sep: sep}
}

// TaxonLookup models one endpoint's {col, dict?, include?, exclude?}
// per-endpoint taxon lookup.
type TaxonLookup struct {
	Column  int
	Dict    map[string]int // raw cell value -> taxon id, when translation is needed
	Include []int          // non-empty: only these taxa are accepted
	Exclude []int          // these taxa are rejected outright
}

// TaxonMode tags InputSchema.Taxon's variant.
type TaxonMode int

const (
	TaxonFixed TaxonMode = iota
	TaxonPerEndpoint
)

// TaxonSpec models ncbi_tax_id: an integer applied to both endpoints, or a
// dictionary describing per-endpoint lookup, optionally nested under keys
// A and B. When only a single (unnested) lookup is given, the same
// TaxonLookup applies to both endpoints.
type TaxonSpec struct {
	Mode  TaxonMode
	Fixed int

	A TaxonLookup
	B TaxonLookup
}

func TaxonFixedID(taxon int) TaxonSpec { return TaxonSpec{Mode: TaxonFixed, Fixed: taxon} }

// TaxonSharedLookup applies the same lookup to both endpoints.
func TaxonSharedLookup(lookup TaxonLookup) TaxonSpec {
	return TaxonSpec{Mode: TaxonPerEndpoint, A: lookup, B: lookup}
}

// TaxonPerEndpointLookup applies distinct lookups per endpoint.
func TaxonPerEndpointLookup(a, b TaxonLookup) TaxonSpec {
	return TaxonSpec{Mode: TaxonPerEndpoint, A: a, B: b}
}

// ResourceMode tags InputSchema.Resource's variant.
type ResourceMode int

const (
	ResourceFixedName ResourceMode = iota
	ResourceSingleColumn
	ResourceColumnWithSeparator
)

// ResourceSpec models resource: either the resource name, a single column
// index, or (column, separator) producing a set of secondary-resource
// names for that row. The interaction_type/data_model attached to the
// resulting NetworkResource come from InputSchema, not from here --
// ResourceSpec only decides the name(s).
type ResourceSpec struct {
	Mode   ResourceMode
	Name   string
	Column int
	Sep    string
}

func ResourceNamed(name string) ResourceSpec { return ResourceSpec{Mode: ResourceFixedName, Name: name} }

func ResourceFromColumn(column int) ResourceSpec {
	return ResourceSpec{Mode: ResourceSingleColumn, Column: column}
}

func ResourceFromColumnSplit(column int, sep string) ResourceSpec {
	return ResourceSpec{Mode: ResourceColumnWithSeparator, Column: column, Sep: sep}
}

// FilterSpec models one element of positive_filters/negative_filters:
// (column, value-set, inner-separator?).
type FilterSpec struct {
	Column   int
	Values   []string
	InnerSep string
}

// AttrSpec models one value of extra_edge_attrs/extra_node_attrs_*: either
// a bare column index, or (column, transform) where transform is either
// an inner separator (split to list) or a callable.
type AttrSpec struct {
	Column int

	// InnerSep, if non-nil, splits the cell into a list on this separator.
	InnerSep *string

	// Transform, if non-nil, is applied to the raw cell value instead of
	// (and takes priority over) InnerSep.
	Transform func(string) any
}

func AttrColumn(column int) AttrSpec { return AttrSpec{Column: column} }

func AttrColumnSplit(column int, sep string) AttrSpec {
	return AttrSpec{Column: column, InnerSep: &sep}
}

func AttrColumnTransform(column int, fn func(string) any) AttrSpec {
	return AttrSpec{Column: column, Transform: fn}
}

// InputSchema is the full declarative per-resource record.
type InputSchema struct {
	ResourceKey string // registry key / display name for this schema, not the row-level resource

	// InteractionType and DataModel are fixed for every row this schema
	// produces and carry onto the primary NetworkResource buildResources
	// constructs, and from there onto every secondary resource derived
	// from the same row (a secondary resource inherits its primary's
	// interaction_type/data_model; nothing in the row overrides them).
	InteractionType string
	DataModel       string

	IDColA, IDColB                     int
	IDTypeA, IDTypeB                   string
	EntityTypeA, EntityTypeB           string
	Separator                          string
	Header                             bool
	Directed                           DirectedSpec
	Sign                               *SignSpec
	Refs                               RefsSpec
	Taxon                              TaxonSpec
	Resource                           ResourceSpec
	PositiveFilters, NegativeFilters   []FilterSpec
	ExtraEdgeAttrs                     map[string]AttrSpec
	ExtraNodeAttrsA, ExtraNodeAttrsB   map[string]AttrSpec
	ExpandComplexes                    bool
	MustHaveReferences                 bool
	Huge                               bool

	// OnlyDirections, when true, enables only_directions ingest mode: no
	// new interactions are created, only existing ones augmented.
	OnlyDirections bool
}
