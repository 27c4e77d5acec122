package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlAttrSpec is AttrSpec's wire form; Transform is a runtime-only
// callable and has no serialized representation (a registry hands out
// data, not closures).
type yamlAttrSpec struct {
	Column   int     `yaml:"column"`
	InnerSep *string `yaml:"inner_sep,omitempty"`
}

type yamlDirected struct {
	Mode           string   `yaml:"mode"`
	AllDirected    bool     `yaml:"all_directed,omitempty"`
	Column         int      `yaml:"column,omitempty"`
	PositiveValues []string `yaml:"positive_values,omitempty"`
	InnerSep       string   `yaml:"inner_sep,omitempty"`
}

type yamlSign struct {
	Column         int      `yaml:"column"`
	PositiveValues []string `yaml:"positive_values"`
	NegativeValues []string `yaml:"negative_values"`
	InnerSep       string   `yaml:"inner_sep,omitempty"`
}

type yamlRefs struct {
	Mode   string `yaml:"mode"`
	Column int    `yaml:"column,omitempty"`
	Sep    string `yaml:"sep,omitempty"`
}

type yamlTaxonLookup struct {
	Column  int            `yaml:"column"`
	Dict    map[string]int `yaml:"dict,omitempty"`
	Include []int          `yaml:"include,omitempty"`
	Exclude []int          `yaml:"exclude,omitempty"`
}

type yamlTaxon struct {
	Mode  string           `yaml:"mode"`
	Fixed int              `yaml:"fixed,omitempty"`
	A     *yamlTaxonLookup `yaml:"a,omitempty"`
	B     *yamlTaxonLookup `yaml:"b,omitempty"`
}

type yamlResource struct {
	Mode   string `yaml:"mode"`
	Name   string `yaml:"name,omitempty"`
	Column int    `yaml:"column,omitempty"`
	Sep    string `yaml:"sep,omitempty"`
}

type yamlFilter struct {
	Column   int      `yaml:"column"`
	Values   []string `yaml:"values"`
	InnerSep string   `yaml:"inner_sep,omitempty"`
}

type yamlDoc struct {
	ResourceKey         string                  `yaml:"resource_key"`
	InteractionType     string                  `yaml:"interaction_type,omitempty"`
	DataModel           string                  `yaml:"data_model,omitempty"`
	IDColA              int                     `yaml:"id_col_a"`
	IDColB              int                     `yaml:"id_col_b"`
	IDTypeA             string                  `yaml:"id_type_a"`
	IDTypeB             string                  `yaml:"id_type_b"`
	EntityTypeA         string                  `yaml:"entity_type_a"`
	EntityTypeB         string                  `yaml:"entity_type_b"`
	Separator           string                  `yaml:"separator"`
	Header              bool                    `yaml:"header"`
	Directed            yamlDirected            `yaml:"directed"`
	Sign                *yamlSign               `yaml:"sign,omitempty"`
	Refs                yamlRefs                `yaml:"refs"`
	Taxon               yamlTaxon               `yaml:"taxon"`
	Resource            yamlResource            `yaml:"resource"`
	PositiveFilters     []yamlFilter            `yaml:"positive_filters,omitempty"`
	NegativeFilters     []yamlFilter            `yaml:"negative_filters,omitempty"`
	ExtraEdgeAttrs      map[string]yamlAttrSpec `yaml:"extra_edge_attrs,omitempty"`
	ExtraNodeAttrsA     map[string]yamlAttrSpec `yaml:"extra_node_attrs_a,omitempty"`
	ExtraNodeAttrsB     map[string]yamlAttrSpec `yaml:"extra_node_attrs_b,omitempty"`
	ExpandComplexes     bool                    `yaml:"expand_complexes"`
	MustHaveReferences  bool                    `yaml:"must_have_references"`
	Huge                bool                    `yaml:"huge"`
	OnlyDirections      bool                    `yaml:"only_directions"`
}

func attrsToYAML(in map[string]AttrSpec) map[string]yamlAttrSpec {
	if in == nil {
		return nil
	}
	out := make(map[string]yamlAttrSpec, len(in))
	for k, v := range in {
		out[k] = yamlAttrSpec{Column: v.Column, InnerSep: v.InnerSep}
	}
	return out
}

func attrsFromYAML(in map[string]yamlAttrSpec) map[string]AttrSpec {
	if in == nil {
		return nil
	}
	out := make(map[string]AttrSpec, len(in))
	for k, v := range in {
		out[k] = AttrSpec{Column: v.Column, InnerSep: v.InnerSep}
	}
	return out
}

func filtersToYAML(in []FilterSpec) []yamlFilter {
	if in == nil {
		return nil
	}
	out := make([]yamlFilter, len(in))
	for i, f := range in {
		out[i] = yamlFilter{Column: f.Column, Values: f.Values, InnerSep: f.InnerSep}
	}
	return out
}

func filtersFromYAML(in []yamlFilter) []FilterSpec {
	if in == nil {
		return nil
	}
	out := make([]FilterSpec, len(in))
	for i, f := range in {
		out[i] = FilterSpec{Column: f.Column, Values: f.Values, InnerSep: f.InnerSep}
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (s InputSchema) MarshalYAML() (any, error) {
	doc := yamlDoc{
		ResourceKey:     s.ResourceKey,
		InteractionType: s.InteractionType,
		DataModel:       s.DataModel,
		IDColA:          s.IDColA,
		IDColB:      s.IDColB,
		IDTypeA:     s.IDTypeA,
		IDTypeB:     s.IDTypeB,
		EntityTypeA: s.EntityTypeA,
		EntityTypeB: s.EntityTypeB,
		Separator:   s.Separator,
		Header:      s.Header,
		Refs: yamlRefs{
			Mode:   [...]string{"absent", "single_column", "column_with_separator"}[s.Refs.Mode],
			Column: s.Refs.Column,
			Sep:    s.Refs.Sep,
		},
		Resource: yamlResource{
			Mode:   [...]string{"fixed_name", "single_column", "column_with_separator"}[s.Resource.Mode],
			Name:   s.Resource.Name,
			Column: s.Resource.Column,
			Sep:    s.Resource.Sep,
		},
		PositiveFilters:    filtersToYAML(s.PositiveFilters),
		NegativeFilters:    filtersToYAML(s.NegativeFilters),
		ExtraEdgeAttrs:     attrsToYAML(s.ExtraEdgeAttrs),
		ExtraNodeAttrsA:    attrsToYAML(s.ExtraNodeAttrsA),
		ExtraNodeAttrsB:    attrsToYAML(s.ExtraNodeAttrsB),
		ExpandComplexes:    s.ExpandComplexes,
		MustHaveReferences: s.MustHaveReferences,
		Huge:               s.Huge,
		OnlyDirections:     s.OnlyDirections,
	}

	if s.Directed.Mode == DirectedFixed {
		doc.Directed = yamlDirected{Mode: "fixed", AllDirected: s.Directed.AllDirected}
	} else {
		doc.Directed = yamlDirected{
			Mode:           "by_column",
			Column:         s.Directed.Column,
			PositiveValues: s.Directed.PositiveValues,
			InnerSep:       s.Directed.InnerSep,
		}
	}

	if s.Sign != nil {
		doc.Sign = &yamlSign{
			Column:         s.Sign.Column,
			PositiveValues: s.Sign.PositiveValues,
			NegativeValues: s.Sign.NegativeValues,
			InnerSep:       s.Sign.InnerSep,
		}
	}

	switch s.Taxon.Mode {
	case TaxonFixed:
		doc.Taxon = yamlTaxon{Mode: "fixed", Fixed: s.Taxon.Fixed}
	default:
		doc.Taxon = yamlTaxon{
			Mode: "per_endpoint",
			A:    &yamlTaxonLookup{Column: s.Taxon.A.Column, Dict: s.Taxon.A.Dict, Include: s.Taxon.A.Include, Exclude: s.Taxon.A.Exclude},
			B:    &yamlTaxonLookup{Column: s.Taxon.B.Column, Dict: s.Taxon.B.Dict, Include: s.Taxon.B.Include, Exclude: s.Taxon.B.Exclude},
		}
	}

	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *InputSchema) UnmarshalYAML(value *yaml.Node) error {
	var doc yamlDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}

	*s = InputSchema{
		ResourceKey:        doc.ResourceKey,
		InteractionType:    doc.InteractionType,
		DataModel:          doc.DataModel,
		IDColA:             doc.IDColA,
		IDColB:             doc.IDColB,
		IDTypeA:            doc.IDTypeA,
		IDTypeB:            doc.IDTypeB,
		EntityTypeA:        doc.EntityTypeA,
		EntityTypeB:        doc.EntityTypeB,
		Separator:          doc.Separator,
		Header:             doc.Header,
		PositiveFilters:    filtersFromYAML(doc.PositiveFilters),
		NegativeFilters:    filtersFromYAML(doc.NegativeFilters),
		ExtraEdgeAttrs:     attrsFromYAML(doc.ExtraEdgeAttrs),
		ExtraNodeAttrsA:    attrsFromYAML(doc.ExtraNodeAttrsA),
		ExtraNodeAttrsB:    attrsFromYAML(doc.ExtraNodeAttrsB),
		ExpandComplexes:    doc.ExpandComplexes,
		MustHaveReferences: doc.MustHaveReferences,
		Huge:               doc.Huge,
		OnlyDirections:     doc.OnlyDirections,
	}

	switch doc.Directed.Mode {
	case "fixed":
		s.Directed = DirectedSpec{Mode: DirectedFixed, AllDirected: doc.Directed.AllDirected}
	case "by_column":
		s.Directed = DirectedFromColumn(doc.Directed.Column, doc.Directed.PositiveValues, doc.Directed.InnerSep)
	default:
		return fmt.Errorf("schema: unknown directed mode %q", doc.Directed.Mode)
	}

	if doc.Sign != nil {
		s.Sign = &SignSpec{
			Column:         doc.Sign.Column,
			PositiveValues: doc.Sign.PositiveValues,
			NegativeValues: doc.Sign.NegativeValues,
			InnerSep:       doc.Sign.InnerSep,
		}
	}

	switch doc.Refs.Mode {
	case "absent", "":
		s.Refs = RefsNone()
	case "single_column":
		s.Refs = RefsFromColumn(doc.Refs.Column)
	case "column_with_separator":
		s.Refs = RefsFromColumnSplit(doc.Refs.Column, doc.Refs.Sep)
	default:
		return fmt.Errorf("schema: unknown refs mode %q", doc.Refs.Mode)
	}

	switch doc.Taxon.Mode {
	case "fixed":
		s.Taxon = TaxonFixedID(doc.Taxon.Fixed)
	case "per_endpoint":
		a, b := TaxonLookup{}, TaxonLookup{}
		if doc.Taxon.A != nil {
			a = TaxonLookup{Column: doc.Taxon.A.Column, Dict: doc.Taxon.A.Dict, Include: doc.Taxon.A.Include, Exclude: doc.Taxon.A.Exclude}
		}
		if doc.Taxon.B != nil {
			b = TaxonLookup{Column: doc.Taxon.B.Column, Dict: doc.Taxon.B.Dict, Include: doc.Taxon.B.Include, Exclude: doc.Taxon.B.Exclude}
		}
		s.Taxon = TaxonPerEndpointLookup(a, b)
	default:
		return fmt.Errorf("schema: unknown taxon mode %q", doc.Taxon.Mode)
	}

	switch doc.Resource.Mode {
	case "fixed_name":
		s.Resource = ResourceNamed(doc.Resource.Name)
	case "single_column":
		s.Resource = ResourceFromColumn(doc.Resource.Column)
	case "column_with_separator":
		s.Resource = ResourceFromColumnSplit(doc.Resource.Column, doc.Resource.Sep)
	default:
		return fmt.Errorf("schema: unknown resource mode %q", doc.Resource.Mode)
	}

	return nil
}
