package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLRoundTrip(t *testing.T) {
	sign := &SignSpec{Column: 4, PositiveValues: []string{"1"}, NegativeValues: []string{"-1"}, InnerSep: ";"}
	original := InputSchema{
		ResourceKey:     "signor",
		InteractionType: "ppi",
		DataModel:       "interaction",
		IDColA:          0,
		IDColB:      1,
		IDTypeA:     "uniprot",
		IDTypeB:     "uniprot",
		EntityTypeA: "protein",
		EntityTypeB: "protein",
		Separator:   "\t",
		Header:      true,
		Directed:    DirectedFromColumn(3, []string{"yes"}, ","),
		Sign:        sign,
		Refs:        RefsFromColumnSplit(5, ";"),
		Taxon:       TaxonFixedID(9606),
		Resource:    ResourceNamed("SIGNOR"),
		PositiveFilters: []FilterSpec{
			{Column: 6, Values: []string{"human"}, InnerSep: ","},
		},
		ExpandComplexes:    true,
		MustHaveReferences: true,
	}

	out, err := yaml.Marshal(original)
	require.NoError(t, err)

	var decoded InputSchema
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Equal(t, "signor", decoded.ResourceKey)
	assert.Equal(t, "ppi", decoded.InteractionType)
	assert.Equal(t, "interaction", decoded.DataModel)
	assert.Equal(t, DirectedByColumn, decoded.Directed.Mode)
	assert.Equal(t, 3, decoded.Directed.Column)
	require.NotNil(t, decoded.Sign)
	assert.Equal(t, 4, decoded.Sign.Column)
	assert.Equal(t, RefsColumnWithSeparator, decoded.Refs.Mode)
	assert.Equal(t, ";", decoded.Refs.Sep)
	assert.Equal(t, TaxonFixed, decoded.Taxon.Mode)
	assert.Equal(t, 9606, decoded.Taxon.Fixed)
	assert.Equal(t, ResourceFixedName, decoded.Resource.Mode)
	assert.Equal(t, "SIGNOR", decoded.Resource.Name)
	require.Len(t, decoded.PositiveFilters, 1)
	assert.Equal(t, 6, decoded.PositiveFilters[0].Column)
}

func TestTaxonPerEndpointRoundTrip(t *testing.T) {
	original := InputSchema{
		Directed: DirectedAlways(),
		Refs:     RefsNone(),
		Resource: ResourceNamed("x"),
		Taxon: TaxonPerEndpointLookup(
			TaxonLookup{Column: 2, Dict: map[string]int{"human": 9606}},
			TaxonLookup{Column: 3, Exclude: []int{0}},
		),
	}

	out, err := yaml.Marshal(original)
	require.NoError(t, err)
	var decoded InputSchema
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Equal(t, TaxonPerEndpoint, decoded.Taxon.Mode)
	assert.Equal(t, 9606, decoded.Taxon.A.Dict["human"])
	require.Len(t, decoded.Taxon.B.Exclude, 1)
	assert.Equal(t, 0, decoded.Taxon.B.Exclude[0])
}
