package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
	"github.com/rohankatakam/interlace/internal/network"
	"github.com/rohankatakam/interlace/internal/schema"
)

// fakeMapper is a minimal IdentifierMapper stand-in for tests: it maps a
// raw id to the fixed targets registered for it, independent of from/to
// type (those plumbing details belong to the real external mapper).
type fakeMapper struct {
	targets map[string][]string
}

func (f fakeMapper) MapName(name, _, _ string, _ int, _ bool) []string {
	return f.targets[name]
}

func baseSchema() schema.InputSchema {
	return schema.InputSchema{
		ResourceKey: "testres",
		IDColA:      0,
		IDColB:      1,
		IDTypeA:     "uniprot",
		IDTypeB:     "uniprot",
		EntityTypeA: string(entity.Protein),
		EntityTypeB: string(entity.Protein),
		Separator:   "\t",
		Directed:    schema.DirectedAlways(),
		Refs:        schema.RefsFromColumn(2),
		Taxon:       schema.TaxonFixedID(9606),
		Resource:    schema.ResourceNamed("testres"),
	}
}

func TestScenarioS3ComplexExpansion(t *testing.T) {
	s := baseSchema()
	s.ExpandComplexes = true

	mapper := fakeMapper{targets: map[string][]string{
		"CPX1": {"P1", "P2"},
		"P3":   {"P3"},
	}}
	translator := NewTranslator(mapper, DefaultNameTypes{entity.Protein: "uniprot"})
	ingestor := NewIngestor(s, translator, NewLineSource([]string{"CPX1\tP3\t100"}))

	net := network.New()
	require.NoError(t, ingestor.Run(net, ingestor.Source))

	assert.Equal(t, 2, net.InteractionCount())
	for _, endpoint := range []string{"P1", "P2"} {
		key1 := entity.Key{Identifier: endpoint, IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
		key2 := entity.Key{Identifier: "P3", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
		_, ok := net.Interaction(key1, key2)
		assert.Truef(t, ok, "expected interaction (%s, P3) to exist", endpoint)
	}
}

func TestResourceCarriesInteractionTypeAndDataModel(t *testing.T) {
	s := baseSchema()
	s.InteractionType = "ppi"
	s.DataModel = "interaction"

	mapper := fakeMapper{targets: map[string][]string{"A": {"A"}, "B": {"B"}}}
	translator := NewTranslator(mapper, DefaultNameTypes{entity.Protein: "uniprot"})
	ingestor := NewIngestor(s, translator, NewLineSource([]string{"A\tB\t100"}))

	net := network.New()
	require.NoError(t, ingestor.Run(net, ingestor.Source))

	keyA := entity.Key{Identifier: "A", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyB := entity.Key{Identifier: "B", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	ia, ok := net.Interaction(keyA, keyB)
	require.True(t, ok)

	evs := ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
	require.Len(t, evs.Slice(), 1)
	ev := evs.Slice()[0]
	assert.Equal(t, "ppi", ev.Resource.InteractionType)
	assert.Equal(t, "interaction", ev.Resource.DataModel)
}

func TestUnmappedEndpointDropsRow(t *testing.T) {
	s := baseSchema()
	mapper := fakeMapper{targets: map[string][]string{"P3": {"P3"}}}
	translator := NewTranslator(mapper, DefaultNameTypes{entity.Protein: "uniprot"})
	ingestor := NewIngestor(s, translator, NewLineSource([]string{"UNKNOWN\tP3\t100"}))

	net := network.New()
	require.NoError(t, ingestor.Run(net, ingestor.Source))
	assert.Equal(t, 0, net.InteractionCount())

	stats := ingestor.Stats()
	assert.Equal(t, 1, stats.MappingMisses)
	require.Len(t, stats.Unmapped, 1)
	assert.Equal(t, "UNKNOWN", stats.Unmapped[0])
}

func TestScenarioS6OnlyDirections(t *testing.T) {
	mapperA := fakeMapper{targets: map[string][]string{"A": {"A"}, "B": {"B"}}}
	defaults := DefaultNameTypes{entity.Protein: "uniprot"}

	// r1: A,B undirected.
	s1 := baseSchema()
	s1.Directed = schema.DirectedNever()
	t1 := NewTranslator(mapperA, defaults)
	ing1 := NewIngestor(s1, t1, NewLineSource([]string{"A\tB\t100"}))

	net := network.New()
	require.NoError(t, ing1.Run(net, ing1.Source))
	assert.Equal(t, 1, net.InteractionCount())
	assert.Equal(t, 2, net.NodeCount())

	// r3: A->B directed, only_directions=true, new pair C,D should be skipped.
	s3 := baseSchema()
	s3.OnlyDirections = true
	mapperB := fakeMapper{targets: map[string][]string{"A": {"A"}, "B": {"B"}, "C": {"C"}, "D": {"D"}}}
	t3 := NewTranslator(mapperB, defaults)
	ing3 := NewIngestor(s3, t3, NewLineSource([]string{"A\tB\t200", "C\tD\t300"}))

	require.NoError(t, ing3.Run(net, ing3.Source))
	assert.Equal(t, 1, net.InteractionCount(), "only_directions should add no new interactions")
	assert.Equal(t, 2, net.NodeCount(), "only_directions should add no new nodes")

	keyA := entity.Key{Identifier: "A", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyB := entity.Key{Identifier: "B", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	ia, ok := net.Interaction(keyA, keyB)
	require.True(t, ok, "expected (A,B) interaction to exist")

	evs := ia.GetEvidences(interaction.SpecificDirection(interaction.AB), interaction.NoSignConstraint(), evidence.Filter{})
	assert.False(t, evs.IsEmpty(), "expected direction[(A,B)] to carry r3's evidence after only_directions ingest")
}
