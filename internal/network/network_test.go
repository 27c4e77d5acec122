package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
)

func addUndirected(t *testing.T, net *Network, idA, idB, resource string, refs ...evidence.Reference) {
	t.Helper()
	a := entity.New(idA, "uniprot", entity.Protein, 9606)
	b := entity.New(idB, "uniprot", entity.Protein, 9606)
	ev := evidence.NewEvidence(evidence.Resource{Name: resource}, refs...)
	rec := EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(ev),
		Directed:  false,
	}
	require.NoError(t, net.AddInteraction(rec, false))
}

func TestScenarioS4HTPRemoval(t *testing.T) {
	r, _ := evidence.NormalizeReference("100")
	rPrime, _ := evidence.NormalizeReference("200")

	net := New()
	addUndirected(t, net, "A", "B", "r1", r)
	addUndirected(t, net, "C", "D", "r2", r, rPrime)
	addUndirected(t, net, "E", "F", "r3", r, rPrime)

	require.Equal(t, 3, net.InteractionCount())

	net.RemoveHTP(2, false)

	assert.Equal(t, 2, net.InteractionCount(), "only the {R}-only interaction should be removed")

	keyC := entity.Key{Identifier: "C", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyD := entity.Key{Identifier: "D", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	_, ok := net.Interaction(keyC, keyD)
	assert.True(t, ok, "interaction with {R,R'} should survive")

	keyE := entity.Key{Identifier: "E", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyF := entity.Key{Identifier: "F", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	_, ok = net.Interaction(keyE, keyF)
	assert.True(t, ok, "interaction with {R,R'} should survive")

	keyA := entity.Key{Identifier: "A", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyB := entity.Key{Identifier: "B", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	_, ok = net.Interaction(keyA, keyB)
	assert.False(t, ok, "interaction with {R} only should be removed")

	_, ok = net.Node(keyA)
	assert.False(t, ok, "A should be removed once its only interaction is gone")
	_, ok = net.Node(keyB)
	assert.False(t, ok, "B should be removed once its only interaction is gone")
}

func TestRemoveNodeCascadesButKeepsSharedEndpoint(t *testing.T) {
	net := New()
	addUndirected(t, net, "A", "B", "r1")
	addUndirected(t, net, "B", "C", "r1")

	keyA := entity.Key{Identifier: "A", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyB := entity.Key{Identifier: "B", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	keyC := entity.Key{Identifier: "C", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}

	net.RemoveNode(keyA)

	_, ok := net.Node(keyA)
	assert.False(t, ok, "A should be gone")
	_, ok = net.Interaction(keyA, keyB)
	assert.False(t, ok, "(A,B) should be gone")

	_, ok = net.Node(keyB)
	assert.True(t, ok, "B should survive: it still has an edge to C")
	_, ok = net.Interaction(keyB, keyC)
	assert.True(t, ok, "(B,C) should survive")

	net.RemoveNode(keyC)
	_, ok = net.Node(keyB)
	assert.False(t, ok, "B should now be gone: its last edge (B,C) was removed")
}

func TestRemoveZeroDegreeSweepsIsolatedNodes(t *testing.T) {
	net := New()
	addUndirected(t, net, "A", "B", "r1")

	isolated := entity.New("ISOLATED", "uniprot", entity.Protein, 9606)
	net.RegisterNodeForLoad(isolated)

	require.Equal(t, 3, net.NodeCount())

	net.RemoveZeroDegree()

	_, ok := net.Node(isolated.Key)
	assert.False(t, ok, "isolated node should be swept")
	assert.Equal(t, 2, net.NodeCount(), "A and B should remain")
}

func TestOrganismsCheckRemovesMismatchedTaxaButExemptsComplexes(t *testing.T) {
	net := New()

	human := entity.New("P1", "uniprot", entity.Protein, 9606)
	mouse := entity.New("P2", "uniprot", entity.Protein, 10090)
	cpx := entity.New("CPX1", "complexportal", entity.Complex, 0)

	rec1 := EdgeRecord{
		A: human, B: mouse,
		Evidences: evidence.FromSlice(evidence.NewEvidence(evidence.Resource{Name: "r1"})),
		Directed:  false,
	}
	require.NoError(t, net.AddInteraction(rec1, false))

	rec2 := EdgeRecord{
		A: human, B: cpx,
		Evidences: evidence.FromSlice(evidence.NewEvidence(evidence.Resource{Name: "r1"})),
		Directed:  false,
	}
	require.NoError(t, net.AddInteraction(rec2, false))

	net.OrganismsCheck(OrganismsCheckOptions{Organisms: []int{9606}})

	_, ok := net.Node(human.Key)
	assert.True(t, ok, "human node should survive the 9606 allow-list")
	_, ok = net.Node(mouse.Key)
	assert.False(t, ok, "mouse node should be removed: taxon not in the allow-list")
	_, ok = net.Node(cpx.Key)
	assert.True(t, ok, "complex should be exempt from the taxon-membership check")
}

func TestAddInteractionOnlyDirectionsDropsDisjointSecondary(t *testing.T) {
	net := New()
	a := entity.New("A", "uniprot", entity.Protein, 9606)
	b := entity.New("B", "uniprot", entity.Protein, 9606)

	seed := EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(evidence.NewEvidence(evidence.Resource{Name: "r1", InteractionType: "ppi"})),
		Directed:  true,
		Src:       a, Tgt: b,
	}
	require.NoError(t, net.AddInteraction(seed, false))

	disjoint := EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(evidence.NewEvidence(evidence.Resource{
			Name: "r2", InteractionType: "transcriptional", Via: "r1",
		})),
		Directed: true,
		Src:      a, Tgt: b,
	}
	require.NoError(t, net.AddInteraction(disjoint, true))

	ia, ok := net.Interaction(a.Key, b.Key)
	require.True(t, ok)
	evs := ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
	assert.Equal(t, 1, evs.CountResources(), "disjoint secondary resource should have been dropped")
	assert.False(t, evs.Has(evidence.Resource{Name: "r2", InteractionType: "transcriptional", Via: "r1"}))

	matching := EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(evidence.NewEvidence(evidence.Resource{
			Name: "r3", InteractionType: "ppi", Via: "r1",
		})),
		Directed: true,
		Src:      a, Tgt: b,
	}
	require.NoError(t, net.AddInteraction(matching, true))

	evs = ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
	assert.Equal(t, 2, evs.CountResources(), "matching interaction-type secondary resource should be added")
}
