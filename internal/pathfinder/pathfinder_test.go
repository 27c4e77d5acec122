package pathfinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/network"
)

func mustAddDirected(t *testing.T, net *network.Network, a, b *entity.Entity, resource string) {
	t.Helper()
	ev := evidence.NewEvidence(evidence.Resource{Name: resource})
	rec := network.EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(ev),
		Directed:  true,
		Src:       a, Tgt: b,
	}
	require.NoError(t, net.AddInteraction(rec, false))
}

func TestScenarioS5ThreeCycleLoop(t *testing.T) {
	a := entity.New("A", "uniprot", entity.Protein, 9606)
	b := entity.New("B", "uniprot", entity.Protein, 9606)
	c := entity.New("C", "uniprot", entity.Protein, 9606)

	net := network.New()
	mustAddDirected(t, net, a, b, "r1")
	mustAddDirected(t, net, b, c, "r1")
	mustAddDirected(t, net, c, a, "r1")

	paths := FindPaths(net, []entity.Key{a.Key}, Options{
		Loops:  true,
		MinLen: 2,
		MaxLen: 3,
		PerHop: []network.PartnerQuery{{Mode: network.PartnerOut}},
	})

	require.Lenf(t, paths, 1, "expected exactly one loop, got %+v", paths)
	got := paths[0]
	require.Len(t, got, 4, "expected a 4-node path [A,B,C,A]")

	wantOrder := []string{"A", "B", "C", "A"}
	for i, e := range got {
		assert.Equalf(t, wantOrder[i], e.Identifier, "path[%d]", i)
	}
}

func TestFindPathsToExplicitEnd(t *testing.T) {
	a := entity.New("A", "uniprot", entity.Protein, 9606)
	b := entity.New("B", "uniprot", entity.Protein, 9606)
	c := entity.New("C", "uniprot", entity.Protein, 9606)

	net := network.New()
	mustAddDirected(t, net, a, b, "r1")
	mustAddDirected(t, net, b, c, "r1")

	endKey := c.Key
	paths := FindPaths(net, []entity.Key{a.Key}, Options{
		End:    &endKey,
		MinLen: 1,
		MaxLen: 3,
		PerHop: []network.PartnerQuery{{Mode: network.PartnerOut}},
	})

	require.Lenf(t, paths, 1, "expected one path A->B->C, got %+v", paths)
	assert.Len(t, paths[0], 3)
}
