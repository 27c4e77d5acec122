package dataframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/network"
)

func TestBuildPerSourceEmitsOneRowPerResource(t *testing.T) {
	a := entity.New("A", "uniprot", entity.Protein, 9606)
	b := entity.New("B", "uniprot", entity.Protein, 9606)

	net := network.New()
	ref, _ := evidence.NormalizeReference("1")
	ev1 := evidence.NewEvidence(evidence.Resource{Name: "r1", InteractionType: "ppi", DataModel: "interaction"}, ref)
	ev2 := evidence.NewEvidence(evidence.Resource{Name: "r2", InteractionType: "ppi", DataModel: "interaction"}, ref)

	rec := network.EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(ev1, ev2),
		Directed:  true,
		Src:       a, Tgt: b,
		Positive: true,
	}
	require.NoError(t, net.AddInteraction(rec, false))

	rows := Build(net, PerSource)
	assert.Lenf(t, rows, 4, "expected 4 rows (2 resources x [AB no-sign, AB positive]), got %+v", rows)

	merged := Build(net, Merged)
	assert.Lenf(t, merged, 2, "expected 2 merged rows (AB no-sign, AB positive), got %+v", merged)
	for _, row := range merged {
		assert.Equal(t, "r1,r2", row.Sources, "expected merged sources set r1,r2")
	}
}
