package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
)

func mkEntities() (*entity.Entity, *entity.Entity) {
	a := entity.New("A", "uniprot", entity.Protein, 9606)
	b := entity.New("B", "uniprot", entity.Protein, 9606)
	return a, b
}

func res(name string) evidence.Resource {
	return evidence.Resource{Name: name, InteractionType: "post_translational", DataModel: "activity_flow"}
}

// S1: two resources, same edge, one directed, one undirected.
func TestScenarioS1DirectedAndUndirected(t *testing.T) {
	a, b := mkEntities()
	ia := New(a, b)

	require.NoError(t, ia.AddEvidence(evidence.NewEvidence(res("r1"), "100"), AB, NoEffect))
	require.NoError(t, ia.AddEvidence(evidence.NewEvidence(res("r2"), "200"), Undirected, NoEffect))

	assert.True(t, ia.IsDirected(nil), "expected interaction to be directed")
	assert.False(t, ia.IsMutual(nil), "expected interaction not to be mutual")

	abEv := ia.GetEvidences(SpecificDirection(AB), NoSignConstraint(), evidence.Filter{})
	assert.Equal(t, 1, abEv.CountResources())
	assert.True(t, abEv.References().Contains("100"), "expected AB slot to carry ref 100")

	undirEv := ia.GetEvidences(SpecificDirection(Undirected), NoSignConstraint(), evidence.Filter{})
	assert.True(t, undirEv.References().Contains("200"), "expected undirected slot to carry ref 200")
}

// S2: sign disagreement on the same direction.
func TestScenarioS2SignDisagreement(t *testing.T) {
	a, b := mkEntities()
	ia := New(a, b)

	require.NoError(t, ia.AddEvidence(evidence.NewEvidence(res("r1"), "1"), AB, Positive))
	require.NoError(t, ia.AddEvidence(evidence.NewEvidence(res("r2"), "2"), AB, Negative))

	assert.True(t, ia.HasSign(nil, nil))
	assert.True(t, ia.IsStimulation(nil, nil))
	assert.True(t, ia.IsInhibition(nil, nil))

	flags := ia.MajoritySign(MajorityOptions{})[AB]
	assert.True(t, flags.Positive && flags.Negative, "expected both sign flags set on a tie, got %+v", flags)

	rows := ia.Consensus(MajorityOptions{})
	var sawPos, sawNeg bool
	for _, row := range rows {
		require.True(t, row.Directed, "expected directed consensus rows, got %+v", row)
		switch row.Sign {
		case SignPositive:
			sawPos = true
		case SignNegative:
			sawNeg = true
		}
	}
	assert.True(t, sawPos && sawNeg, "expected both a positive and a negative consensus row, got %+v", rows)
}

func TestAddEvidenceRejectsEffectOnUndirected(t *testing.T) {
	a, b := mkEntities()
	ia := New(a, b)
	err := ia.AddEvidence(evidence.NewEvidence(res("r1"), "1"), Undirected, Positive)
	assert.Error(t, err, "expected error assigning effect to undirected evidence")
}

func TestMergeRejectsMismatchedEndpoints(t *testing.T) {
	a, b := mkEntities()
	c := entity.New("C", "uniprot", entity.Protein, 9606)
	ia := New(a, b)
	other := New(a, c)
	assert.Error(t, ia.Merge(other), "expected merge of mismatched endpoints to error")
}

func TestMajorityDirTieReturnsNilConsensus(t *testing.T) {
	a, b := mkEntities()
	ia := New(a, b)
	_ = ia.AddEvidence(evidence.NewEvidence(res("r1"), "1"), AB, NoEffect)
	_ = ia.AddEvidence(evidence.NewEvidence(res("r2"), "1"), BA, NoEffect)

	result := ia.MajorityDir(MajorityOptions{})
	assert.True(t, result.IsTie, "expected a tie, got %+v", result)
	assert.Nil(t, ia.Consensus(MajorityOptions{}), "expected no consensus rows on a direction tie")
}

func TestMajorityDirBothZeroIsUndirected(t *testing.T) {
	a, b := mkEntities()
	ia := New(a, b)
	result := ia.MajorityDir(MajorityOptions{})
	assert.True(t, result.IsUndirect, "expected undirected result on empty interaction, got %+v", result)

	rows := ia.Consensus(MajorityOptions{})
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Directed, "expected single undirected consensus row")
}
