package snapshot

import (
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/network"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	a := entity.New("A", "uniprot", entity.Protein, 9606).WithLabel("Protein A")
	b := entity.New("B", "uniprot", entity.Protein, 9606)

	net := network.New()
	ref, _ := evidence.NormalizeReference("100")
	ev := evidence.NewEvidence(evidence.Resource{Name: "r1"}, ref)
	rec := network.EdgeRecord{
		A: a, B: b,
		Evidences: evidence.FromSlice(ev),
		Directed:  true,
		Src:       a, Tgt: b,
		Positive: true,
	}
	require.NoError(t, net.AddInteraction(rec, false))

	path := filepath.Join(t.TempDir(), "snap.db")
	gen, err := Save(path, net)
	require.NoError(t, err)
	assert.NotEmpty(t, gen.String(), "expected a non-empty generation id")

	loaded, loadedGen, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, gen, loadedGen, "generation id should round-trip")

	assert.Equal(t, 2, loaded.NodeCount())
	assert.Equal(t, 1, loaded.InteractionCount())

	labeled := loaded.NodesByLabel("Protein A")
	require.Len(t, labeled, 1, "expected label index to round-trip")
	assert.Equal(t, "A", labeled[0].Identifier)

	key1 := entity.Key{Identifier: "A", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	key2 := entity.Key{Identifier: "B", IDType: "uniprot", EntityType: entity.Protein, Taxon: 9606}
	ia, ok := loaded.Interaction(key1, key2)
	require.True(t, ok, "expected interaction to round-trip")
	assert.True(t, ia.IsStimulation(nil, nil), "expected positive evidence to round-trip")
}

func TestLoadRejectsMissingBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	// An empty bbolt file (no buckets created) should fail validation
	// rather than silently return an empty network.
	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	db.Close()

	_, _, err = Load(path)
	assert.Error(t, err, "expected Load to reject a file with no buckets")
}
