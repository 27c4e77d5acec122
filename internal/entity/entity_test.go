package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergePrefersExistingNonNilAndFillsLabel(t *testing.T) {
	a := New("P1", "uniprot", Protein, 9606)
	a.SetAttr("note", "from-r1")

	b := New("P1", "uniprot", Protein, 9606)
	b.WithLabel("EGFR")
	b.SetAttr("note", "from-r2")
	b.SetAttr("extra", "only-in-b")

	a.Merge(b)

	assert.Equal(t, "EGFR", a.Label, "expected label to be filled from b")
	assert.Equal(t, "from-r1", a.Attributes["note"], "expected a's attribute to win")
	assert.Equal(t, "only-in-b", a.Attributes["extra"], "expected b's unique attribute to be unioned in")

	// Label is stable once set: merging again with a different label must not change it.
	c := New("P1", "uniprot", Protein, 9606).WithLabel("OTHER")
	a.Merge(c)
	assert.Equal(t, "EGFR", a.Label, "expected label to stay stable")
}

func TestLessCanonicalOrdering(t *testing.T) {
	a := New("A", "uniprot", Protein, 9606)
	b := New("B", "uniprot", Protein, 9606)
	assert.True(t, a.Less(b), "expected A < B")
	assert.False(t, b.Less(a), "expected B not < A")
}
