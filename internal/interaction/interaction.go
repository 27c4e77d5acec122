// Package interaction implements the merged per-pair edge of the
// interaction network: four evidence slots (undirected, A->B, B->A, plus
// their signed sub-projections) and the evidence algebra built on them.
package interaction

import (
	"fmt"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
)

// Direction names one of the three evidence-slot keys an Interaction
// carries: assertion from A to B, from B to A, or without direction.
type Direction int

const (
	AB Direction = iota
	BA
	Undirected
)

func (d Direction) String() string {
	switch d {
	case AB:
		return "a->b"
	case BA:
		return "b->a"
	case Undirected:
		return "undirected"
	default:
		return "invalid"
	}
}

// Opposite returns the reverse of a directed key; Undirected maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case AB:
		return BA
	case BA:
		return AB
	default:
		return Undirected
	}
}

// Effect names the sign of an assertion.
type Effect int

const (
	NoEffect Effect = 0
	Positive Effect = 1
	Negative Effect = -1
)

// Interaction is the merged edge for one unordered endpoint pair.
// A and B are fixed at construction under the canonical ordering
// (A.Less(B) or equal); they are never reassigned afterward.
type Interaction struct {
	A, B *entity.Entity

	evidences evidence.Evidences
	direction map[Direction]evidence.Evidences
	positive  map[Direction]evidence.Evidences
	negative  map[Direction]evidence.Evidences
}

// New builds an empty Interaction over a and b, canonicalizing their order.
func New(a, b *entity.Entity) *Interaction {
	if b.Less(a) {
		a, b = b, a
	}
	return &Interaction{
		A:         a,
		B:         b,
		evidences: evidence.New(),
		direction: map[Direction]evidence.Evidences{AB: evidence.New(), BA: evidence.New(), Undirected: evidence.New()},
		positive:  map[Direction]evidence.Evidences{AB: evidence.New(), BA: evidence.New()},
		negative:  map[Direction]evidence.Evidences{AB: evidence.New(), BA: evidence.New()},
	}
}

// PairKey identifies the unordered endpoint pair, using the canonical
// (A,B) order so it can serve as a Network map key.
type PairKey struct {
	A, B entity.Key
}

// Key returns this Interaction's PairKey.
func (ia *Interaction) Key() PairKey {
	return PairKey{A: ia.A.Key, B: ia.B.Key}
}

// AddEvidence routes ev into the slot named by dir (and, if effect is
// non-zero, the matching sign slot too): every Evidence added to a sign
// slot also lands in the matching direction slot and in the aggregate
// evidences index.
//
// AddEvidence returns an error (and makes no change) if dir is not one of
// AB, BA, Undirected, or if effect is non-zero while dir is Undirected --
// signs are only meaningful for a directed assertion.
func (ia *Interaction) AddEvidence(ev evidence.Evidence, dir Direction, effect Effect) error {
	switch dir {
	case AB, BA:
	case Undirected:
		if effect != NoEffect {
			return fmt.Errorf("interaction: cannot assign effect %v to undirected evidence", effect)
		}
	default:
		return fmt.Errorf("interaction: invalid direction %v", dir)
	}

	ia.evidences.Add(ev)
	ia.direction[dir].Add(ev)

	switch effect {
	case Positive:
		ia.positive[dir].Add(ev)
	case Negative:
		ia.negative[dir].Add(ev)
	case NoEffect:
	default:
		return fmt.Errorf("interaction: invalid effect %v", effect)
	}
	return nil
}

// Merge folds other's evidence slots into ia. It requires ia and other to
// share the same endpoint Key pair; a mismatch is reported as a non-nil
// error and otherwise a no-op rather than a panic.
func (ia *Interaction) Merge(other *Interaction) error {
	if ia.Key() != other.Key() {
		return fmt.Errorf("interaction: cannot merge mismatched endpoints %+v != %+v", ia.Key(), other.Key())
	}
	ia.A.Merge(other.A)
	ia.B.Merge(other.B)
	ia.evidences.AddAll(other.evidences)
	for dir, evs := range other.direction {
		ia.direction[dir].AddAll(evs)
	}
	for dir, evs := range other.positive {
		ia.positive[dir].AddAll(evs)
	}
	for dir, evs := range other.negative {
		ia.negative[dir].AddAll(evs)
	}
	return nil
}

// DirMode selects how GetEvidences scopes by direction.
type DirMode int

const (
	// DirAll imposes no direction constraint.
	DirAll DirMode = iota
	// DirBothDirected unions the AB and BA slots.
	DirBothDirected
	// DirSpecific selects exactly one slot.
	DirSpecific
)

// DirSelector is the direction argument of GetEvidences.
type DirSelector struct {
	Mode DirMode
	Dir  Direction // used when Mode == DirSpecific
}

// AnyDirection requests no direction constraint.
func AnyDirection() DirSelector { return DirSelector{Mode: DirAll} }

// BothDirected requests the union of the AB and BA slots.
func BothDirected() DirSelector { return DirSelector{Mode: DirBothDirected} }

// SpecificDirection requests exactly one direction slot.
func SpecificDirection(d Direction) DirSelector { return DirSelector{Mode: DirSpecific, Dir: d} }

// EffMode selects how GetEvidences scopes by sign.
type EffMode int

const (
	// EffNone imposes no sign constraint: evidence comes from the direction
	// slots, ignoring sign entirely.
	EffNone EffMode = iota
	// EffAny unions positive and negative across directions.
	EffAny
	EffPositiveOnly
	EffNegativeOnly
)

// EffSelector is the effect argument of GetEvidences.
type EffSelector struct {
	Mode EffMode
}

func NoSignConstraint() EffSelector      { return EffSelector{Mode: EffNone} }
func AnySign() EffSelector               { return EffSelector{Mode: EffAny} }
func OnlyPositive() EffSelector          { return EffSelector{Mode: EffPositiveOnly} }
func OnlyNegative() EffSelector          { return EffSelector{Mode: EffNegativeOnly} }

// GetEvidences returns a filtered Evidences view scoped by direction and
// sign, further narrowed by an evidence.Filter.
func (ia *Interaction) GetEvidences(dirSel DirSelector, effSel EffSelector, extra evidence.Filter) evidence.Evidences {
	var base evidence.Evidences

	if effSel.Mode == EffNone {
		base = evidence.New()
		for _, d := range ia.directionsFor(dirSel, true) {
			base.AddAll(ia.direction[d])
		}
	} else {
		signMaps := ia.signMapsFor(effSel)
		base = evidence.New()
		for _, d := range ia.directionsFor(dirSel, false) {
			for _, m := range signMaps {
				base.AddAll(m[d])
			}
		}
	}

	return base.Filter(extra)
}

// directionsFor returns which direction keys participate, given a
// selector. includeUndirected controls whether DirAll/DirSpecific may
// yield Undirected (true for the no-sign-constraint case; sign slots never
// have an Undirected entry).
func (ia *Interaction) directionsFor(sel DirSelector, includeUndirected bool) []Direction {
	switch sel.Mode {
	case DirSpecific:
		if sel.Dir == Undirected && !includeUndirected {
			return nil
		}
		return []Direction{sel.Dir}
	case DirBothDirected:
		return []Direction{AB, BA}
	default: // DirAll
		if includeUndirected {
			return []Direction{AB, BA, Undirected}
		}
		return []Direction{AB, BA}
	}
}

func (ia *Interaction) signMapsFor(sel EffSelector) []map[Direction]evidence.Evidences {
	switch sel.Mode {
	case EffPositiveOnly:
		return []map[Direction]evidence.Evidences{ia.positive}
	case EffNegativeOnly:
		return []map[Direction]evidence.Evidences{ia.negative}
	default: // EffAny
		return []map[Direction]evidence.Evidences{ia.positive, ia.negative}
	}
}

// GetReferences, GetResources, GetResourceNames and GetCurationEffort are
// convenience projections of GetEvidences.
func (ia *Interaction) GetReferences(dirSel DirSelector, effSel EffSelector, extra evidence.Filter) evidence.ReferenceSet {
	return ia.GetEvidences(dirSel, effSel, extra).References()
}

func (ia *Interaction) GetResourceNames(dirSel DirSelector, effSel EffSelector, extra evidence.Filter) []string {
	return ia.GetEvidences(dirSel, effSel, extra).ResourceNames()
}

func (ia *Interaction) GetCurationEffort(dirSel DirSelector, effSel EffSelector, extra evidence.Filter) int {
	return ia.GetEvidences(dirSel, effSel, extra).CountCurationEffort()
}

// ResourceSet is a small helper for the *_by_resource query forms.
type ResourceSet map[string]struct{}

func NewResourceSet(names ...string) ResourceSet {
	s := make(ResourceSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s ResourceSet) intersects(ev evidence.Evidences) bool {
	if len(s) == 0 {
		return !ev.IsEmpty()
	}
	return s.Intersects(ev)
}

// Intersects reports whether any resource name in ev is a member of s,
// ignoring emptiness of s (an empty set never intersects). Exported for
// callers (e.g. Network.Partners) that already know they want a strict
// membership test rather than intersects' "empty means everything" rule.
func (s ResourceSet) Intersects(ev evidence.Evidences) bool {
	for _, name := range ev.ResourceNames() {
		if _, ok := s[name]; ok {
			return true
		}
	}
	return false
}

// IsDirected reports whether this interaction has any directed assertion
// (either AB or BA non-empty). If resources is non-empty, directedness also
// requires that either direction's evidence intersect the resource set
// (the "OR" form).
func (ia *Interaction) IsDirected(resources ResourceSet) bool {
	return resources.intersects(ia.direction[AB]) || resources.intersects(ia.direction[BA])
}

// IsMutual reports whether both AB and BA carry directed evidence. If
// resources is non-empty, both directions must intersect it (the "AND" form).
func (ia *Interaction) IsMutual(resources ResourceSet) bool {
	return resources.intersects(ia.direction[AB]) && resources.intersects(ia.direction[BA])
}

// IsStimulation reports whether a positive assertion exists. If dir is
// nil, either direction qualifies; if resources is non-empty, the positive
// evidence for the checked direction(s) must intersect it.
func (ia *Interaction) IsStimulation(dir *Direction, resources ResourceSet) bool {
	return ia.hasEffect(ia.positive, dir, resources)
}

// IsInhibition is IsStimulation's negative-sign counterpart.
func (ia *Interaction) IsInhibition(dir *Direction, resources ResourceSet) bool {
	return ia.hasEffect(ia.negative, dir, resources)
}

func (ia *Interaction) hasEffect(slots map[Direction]evidence.Evidences, dir *Direction, resources ResourceSet) bool {
	if dir != nil {
		return resources.intersects(slots[*dir])
	}
	return resources.intersects(slots[AB]) || resources.intersects(slots[BA])
}

// HasSign is the canonical, direction-aware form: it forwards dir/resources
// consistently to both IsStimulation and IsInhibition rather than
// recomputing without them.
func (ia *Interaction) HasSign(dir *Direction, resources ResourceSet) bool {
	return ia.IsStimulation(dir, resources) || ia.IsInhibition(dir, resources)
}

// String renders a short debugging form of the interaction.
func (ia *Interaction) String() string {
	return fmt.Sprintf("%s <-> %s (%d evidences)", ia.A.Identifier, ia.B.Identifier, ia.evidences.CountResources())
}
