package network

import (
	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
)

// ReferenceChecker is the external reference-list lookup collaborator:
// check(identifier, id_type, taxon) -> bool.
type ReferenceChecker interface {
	Check(identifier, idType string, taxon int) bool
}

// nonspecificExempt holds the entity types OrganismsCheck exempts from the
// mismatch/nonspecific checks (complexes and lncRNAs routinely carry no
// single taxon).
var nonspecificExempt = map[entity.Type]struct{}{
	entity.Complex: {},
	entity.Lncrna:  {},
}

// OrganismsCheckOptions configures OrganismsCheck.
type OrganismsCheckOptions struct {
	Organisms         []int // empty: no taxon-membership constraint
	RemoveMismatches  bool
	RemoveNonspecific bool
	Checker           ReferenceChecker // required when RemoveMismatches is set
}

// OrganismsCheck drops nodes whose taxon isn't in Organisms, or
// (RemoveMismatches) whose identity fails the external reference-list
// check, or (RemoveNonspecific) whose taxon is zero, except entity types
// in nonspecificExempt.
func (n *Network) OrganismsCheck(opts OrganismsCheckOptions) {
	n.mu.Lock()
	defer n.mu.Unlock()

	allowed := make(map[int]struct{}, len(opts.Organisms))
	for _, t := range opts.Organisms {
		allowed[t] = struct{}{}
	}

	var toRemove []entity.Key
	for key, e := range n.nodes {
		if _, exempt := nonspecificExempt[e.EntityType]; exempt {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[e.Taxon]; !ok {
				toRemove = append(toRemove, key)
				continue
			}
		}
		if opts.RemoveNonspecific && e.Taxon == 0 {
			toRemove = append(toRemove, key)
			continue
		}
		if opts.RemoveMismatches && opts.Checker != nil {
			if !opts.Checker.Check(e.Identifier, e.IDType, e.Taxon) {
				toRemove = append(toRemove, key)
			}
		}
	}

	for _, key := range toRemove {
		n.removeNodeLocked(key)
	}
}

// PartnerMode selects which direction Partners walks, stated relative to
// the queried node: mode is inverted internally because "IN" means
// partners that point *into* the query node.
type PartnerMode int

const (
	PartnerIn PartnerMode = iota
	PartnerOut
	PartnerAll
)

// PartnerQuery bundles Partners' filter tuple.
type PartnerQuery struct {
	Mode            PartnerMode
	Direction       *interaction.Direction
	Effect          *interaction.Effect
	Resources       interaction.ResourceSet
	InteractionType *string
	DataModel       *string
	Via             *evidence.ViaFilter
	References      evidence.ReferenceSet
}

func (q PartnerQuery) evidenceFilter() evidence.Filter {
	return evidence.Filter{
		InteractionType: q.InteractionType,
		DataModel:       q.DataModel,
		Via:             q.Via,
		References:      q.References,
	}
}

// dirSelectorForMode resolves which of the interaction's direction slots are
// relevant to a PartnerMode query from the perspective of endpoint `from`,
// i.e. whether from is the interaction's A or B side.
func dirSelectorForMode(mode PartnerMode, fromIsA bool) interaction.DirSelector {
	switch mode {
	case PartnerAll:
		return interaction.AnyDirection()
	case PartnerOut:
		if fromIsA {
			return interaction.SpecificDirection(interaction.AB)
		}
		return interaction.SpecificDirection(interaction.BA)
	default: // PartnerIn
		if fromIsA {
			return interaction.SpecificDirection(interaction.BA)
		}
		return interaction.SpecificDirection(interaction.AB)
	}
}

func effSelectorFor(effect *interaction.Effect) interaction.EffSelector {
	if effect == nil {
		return interaction.NoSignConstraint()
	}
	switch *effect {
	case interaction.Positive:
		return interaction.OnlyPositive()
	case interaction.Negative:
		return interaction.OnlyNegative()
	default:
		return interaction.AnySign()
	}
}

// Partners walks every interaction incident on e, deciding (by mode,
// inverted relative to e) whether the other endpoint qualifies, after the
// evidence on that slot passes the supplied filter.
func (n *Network) Partners(key entity.Key, q PartnerQuery) []*entity.Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()

	neighbors := n.adjacency[key]
	seen := make(map[entity.Key]struct{}, len(neighbors))
	var out []*entity.Entity

	for otherKey := range neighbors {
		ia, ok := n.interactionLocked(key, otherKey)
		if !ok {
			continue
		}
		fromIsA := ia.A.Key == key
		dirSel := effectiveDirSelector(q, fromIsA, key == otherKey)
		effSel := effSelectorFor(q.Effect)

		evs := ia.GetEvidences(dirSel, effSel, q.evidenceFilter())
		if evs.IsEmpty() {
			continue
		}
		if len(q.Resources) > 0 && !q.Resources.Intersects(evs) {
			continue
		}

		var other *entity.Entity
		if fromIsA {
			other = ia.B
		} else {
			other = ia.A
		}
		if _, dup := seen[other.Key]; dup {
			continue
		}
		seen[other.Key] = struct{}{}
		out = append(out, other)
	}
	return out
}

// effectiveDirSelector honors an explicit Direction override (q.Direction)
// when given, otherwise derives the slot from q.Mode. Self-loops (a == b)
// are only retained when the caller asked for PartnerAll -- self-loops
// are otherwise folded into the undirected slot.
func effectiveDirSelector(q PartnerQuery, fromIsA, selfLoop bool) interaction.DirSelector {
	if q.Direction != nil {
		return interaction.SpecificDirection(*q.Direction)
	}
	if selfLoop && q.Mode != PartnerAll {
		return interaction.DirSelector{Mode: interaction.DirSpecific, Dir: interaction.Undirected}
	}
	return dirSelectorForMode(q.Mode, fromIsA)
}

// RemoveHTP computes how many interactions
// cite each reference; a reference is HTP when that count exceeds
// threshold. An interaction drops iff every one of its references is HTP
// and (not keepDirected or it is undirected).
func (n *Network) RemoveHTP(threshold int, keepDirected bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	refCounts := make(map[evidence.Reference]int)
	for _, ia := range n.interactions {
		for ref := range ia.GetReferences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{}) {
			refCounts[ref]++
		}
	}

	var toRemove []interaction.PairKey
	for key, ia := range n.interactions {
		refs := ia.GetReferences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
		if len(refs) == 0 {
			continue
		}
		allHTP := true
		for ref := range refs {
			if refCounts[ref] <= threshold {
				allHTP = false
				break
			}
		}
		if !allHTP {
			continue
		}
		if keepDirected && ia.IsDirected(nil) {
			continue
		}
		toRemove = append(toRemove, key)
	}

	for _, key := range toRemove {
		n.removeInteractionLocked(key.A, key.B)
		for _, k := range [2]entity.Key{key.A, key.B} {
			if len(n.adjacency[k]) == 0 {
				n.removeNodeLocked(k)
			}
		}
	}
}

// RemoveUndirected drops interactions that carry no directed evidence
// and, if minRefs > 0, whose reference count is below it.
func (n *Network) RemoveUndirected(minRefs int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var toRemove []interaction.PairKey
	for key, ia := range n.interactions {
		if ia.IsDirected(nil) {
			continue
		}
		if minRefs > 0 {
			refs := ia.GetReferences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
			if len(refs) >= minRefs {
				continue
			}
		}
		toRemove = append(toRemove, key)
	}

	for _, key := range toRemove {
		n.removeInteractionLocked(key.A, key.B)
		for _, k := range [2]entity.Key{key.A, key.B} {
			if len(n.adjacency[k]) == 0 {
				n.removeNodeLocked(k)
			}
		}
	}
}
