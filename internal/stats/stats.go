// Package stats implements per-resource group-by projections over a
// Network, plus the shared/unique/subtotal/percentage derivations built
// on top of them.
//
// Groups are keyed by an explicit StatKey struct rather than a
// string-joined tuple, so a group's parent is always another well-formed
// key instead of a substring match.
package stats

import (
	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
	"github.com/rohankatakam/interlace/internal/network"
)

// StatKey identifies one (interaction_type, data_model, resource) group.
// A zero field means "aggregated across that dimension" -- StatKey{} is
// the root (network-wide) key.
type StatKey struct {
	InteractionType string
	DataModel       string
	Resource        string
}

// Parent returns the key one level up the InteractionType -> DataModel ->
// Resource hierarchy, and whether key had a parent at all (false for the
// root key).
func (k StatKey) Parent() (StatKey, bool) {
	switch {
	case k.Resource != "":
		return StatKey{InteractionType: k.InteractionType, DataModel: k.DataModel}, true
	case k.DataModel != "":
		return StatKey{InteractionType: k.InteractionType}, true
	case k.InteractionType != "":
		return StatKey{}, true
	default:
		return StatKey{}, false
	}
}

// Set is a small generic set, used for every per-group projection.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Add(v T) { s[v] = struct{}{} }

func (s Set[T]) Union(other Set[T]) Set[T] {
	out := make(Set[T], len(s)+len(other))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

func (s Set[T]) Intersect(other Set[T]) Set[T] {
	out := make(Set[T])
	for v := range s {
		if _, ok := other[v]; ok {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sub returns s minus other's members.
func (s Set[T]) Sub(other Set[T]) Set[T] {
	out := make(Set[T])
	for v := range s {
		if _, ok := other[v]; !ok {
			out[v] = struct{}{}
		}
	}
	return out
}

// curationPair is one (reference, resource) pair, the unit curation
// effort is counted in.
type curationPair struct {
	Ref      evidence.Reference
	Resource string
}

// Group is one StatKey's set of collected projections.
type Group struct {
	Key StatKey

	Entities   Set[entity.Key]
	References Set[evidence.Reference]
	Curation   Set[curationPair]

	Interactions Set[interaction.PairKey]
	Directed     Set[interaction.PairKey]
	Positive     Set[interaction.PairKey]
	Negative     Set[interaction.PairKey]
	Mutual       Set[interaction.PairKey]
}

func newGroup(key StatKey) *Group {
	return &Group{
		Key:          key,
		Entities:     NewSet[entity.Key](),
		References:   NewSet[evidence.Reference](),
		Curation:     NewSet[curationPair](),
		Interactions: NewSet[interaction.PairKey](),
		Directed:     NewSet[interaction.PairKey](),
		Positive:     NewSet[interaction.PairKey](),
		Negative:     NewSet[interaction.PairKey](),
		Mutual:       NewSet[interaction.PairKey](),
	}
}

// Collect runs the collect_* group-by: for each interaction and
// each evidence it carries, fold the interaction's projections into every
// StatKey that evidence's resource is a member of (the resource's own
// group, its data-model group, and its interaction-type group).
func Collect(net *network.Network) map[StatKey]*Group {
	groups := make(map[StatKey]*Group)

	fetch := func(key StatKey) *Group {
		g, ok := groups[key]
		if !ok {
			g = newGroup(key)
			groups[key] = g
		}
		return g
	}

	for _, ia := range net.Interactions() {
		pairKey := ia.Key()
		all := ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
		byResource := make(map[string]evidence.Resource)
		for _, ev := range all.Slice() {
			byResource[ev.Resource.Name] = ev.Resource
		}

		isDirected := ia.IsDirected(nil)
		isMutual := ia.IsMutual(nil)
		isPositive := ia.IsStimulation(nil, nil)
		isNegative := ia.IsInhibition(nil, nil)

		for _, res := range byResource {
			keys := []StatKey{
				{},
				{InteractionType: res.InteractionType},
				{InteractionType: res.InteractionType, DataModel: res.DataModel},
				{InteractionType: res.InteractionType, DataModel: res.DataModel, Resource: res.Name},
			}
			ev, _ := all.Get(res)
			for _, key := range keys {
				g := fetch(key)
				g.Entities.Add(ia.A.Key)
				g.Entities.Add(ia.B.Key)
				g.Interactions.Add(pairKey)
				for ref := range ev.References {
					g.References.Add(ref)
					g.Curation.Add(curationPair{Ref: ref, Resource: res.Name})
				}
				if isDirected {
					g.Directed.Add(pairKey)
				}
				if isMutual {
					g.Mutual.Add(pairKey)
				}
				if isPositive {
					g.Positive.Add(pairKey)
				}
				if isNegative {
					g.Negative.Add(pairKey)
				}
			}
		}
	}
	return groups
}

// Summary holds the derived shared/unique/subtotal/percentage views,
// all keyed by StatKey, computed over the Entities
// projection; the same derivation applies identically to any other
// Group field.
type Summary struct {
	Shared      map[StatKey]Set[entity.Key]
	Unique      map[StatKey]Set[entity.Key]
	Subtotals   map[StatKey]Set[entity.Key]
	Percentages map[StatKey]float64
}

// UpdateSummaries computes Summary from a Collect result. The children map
// groups every non-root key by its parent, so "peers" means "other keys
// with the same parent".
func UpdateSummaries(groups map[StatKey]*Group) Summary {
	children := make(map[StatKey][]StatKey)
	for key := range groups {
		parent, ok := key.Parent()
		if !ok {
			continue
		}
		children[parent] = append(children[parent], key)
	}

	summary := Summary{
		Shared:      make(map[StatKey]Set[entity.Key]),
		Unique:      make(map[StatKey]Set[entity.Key]),
		Subtotals:   make(map[StatKey]Set[entity.Key]),
		Percentages: make(map[StatKey]float64),
	}

	for parent, siblings := range children {
		union := NewSet[entity.Key]()
		for _, sib := range siblings {
			union = union.Union(groups[sib].Entities)
		}
		summary.Subtotals[parent] = union

		for _, key := range siblings {
			own := groups[key].Entities
			others := NewSet[entity.Key]()
			for _, peer := range siblings {
				if peer == key {
					continue
				}
				others = others.Union(groups[peer].Entities)
			}
			summary.Shared[key] = own.Intersect(others)
			summary.Unique[key] = own.Sub(others)

			if len(union) > 0 {
				summary.Percentages[key] = float64(len(own)) / float64(len(union))
			}
		}
	}

	return summary
}
