// Package network implements the in-memory interaction store: the
// node/interaction/adjacency maps and the operations that mutate and
// query them.
package network

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
	"github.com/rohankatakam/interlace/internal/logging"
)

// Network holds every node and merged interaction currently loaded, plus
// the adjacency index used to make neighbor and cascade-removal queries
// cheap.
type Network struct {
	mu sync.RWMutex

	nodes        map[entity.Key]*entity.Entity
	nodesByLabel map[string]map[entity.Key]struct{}
	interactions map[interaction.PairKey]*interaction.Interaction
	adjacency    map[entity.Key]map[entity.Key]struct{}

	log *logging.Logger
}

// New returns an empty Network.
func New() *Network {
	log, _ := logging.New(logging.DefaultConfig())
	return &Network{
		nodes:        make(map[entity.Key]*entity.Entity),
		nodesByLabel: make(map[string]map[entity.Key]struct{}),
		interactions: make(map[interaction.PairKey]*interaction.Interaction),
		adjacency:    make(map[entity.Key]map[entity.Key]struct{}),
		log:          log,
	}
}

// Reset empties all four maps, returning the Network to a fresh state.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes = make(map[entity.Key]*entity.Entity)
	n.nodesByLabel = make(map[string]map[entity.Key]struct{})
	n.interactions = make(map[interaction.PairKey]*interaction.Interaction)
	n.adjacency = make(map[entity.Key]map[entity.Key]struct{})
}

// EdgeRecord is one fully-resolved contribution an Ingestor emits: a pair
// of endpoints, the evidence it carries, and the direction/sign slots it
// should be routed into.
type EdgeRecord struct {
	A, B *entity.Entity

	Evidences evidence.Evidences

	// Directed is false when is_directed evaluated to false for this row;
	// in that case Src/Tgt are ignored and the evidence lands in the
	// Undirected slot.
	Directed bool
	Src, Tgt *entity.Entity // raw row order, before canonicalization

	Positive bool
	Negative bool
}

func (n *Network) registerNode(e *entity.Entity) *entity.Entity {
	if existing, ok := n.nodes[e.Key]; ok {
		existing.Merge(e)
		return existing
	}
	n.nodes[e.Key] = e
	if e.Label != "" {
		if n.nodesByLabel[e.Label] == nil {
			n.nodesByLabel[e.Label] = make(map[entity.Key]struct{})
		}
		n.nodesByLabel[e.Label][e.Key] = struct{}{}
	}
	return e
}

func (n *Network) linkAdjacency(a, b entity.Key) {
	if n.adjacency[a] == nil {
		n.adjacency[a] = make(map[entity.Key]struct{})
	}
	if n.adjacency[b] == nil {
		n.adjacency[b] = make(map[entity.Key]struct{})
	}
	n.adjacency[a][b] = struct{}{}
	n.adjacency[b][a] = struct{}{}
}

// AddInteraction runs the add_interaction / emission and only_directions
// mode logic. rec.A/rec.B need not already be canonically ordered;
// AddInteraction builds (or looks up) the Interaction for their pair and
// routes rec's evidence into the right slots. Under only_directions, a
// pair with no existing interaction is skipped entirely, and a secondary
// resource whose interaction type is disjoint from the existing
// interaction's is dropped rather than augmenting it.
func (n *Network) AddInteraction(rec EdgeRecord, onlyDirections bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := interaction.New(rec.A, rec.B).Key()
	existing, present := n.interactions[key]

	if onlyDirections && !present {
		return nil
	}

	a := n.registerNode(rec.A)
	b := n.registerNode(rec.B)

	if !present {
		ia := interaction.New(a, b)
		n.interactions[key] = ia
		n.linkAdjacency(a.Key, b.Key)
		existing = ia
	} else if onlyDirections {
		rec.Evidences = dropDisjointSecondary(existing, rec.Evidences)
	}

	return routeEvidence(existing, rec)
}

// dropDisjointSecondary implements only_directions' interaction-type guard:
// a secondary resource whose interaction type doesn't intersect the set
// already present on existing is dropped rather than augmenting it. Primary
// resources and existing interactions with no typed evidence yet are never
// filtered.
func dropDisjointSecondary(existing *interaction.Interaction, evs evidence.Evidences) evidence.Evidences {
	types := existingInteractionTypes(existing)
	if len(types) == 0 {
		return evs
	}
	out := evidence.New()
	for _, ev := range evs.Slice() {
		if ev.Resource.IsSecondary() {
			if _, ok := types[ev.Resource.InteractionType]; !ok {
				continue
			}
		}
		out.Add(ev)
	}
	return out
}

func existingInteractionTypes(ia *interaction.Interaction) map[string]struct{} {
	evs := ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{})
	out := make(map[string]struct{})
	for _, ev := range evs.Slice() {
		if ev.Resource.InteractionType != "" {
			out[ev.Resource.InteractionType] = struct{}{}
		}
	}
	return out
}

func routeEvidence(ia *interaction.Interaction, rec EdgeRecord) error {
	for _, ev := range rec.Evidences.Slice() {
		if !rec.Directed {
			if err := ia.AddEvidence(ev, interaction.Undirected, interaction.NoEffect); err != nil {
				return err
			}
			continue
		}

		dir := interaction.AB
		if rec.Src != nil && rec.Src.Key != ia.A.Key {
			dir = interaction.BA
		}

		effect := interaction.NoEffect
		switch {
		case rec.Positive:
			effect = interaction.Positive
		case rec.Negative:
			effect = interaction.Negative
		}
		if err := ia.AddEvidence(ev, dir, effect); err != nil {
			return err
		}
		if rec.Positive && rec.Negative {
			if err := ia.AddEvidence(ev, dir, interaction.Negative); err != nil {
				return err
			}
		}
	}
	return nil
}

// Loader produces EdgeRecords for one resource, matching the Ingestor's
// role as Network's upstream collaborator (kept as an interface here to
// avoid a network->ingest import cycle).
type Loader interface {
	Load(n *Network) error
}

// Load invokes each Loader in turn, honoring an exclude name-set the
// caller has already applied when building loaders.
func (n *Network) Load(loaders ...Loader) error {
	for _, l := range loaders {
		if err := l.Load(n); err != nil {
			return err
		}
	}
	return nil
}

// LoadParallel runs each loader against its own empty Network concurrently,
// then merges every result into n sequentially -- merging stays
// single-threaded to preserve the node/interaction/adjacency invariants.
func (n *Network) LoadParallel(ctx context.Context, loaders ...Loader) error {
	partials := make([]*Network, len(loaders))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range loaders {
		i, l := i, l
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			partial := New()
			if err := l.Load(partial); err != nil {
				return err
			}
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, p := range partials {
		if p == nil {
			continue
		}
		n.mergeLocked(p)
	}
	return nil
}

func (n *Network) mergeLocked(other *Network) {
	for _, e := range other.nodes {
		n.registerNode(e)
	}
	for key, ia := range other.interactions {
		if existing, ok := n.interactions[key]; ok {
			existing.Merge(ia)
		} else {
			n.interactions[key] = ia
			n.linkAdjacency(key.A, key.B)
		}
	}
}

// Nodes returns every node currently loaded.
func (n *Network) Nodes() []*entity.Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*entity.Entity, 0, len(n.nodes))
	for _, e := range n.nodes {
		out = append(out, e)
	}
	return out
}

// RegisterNodeForLoad inserts a fully-formed node directly, bypassing
// AddInteraction's emission path. Used by snapshot restore, where nodes
// arrive already merged and just need to repopulate the indexes.
func (n *Network) RegisterNodeForLoad(e *entity.Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registerNode(e)
}

// RegisterInteractionForLoad inserts a fully-formed interaction directly,
// bypassing AddInteraction's only_directions/emission logic. Used by
// snapshot restore, where the interaction's evidence slots have already
// been rebuilt.
func (n *Network) RegisterInteractionForLoad(ia *interaction.Interaction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := ia.Key()
	n.interactions[key] = ia
	n.linkAdjacency(key.A, key.B)
}

// Node resolves a single node by Key.
func (n *Network) Node(key entity.Key) (*entity.Entity, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	e, ok := n.nodes[key]
	return e, ok
}

// NodesByLabel resolves every node sharing a display label.
func (n *Network) NodesByLabel(label string) []*entity.Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := n.nodesByLabel[label]
	out := make([]*entity.Entity, 0, len(keys))
	for k := range keys {
		out = append(out, n.nodes[k])
	}
	return out
}

// Interactions returns every merged interaction currently loaded.
func (n *Network) Interactions() []*interaction.Interaction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*interaction.Interaction, 0, len(n.interactions))
	for _, ia := range n.interactions {
		out = append(out, ia)
	}
	return out
}

// NodeCount and InteractionCount are the vcount/ecount of the network.
func (n *Network) NodeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.nodes)
}

func (n *Network) InteractionCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.interactions)
}

// Interaction looks up the merged interaction for a pair, regardless of
// argument order.
func (n *Network) Interaction(a, b entity.Key) (*interaction.Interaction, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.interactionLocked(a, b)
}

func (n *Network) interactionLocked(a, b entity.Key) (*interaction.Interaction, bool) {
	if ia, ok := n.interactions[interaction.PairKey{A: a, B: b}]; ok {
		return ia, true
	}
	ia, ok := n.interactions[interaction.PairKey{A: b, B: a}]
	return ia, ok
}

// RemoveNode removes the node at key, cascades to every incident
// interaction, and removes any other endpoint left at zero degree.
func (n *Network) RemoveNode(key entity.Key) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removeNodeLocked(key)
}

func (n *Network) removeNodeLocked(key entity.Key) {
	neighbors := n.adjacency[key]
	delete(n.adjacency, key)
	if e, ok := n.nodes[key]; ok && e.Label != "" {
		delete(n.nodesByLabel[e.Label], key)
	}
	delete(n.nodes, key)

	for other := range neighbors {
		delete(n.adjacency[other], key)
		n.removeInteractionLocked(key, other)
		if len(n.adjacency[other]) == 0 {
			n.removeNodeLocked(other)
		}
	}
}

// RemoveInteraction pops both canonical orderings defensively, updates
// adjacency, and cascades isolated endpoints.
func (n *Network) RemoveInteraction(a, b entity.Key) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removeInteractionLocked(a, b)

	for _, key := range [2]entity.Key{a, b} {
		if len(n.adjacency[key]) == 0 {
			n.removeNodeLocked(key)
		}
	}
}

func (n *Network) removeInteractionLocked(a, b entity.Key) {
	delete(n.interactions, interaction.PairKey{A: a, B: b})
	delete(n.interactions, interaction.PairKey{A: b, B: a})
	if n.adjacency[a] != nil {
		delete(n.adjacency[a], b)
	}
	if n.adjacency[b] != nil {
		delete(n.adjacency[b], a)
	}
}

// RemoveZeroDegree sweeps the adjacency index and removes nodes whose
// neighbor set is empty.
func (n *Network) RemoveZeroDegree() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for key, neighbors := range n.adjacency {
		if len(neighbors) == 0 {
			n.removeNodeLocked(key)
		}
	}
	for key := range n.nodes {
		if _, ok := n.adjacency[key]; !ok {
			n.removeNodeLocked(key)
		}
	}
}
