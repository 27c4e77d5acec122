package ingest

import (
	"strings"

	"github.com/rohankatakam/interlace/internal/entity"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/logging"
	"github.com/rohankatakam/interlace/internal/network"
	"github.com/rohankatakam/interlace/internal/schema"
)

// Stats accumulates typed counters for a run: every rejecting pipeline
// step increments its own counter rather than a generic "dropped" total,
// so a caller can tell a malformed column from a failed filter from a
// mapping miss.
type Stats struct {
	RowsTotal     int
	RowsProcessed int
	EdgesEmitted  int

	SchemaErrors int
	ParseErrors  int

	FilterDrops      int
	NoReferenceDrops int
	TaxonDrops       int

	MappingMisses int
	Unmapped      []string
}

func (s *Stats) recordUnmapped(raw string) {
	s.MappingMisses++
	s.Unmapped = append(s.Unmapped, raw)
}

// Ingestor ties a Source, an InputSchema, and a Translator together and
// runs the row-to-record pipeline end to end, per-row, emitting
// EdgeRecords into a target Network.
type Ingestor struct {
	Schema     schema.InputSchema
	Translator *Translator
	Source     Source
	KeepNoref  bool // global override for schema.MustHaveReferences

	stats Stats
	log   *logging.Logger
}

// NewIngestor builds an Ingestor for one resource.
func NewIngestor(s schema.InputSchema, t *Translator, src Source) *Ingestor {
	log, _ := logging.New(logging.DefaultConfig())
	return &Ingestor{Schema: s, Translator: t, Source: src, log: log}
}

// Load implements network.Loader, letting an Ingestor be passed directly
// to Network.Load/LoadParallel.
func (ing *Ingestor) Load(net *network.Network) error {
	return ing.Run(net, ing.Source)
}

// Stats returns the counters accumulated by the most recent Run.
func (ing *Ingestor) Stats() Stats { return ing.stats }

// Run executes the full ingest pipeline against src, applying every
// resulting EdgeRecord to net. The schema's OnlyDirections flag forwards
// to Network.AddInteraction's only_directions mode: no new interactions
// are created, only existing ones augmented.
func (ing *Ingestor) Run(net *network.Network, src Source) error {
	ing.stats = Stats{}

	rows, err := src.Rows()
	if err != nil {
		ing.log.Error("ingest: failed to read rows", "resource", ing.Schema.ResourceKey, "error", err)
		ing.stats.SchemaErrors++
		return err
	}

	for i, row := range rows {
		ing.stats.RowsTotal++
		if isBlank(row) {
			continue
		}
		if ing.Schema.Header && i == 0 {
			continue
		}
		if err := ing.processRow(net, row); err != nil {
			ing.stats.ParseErrors++
			ing.log.Warn("ingest: dropping row", "resource", ing.Schema.ResourceKey, "row", i, "error", err)
			continue
		}
		ing.stats.RowsProcessed++
	}

	return nil
}

func (ing *Ingestor) processRow(net *network.Network, row RawRow) error {
	s := ing.Schema
	tokens := tokenize(row, s.Separator)

	ok, err := passesFilters(tokens, s.PositiveFilters, s.NegativeFilters)
	if err != nil {
		return err
	}
	if !ok {
		ing.stats.FilterDrops++
		return nil
	}

	directed, err := extractDirected(tokens, s.Directed)
	if err != nil {
		return err
	}
	positive, negative, directedBySign, err := extractSign(tokens, s.Sign)
	if err != nil {
		return err
	}
	directed = directed || directedBySign

	refs, err := extractRefs(tokens, s.Refs)
	if err != nil {
		return err
	}
	mustHaveRefs := s.MustHaveReferences && !ing.KeepNoref
	if mustHaveRefs && len(refs) == 0 {
		ing.stats.NoReferenceDrops++
		return nil
	}

	taxonA, taxonB, err := extractTaxa(tokens, s.Taxon)
	if err != nil {
		return err
	}
	if !taxonA.Ok || !taxonB.Ok {
		ing.stats.TaxonDrops++
		return nil
	}

	rawA, err := cell(tokens, s.IDColA)
	if err != nil {
		return err
	}
	rawB, err := cell(tokens, s.IDColB)
	if err != nil {
		return err
	}
	rawA, rawB = strings.TrimSpace(rawA), strings.TrimSpace(rawB)

	secondaryNames, err := extractResources(tokens, s.Resource)
	if err != nil {
		return err
	}
	primaryName := s.ResourceKey
	if s.Resource.Mode == schema.ResourceFixedName {
		primaryName = s.Resource.Name
	}

	edgeAttrs, err := extractAttrs(tokens, s.ExtraEdgeAttrs)
	if err != nil {
		return err
	}
	attrsA, err := extractAttrs(tokens, s.ExtraNodeAttrsA)
	if err != nil {
		return err
	}
	attrsB, err := extractAttrs(tokens, s.ExtraNodeAttrsB)
	if err != nil {
		return err
	}

	resources := buildResources(primaryName, secondaryNames, s.InteractionType, s.DataModel)
	evs := buildEvidences(resources, refs)

	pairs, unmappedA, unmappedB := ing.Translator.Expand(
		rawA, s.IDTypeA, entity.Type(s.EntityTypeA), taxonA.Taxon,
		rawB, s.IDTypeB, entity.Type(s.EntityTypeB), taxonB.Taxon,
		s.ExpandComplexes,
	)
	if unmappedA {
		ing.stats.recordUnmapped(rawA)
	}
	if unmappedB {
		ing.stats.recordUnmapped(rawB)
	}
	if unmappedA || unmappedB {
		return nil
	}

	for _, pair := range pairs {
		srcEntity := entity.New(pair[0], s.IDTypeA, entity.Type(s.EntityTypeA), taxonA.Taxon)
		tgtEntity := entity.New(pair[1], s.IDTypeB, entity.Type(s.EntityTypeB), taxonB.Taxon)
		applyAttrs(srcEntity, attrsA)
		applyAttrs(tgtEntity, attrsB)
		applyAttrs(srcEntity, edgeAttrs)

		rec := network.EdgeRecord{
			A: srcEntity, B: tgtEntity,
			Evidences: evs,
			Directed:  directed,
			Src:       srcEntity, Tgt: tgtEntity,
			Positive: positive, Negative: negative,
		}
		if err := net.AddInteraction(rec, s.OnlyDirections); err != nil {
			return err
		}
		ing.stats.EdgesEmitted++
	}
	return nil
}

// buildResources builds the primary NetworkResource from the schema's own
// interaction_type/data_model, then propagates those same two fields onto
// every secondary resource derived from the row (a secondary resource
// inherits its primary's typing; nothing in the row overrides it).
func buildResources(primaryName string, secondaryNames []string, interactionType, dataModel string) []evidence.Resource {
	out := make([]evidence.Resource, 0, 1+len(secondaryNames))
	out = append(out, evidence.Resource{Name: primaryName, InteractionType: interactionType, DataModel: dataModel})
	for _, name := range secondaryNames {
		out = append(out, evidence.Resource{Name: name, InteractionType: interactionType, DataModel: dataModel, Via: primaryName})
	}
	return out
}

func buildEvidences(resources []evidence.Resource, refs evidence.ReferenceSet) evidence.Evidences {
	evs := evidence.New()
	for _, res := range resources {
		evs.Add(evidence.Evidence{Resource: res, References: refs.Clone()})
	}
	return evs
}

func applyAttrs(e *entity.Entity, attrs map[string]any) {
	for k, v := range attrs {
		e.SetAttr(k, v)
	}
}
