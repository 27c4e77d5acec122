// Package dataframe flattens a Network's interactions into rows suitable
// for an external export layer (CSV, parquet, ...) to consume. Writing
// the rows anywhere is out of scope here -- this package only produces
// them.
package dataframe

import (
	"sort"
	"strings"

	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
	"github.com/rohankatakam/interlace/internal/network"
)

// Row is one projected record:
// (id_a, id_b, type_a, type_b, effect, type, dmodel, sources, references).
type Row struct {
	IDA, IDB     string
	TypeA, TypeB string
	Effect       int // -1, 0, 1
	Type         string
	DModel       string // scalar in per-source mode, a serialized set in merged mode
	Sources      string // same
	References   string // reference ids: semicolon-joined in per-source mode, sorted and comma-joined in merged mode
}

// Mode selects how Sources/DModel are produced.
type Mode int

const (
	// PerSource yields one row per contributing resource (scalar Sources/DModel).
	PerSource Mode = iota
	// Merged yields one row per (direction, sign) assertion with Sources/DModel
	// serialized as a sorted, comma-joined set.
	Merged
)

// Build projects every interaction in net into rows: one record per
// (direction, sign) assertion that carries evidence.
func Build(net *network.Network, mode Mode) []Row {
	var rows []Row
	for _, ia := range net.Interactions() {
		rows = append(rows, buildInteractionRows(ia, mode)...)
	}
	return rows
}

type assertionSlot struct {
	dir    interaction.Direction
	effect int
	sel    interaction.EffSelector
}

var assertionSlots = []assertionSlot{
	{interaction.Undirected, 0, interaction.NoSignConstraint()},
	{interaction.AB, 0, interaction.NoSignConstraint()},
	{interaction.BA, 0, interaction.NoSignConstraint()},
	{interaction.AB, 1, interaction.OnlyPositive()},
	{interaction.AB, -1, interaction.OnlyNegative()},
	{interaction.BA, 1, interaction.OnlyPositive()},
	{interaction.BA, -1, interaction.OnlyNegative()},
}

func buildInteractionRows(ia *interaction.Interaction, mode Mode) []Row {
	var rows []Row
	for _, slot := range assertionSlots {
		evs := ia.GetEvidences(interaction.SpecificDirection(slot.dir), slot.sel, evidence.Filter{})
		if evs.IsEmpty() {
			continue
		}

		idA, idB := ia.A.Identifier, ia.B.Identifier
		typeA, typeB := string(ia.A.EntityType), string(ia.B.EntityType)
		if slot.dir == interaction.BA {
			idA, idB = idB, idA
			typeA, typeB = typeB, typeA
		}

		if mode == Merged {
			rows = append(rows, Row{
				IDA: idA, IDB: idB,
				TypeA: typeA, TypeB: typeB,
				Effect:     slot.effect,
				Type:       setOf(interactionTypes(evs)),
				DModel:     setOf(dataModels(evs)),
				Sources:    setOf(evs.ResourceNames()),
				References: setOf(referenceStrings(evs)),
			})
			continue
		}

		for _, ev := range evs.Slice() {
			rows = append(rows, Row{
				IDA: idA, IDB: idB,
				TypeA: typeA, TypeB: typeB,
				Effect:     slot.effect,
				Type:       ev.Resource.InteractionType,
				DModel:     ev.Resource.DataModel,
				Sources:    ev.Resource.Name,
				References: strings.Join(referenceSlice(ev.References), ";"),
			})
		}
	}
	return rows
}

func interactionTypes(evs evidence.Evidences) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ev := range evs.Slice() {
		if ev.Resource.InteractionType == "" {
			continue
		}
		if _, ok := seen[ev.Resource.InteractionType]; !ok {
			seen[ev.Resource.InteractionType] = struct{}{}
			out = append(out, ev.Resource.InteractionType)
		}
	}
	return out
}

func dataModels(evs evidence.Evidences) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ev := range evs.Slice() {
		if ev.Resource.DataModel == "" {
			continue
		}
		if _, ok := seen[ev.Resource.DataModel]; !ok {
			seen[ev.Resource.DataModel] = struct{}{}
			out = append(out, ev.Resource.DataModel)
		}
	}
	return out
}

func referenceStrings(evs evidence.Evidences) []string {
	return referenceSlice(evs.References())
}

func referenceSlice(refs evidence.ReferenceSet) []string {
	out := make([]string, 0, len(refs))
	for r := range refs {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

func setOf(values []string) string {
	sort.Strings(values)
	return strings.Join(values, ",")
}
