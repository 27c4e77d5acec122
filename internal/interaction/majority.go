package interaction

import (
	"github.com/rohankatakam/interlace/internal/evidence"
)

// CountMethod selects which counting method MajorityOptions uses to break
// direction/sign ties: by distinct resource (default), by distinct
// reference, or by curation-effort (reference, resource) pairs.
type CountMethod int

const (
	ByResources CountMethod = iota
	ByReferences
	ByCurationEffort
)

// MajorityOptions parametrizes MajorityDir/MajoritySign/Consensus.
type MajorityOptions struct {
	Count               CountMethod
	OnlyPrimary         bool
	OnlyInteractionType string // empty: no constraint
}

func (o MajorityOptions) filter() evidence.Filter {
	f := evidence.Filter{}
	if o.OnlyPrimary {
		v := evidence.PrimaryOnly()
		f.Via = &v
	}
	if o.OnlyInteractionType != "" {
		it := o.OnlyInteractionType
		f.InteractionType = &it
	}
	return f
}

func (o MajorityOptions) count(ev evidence.Evidences) int {
	switch o.Count {
	case ByReferences:
		return ev.CountReferences()
	case ByCurationEffort:
		return ev.CountCurationEffort()
	default:
		return ev.CountResources()
	}
}

// MajorityDirResult is the outcome of MajorityDir: exactly one of Direction
// or Tie or Undirected holds.
type MajorityDirResult struct {
	Direction  Direction
	IsTie      bool
	IsUndirect bool // both directions carry zero qualifying evidence
}

// MajorityDir picks the counting method requested by opts and returns the
// direction with the larger count; a tie returns IsTie; both-zero returns
// IsUndirect.
func (ia *Interaction) MajorityDir(opts MajorityOptions) MajorityDirResult {
	f := opts.filter()
	abCount := opts.count(ia.direction[AB].Filter(f))
	baCount := opts.count(ia.direction[BA].Filter(f))

	switch {
	case abCount == 0 && baCount == 0:
		return MajorityDirResult{IsUndirect: true}
	case abCount == baCount:
		return MajorityDirResult{IsTie: true}
	case abCount > baCount:
		return MajorityDirResult{Direction: AB}
	default:
		return MajorityDirResult{Direction: BA}
	}
}

// SignFlags carries the [positive?, negative?] pair of a majority_sign
// computation's output for a single direction.
type SignFlags struct {
	Positive bool
	Negative bool
}

// MajoritySign returns, for each directed slot, whether positive and/or
// negative assertions constitute a (possibly tied) majority in that
// direction: a flag is true iff that sign's count is > 0 and >= the
// other sign's count in the same direction.
func (ia *Interaction) MajoritySign(opts MajorityOptions) map[Direction]SignFlags {
	f := opts.filter()
	out := make(map[Direction]SignFlags, 2)
	for _, d := range []Direction{AB, BA} {
		pos := opts.count(ia.positive[d].Filter(f))
		neg := opts.count(ia.negative[d].Filter(f))
		out[d] = SignFlags{
			Positive: pos > 0 && pos >= neg,
			Negative: neg > 0 && neg >= pos,
		}
	}
	return out
}

// Sign names the sign component of a ConsensusRow.
type Sign string

const (
	SignPositive Sign = "positive"
	SignNegative Sign = "negative"
	SignUnknown  Sign = "unknown"
)

// ConsensusRow is one row of Consensus's output: a (src, tgt, directed,
// sign) tuple.
type ConsensusRow struct {
	Src, Tgt string
	Directed bool
	Sign     Sign
}

// Consensus is the product of MajorityDir and MajoritySign. A tied
// MajorityDir yields no rows (direction is genuinely undetermined); an
// undirected majority yields a single undirected row with an unknown
// sign (sign doesn't apply without direction); a clear directed majority
// yields one row per sign flag that is set, or a single unknown-sign row
// if neither sign flag is set. A sign tie (both flags set) is treated as
// intentional: both rows are emitted.
func (ia *Interaction) Consensus(opts MajorityOptions) []ConsensusRow {
	dir := ia.MajorityDir(opts)
	if dir.IsTie {
		return nil
	}
	if dir.IsUndirect {
		return []ConsensusRow{{Src: ia.A.Identifier, Tgt: ia.B.Identifier, Directed: false, Sign: SignUnknown}}
	}

	src, tgt := ia.A.Identifier, ia.B.Identifier
	if dir.Direction == BA {
		src, tgt = tgt, src
	}

	flags := ia.MajoritySign(opts)[dir.Direction]
	var rows []ConsensusRow
	if flags.Positive {
		rows = append(rows, ConsensusRow{Src: src, Tgt: tgt, Directed: true, Sign: SignPositive})
	}
	if flags.Negative {
		rows = append(rows, ConsensusRow{Src: src, Tgt: tgt, Directed: true, Sign: SignNegative})
	}
	if len(rows) == 0 {
		rows = append(rows, ConsensusRow{Src: src, Tgt: tgt, Directed: true, Sign: SignUnknown})
	}
	return rows
}
