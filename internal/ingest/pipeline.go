package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/schema"
)

func cell(tokens []string, col int) (string, error) {
	if col < 0 || col >= len(tokens) {
		return "", fmt.Errorf("ingest: column %d out of range (row has %d fields)", col, len(tokens))
	}
	return tokens[col], nil
}

func splitTrim(value, sep string) []string {
	if sep == "" {
		return []string{strings.TrimSpace(value)}
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func intersects(values, set []string) bool {
	wanted := make(map[string]struct{}, len(set))
	for _, v := range set {
		wanted[v] = struct{}{}
	}
	for _, v := range values {
		if _, ok := wanted[v]; ok {
			return true
		}
	}
	return false
}

// passesFilters applies the positive_filters/negative_filters rule: drop
// if any negative filter's split column intersects its value set, OR any
// positive filter's split column fails to intersect its value set.
func passesFilters(tokens []string, positive, negative []schema.FilterSpec) (bool, error) {
	for _, f := range negative {
		raw, err := cell(tokens, f.Column)
		if err != nil {
			return false, err
		}
		if intersects(splitTrim(raw, f.InnerSep), f.Values) {
			return false, nil
		}
	}
	for _, f := range positive {
		raw, err := cell(tokens, f.Column)
		if err != nil {
			return false, err
		}
		if !intersects(splitTrim(raw, f.InnerSep), f.Values) {
			return false, nil
		}
	}
	return true, nil
}

// extractDirected resolves one of the is_directed variants.
func extractDirected(tokens []string, d schema.DirectedSpec) (bool, error) {
	if d.Mode == schema.DirectedFixed {
		return d.AllDirected, nil
	}
	raw, err := cell(tokens, d.Column)
	if err != nil {
		return false, err
	}
	return intersects(splitTrim(raw, d.InnerSep), d.PositiveValues), nil
}

// extractSign resolves the sign column: a row is directed-by-sign (counted
// separately from extractDirected) when the column intersects either value
// set, and positive/negative booleans are independently whether it
// intersects each set -- a row may assert both.
func extractSign(tokens []string, s *schema.SignSpec) (positive, negative, directedBySign bool, err error) {
	if s == nil {
		return false, false, false, nil
	}
	raw, err := cell(tokens, s.Column)
	if err != nil {
		return false, false, false, err
	}
	values := splitTrim(raw, s.InnerSep)
	positive = intersects(values, s.PositiveValues)
	negative = intersects(values, s.NegativeValues)
	directedBySign = positive || negative
	return positive, negative, directedBySign, nil
}

// extractRefs splits and trims the refs column, keeping only non-empty
// digit-only values.
func extractRefs(tokens []string, r schema.RefsSpec) (evidence.ReferenceSet, error) {
	out := evidence.NewReferenceSet()
	switch r.Mode {
	case schema.RefsAbsent:
		return out, nil
	case schema.RefsSingleColumn:
		raw, err := cell(tokens, r.Column)
		if err != nil {
			return nil, err
		}
		if ref, ok := evidence.NormalizeReference(raw); ok {
			out.Add(ref)
		}
		return out, nil
	case schema.RefsColumnWithSeparator:
		raw, err := cell(tokens, r.Column)
		if err != nil {
			return nil, err
		}
		for _, part := range strings.Split(raw, r.Sep) {
			if ref, ok := evidence.NormalizeReference(part); ok {
				out.Add(ref)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ingest: unknown refs mode %d", r.Mode)
	}
}

// taxonResult is the outcome of resolving one endpoint's taxon: Ok is
// false when the taxon resolves to null or is excluded.
type taxonResult struct {
	Taxon int
	Ok    bool
}

func resolveTaxonLookup(tokens []string, lookup schema.TaxonLookup) (taxonResult, error) {
	raw, err := cell(tokens, lookup.Column)
	if err != nil {
		return taxonResult{}, err
	}
	raw = strings.TrimSpace(raw)

	var taxon int
	if lookup.Dict != nil {
		mapped, ok := lookup.Dict[raw]
		if !ok {
			return taxonResult{}, nil // unresolved -> null
		}
		taxon = mapped
	} else {
		parsed, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return taxonResult{}, nil // unparseable -> null
		}
		taxon = parsed
	}

	if len(lookup.Include) > 0 && !containsInt(lookup.Include, taxon) {
		return taxonResult{}, nil
	}
	if containsInt(lookup.Exclude, taxon) {
		return taxonResult{}, nil
	}
	return taxonResult{Taxon: taxon, Ok: true}, nil
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// extractTaxa resolves the ncbi_tax_id variants for both endpoints.
func extractTaxa(tokens []string, t schema.TaxonSpec) (a, b taxonResult, err error) {
	if t.Mode == schema.TaxonFixed {
		return taxonResult{Taxon: t.Fixed, Ok: true}, taxonResult{Taxon: t.Fixed, Ok: true}, nil
	}
	a, err = resolveTaxonLookup(tokens, t.A)
	if err != nil {
		return taxonResult{}, taxonResult{}, err
	}
	b, err = resolveTaxonLookup(tokens, t.B)
	if err != nil {
		return taxonResult{}, taxonResult{}, err
	}
	return a, b, nil
}

// extractResources resolves the resource variants, returning the
// secondary resource names asserted by this row (the primary resource is
// derived separately from the schema's own identity).
func extractResources(tokens []string, r schema.ResourceSpec) ([]string, error) {
	switch r.Mode {
	case schema.ResourceFixedName:
		return nil, nil // the row-level resource IS the primary; no secondaries
	case schema.ResourceSingleColumn:
		raw, err := cell(tokens, r.Column)
		if err != nil {
			return nil, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		return []string{raw}, nil
	case schema.ResourceColumnWithSeparator:
		raw, err := cell(tokens, r.Column)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, part := range strings.Split(raw, r.Sep) {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ingest: unknown resource mode %d", r.Mode)
	}
}

// extractAttrs resolves extra_*_attrs: bare column, column+split, or
// column+callable.
func extractAttrs(tokens []string, specs map[string]schema.AttrSpec) (map[string]any, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(specs))
	for name, spec := range specs {
		raw, err := cell(tokens, spec.Column)
		if err != nil {
			return nil, err
		}
		switch {
		case spec.Transform != nil:
			out[name] = spec.Transform(raw)
		case spec.InnerSep != nil:
			out[name] = splitTrim(raw, *spec.InnerSep)
		default:
			out[name] = strings.TrimSpace(raw)
		}
	}
	return out, nil
}
