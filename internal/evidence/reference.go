package evidence

import "strings"

// Reference is a normalized literature citation (a PubMed id): digits only,
// after trimming whitespace. The zero value is not a valid reference.
type Reference string

// NormalizeReference trims whitespace and validates the result is non-empty
// and digit-only. It returns ("", false) for anything else: a reference is
// kept only if non-empty and digit-only after normalization.
func NormalizeReference(raw string) (Reference, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return Reference(trimmed), true
}

// ReferenceSet is a small set of References, implemented as a map for O(1)
// membership and union.
type ReferenceSet map[Reference]struct{}

// NewReferenceSet builds a ReferenceSet from zero or more references,
// silently skipping invalid (empty) ones.
func NewReferenceSet(refs ...Reference) ReferenceSet {
	s := make(ReferenceSet, len(refs))
	for _, r := range refs {
		if r == "" {
			continue
		}
		s[r] = struct{}{}
	}
	return s
}

// Add inserts r into the set.
func (s ReferenceSet) Add(r Reference) {
	if r == "" {
		return
	}
	s[r] = struct{}{}
}

// Union returns a new set containing every reference in s or other.
func (s ReferenceSet) Union(other ReferenceSet) ReferenceSet {
	out := make(ReferenceSet, len(s)+len(other))
	for r := range s {
		out[r] = struct{}{}
	}
	for r := range other {
		out[r] = struct{}{}
	}
	return out
}

// Contains reports whether r is a member of s.
func (s ReferenceSet) Contains(r Reference) bool {
	_, ok := s[r]
	return ok
}

// Slice returns the set's members as a slice, in no particular order.
func (s ReferenceSet) Slice() []Reference {
	out := make([]Reference, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// Clone returns a shallow copy of s.
func (s ReferenceSet) Clone() ReferenceSet {
	return s.Union(nil)
}
