package evidence

// Evidence pairs a single Resource with the set of References backing it.
// Equality between two Evidence values is on Resource alone; combining
// two Evidence values with equal Resource unions their References.
type Evidence struct {
	Resource   Resource
	References ReferenceSet
}

// NewEvidence builds an Evidence from a resource and zero or more references.
func NewEvidence(resource Resource, refs ...Reference) Evidence {
	return Evidence{Resource: resource, References: NewReferenceSet(refs...)}
}

// Add unions other's references into e in place. Callers must only call Add
// when e.Resource == other.Resource; mismatched resources are a
// programmer error and are ignored rather than panicking.
func (e *Evidence) Add(other Evidence) {
	if e.Resource != other.Resource {
		return
	}
	if e.References == nil {
		e.References = make(ReferenceSet)
	}
	for r := range other.References {
		e.References.Add(r)
	}
}

// Clone returns a deep-enough copy (References is copied; Resource is a
// value type already).
func (e Evidence) Clone() Evidence {
	return Evidence{Resource: e.Resource, References: e.References.Clone()}
}
