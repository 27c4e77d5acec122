package evidence

// ViaMode selects how the "via" (primary/secondary provenance) filter
// constrains Evidences.Filter: no constraint, primary-only, secondary-only,
// or secondary-via-named-primary.
type ViaMode int

const (
	ViaAny ViaMode = iota
	ViaPrimaryOnly
	ViaSecondaryOnly
	ViaSecondaryFrom
)

// ViaFilter pairs a ViaMode with a primary resource name; PrimaryName is
// only meaningful when Mode is ViaSecondaryFrom.
type ViaFilter struct {
	Mode        ViaMode
	PrimaryName string
}

// PrimaryOnly returns a filter keeping only primary (via == "") evidence.
func PrimaryOnly() ViaFilter { return ViaFilter{Mode: ViaPrimaryOnly} }

// SecondaryOnly returns a filter keeping only secondary evidence.
func SecondaryOnly() ViaFilter { return ViaFilter{Mode: ViaSecondaryOnly} }

// SecondaryFrom returns a filter keeping only secondary evidence whose Via
// equals the named primary resource.
func SecondaryFrom(primary string) ViaFilter {
	return ViaFilter{Mode: ViaSecondaryFrom, PrimaryName: primary}
}

func (v ViaFilter) matches(r Resource) bool {
	switch v.Mode {
	case ViaPrimaryOnly:
		return !r.IsSecondary()
	case ViaSecondaryOnly:
		return r.IsSecondary()
	case ViaSecondaryFrom:
		return r.IsSecondary() && r.Via == v.PrimaryName
	default:
		return true
	}
}

// Filter describes the predicate set filter(resource?, interaction_type?,
// data_model?, references?, via?). A nil/zero-value pointer or empty set
// means "no constraint" for that dimension.
type Filter struct {
	Resource        *string
	InteractionType *string
	DataModel       *string
	References      ReferenceSet // non-empty: keep evidence with >=1 matching reference
	Via             *ViaFilter
}

func (f Filter) matches(e Evidence) bool {
	if f.Resource != nil && e.Resource.Name != *f.Resource {
		return false
	}
	if f.InteractionType != nil && e.Resource.InteractionType != *f.InteractionType {
		return false
	}
	if f.DataModel != nil && e.Resource.DataModel != *f.DataModel {
		return false
	}
	if f.Via != nil && !f.Via.matches(e.Resource) {
		return false
	}
	if len(f.References) > 0 {
		found := false
		for r := range f.References {
			if e.References.Contains(r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Evidences is a multiset-like container of Evidence, indexed by Resource
// so merging an arriving Evidence with a matching one already present is
// O(1): at most one Evidence per Resource value.
type Evidences struct {
	byResource map[Resource]Evidence
}

// New returns an empty Evidences set.
func New() Evidences {
	return Evidences{byResource: make(map[Resource]Evidence)}
}

// FromSlice builds an Evidences set by unioning every element.
func FromSlice(evs ...Evidence) Evidences {
	e := New()
	for _, ev := range evs {
		e.Add(ev)
	}
	return e
}

func (e *Evidences) ensure() {
	if e.byResource == nil {
		e.byResource = make(map[Resource]Evidence)
	}
}

// Add unions a single Evidence in, merging references if the Resource is
// already present (this is the "+=" operator on evidence).
func (e *Evidences) Add(ev Evidence) {
	e.ensure()
	if existing, ok := e.byResource[ev.Resource]; ok {
		existing.Add(ev)
		e.byResource[ev.Resource] = existing
	} else {
		e.byResource[ev.Resource] = ev.Clone()
	}
}

// AddAll unions every Evidence of other into e.
func (e *Evidences) AddAll(other Evidences) {
	for _, ev := range other.byResource {
		e.Add(ev)
	}
}

// Union returns a new Evidences containing everything in a and b.
func Union(a, b Evidences) Evidences {
	out := New()
	out.AddAll(a)
	out.AddAll(b)
	return out
}

// Len returns the number of distinct resources carrying evidence.
func (e Evidences) Len() int {
	return len(e.byResource)
}

// Slice returns the contained Evidence values in no particular order.
func (e Evidences) Slice() []Evidence {
	out := make([]Evidence, 0, len(e.byResource))
	for _, ev := range e.byResource {
		out = append(out, ev)
	}
	return out
}

// Has reports whether an Evidence for the given resource is present.
func (e Evidences) Has(r Resource) bool {
	_, ok := e.byResource[r]
	return ok
}

// Get returns the Evidence for a given resource, if present.
func (e Evidences) Get(r Resource) (Evidence, bool) {
	ev, ok := e.byResource[r]
	return ev, ok
}

// Filter returns a new Evidences keeping only evidence whose resource
// satisfies every supplied constraint.
func (e Evidences) Filter(f Filter) Evidences {
	out := New()
	for _, ev := range e.byResource {
		if f.matches(ev) {
			out.Add(ev)
		}
	}
	return out
}

// CountResources returns the number of distinct resources.
func (e Evidences) CountResources() int {
	return len(e.byResource)
}

// CountReferences returns the number of distinct references across all
// evidence.
func (e Evidences) CountReferences() int {
	seen := make(ReferenceSet)
	for _, ev := range e.byResource {
		for r := range ev.References {
			seen.Add(r)
		}
	}
	return len(seen)
}

// CountCurationEffort returns |{(reference, resource) pair}|, the
// cardinality of distinct reference/resource pairs backing this evidence
// set.
func (e Evidences) CountCurationEffort() int {
	count := 0
	for _, ev := range e.byResource {
		count += len(ev.References)
	}
	return count
}

// ResourceNames returns the distinct resource names present.
func (e Evidences) ResourceNames() []string {
	seen := make(map[string]struct{}, len(e.byResource))
	out := make([]string, 0, len(e.byResource))
	for res := range e.byResource {
		if _, ok := seen[res.Name]; ok {
			continue
		}
		seen[res.Name] = struct{}{}
		out = append(out, res.Name)
	}
	return out
}

// References returns the union of every reference across all evidence.
func (e Evidences) References() ReferenceSet {
	out := make(ReferenceSet)
	for _, ev := range e.byResource {
		for r := range ev.References {
			out.Add(r)
		}
	}
	return out
}

// IsEmpty reports whether the set carries no evidence.
func (e Evidences) IsEmpty() bool {
	return len(e.byResource) == 0
}
