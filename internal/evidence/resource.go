package evidence

// Resource is the provenance descriptor for an assertion: which curated
// resource made it, under what interaction type and data model, and -- if
// the resource is secondary -- which primary resource it was drawn from.
//
// Two Resources are equal iff all four fields are equal.
type Resource struct {
	Name            string
	InteractionType string
	DataModel       string
	Via             string // empty ("") means primary
}

// IsSecondary reports whether this resource aggregates from another
// (i.e. Via is set).
func (r Resource) IsSecondary() bool {
	return r.Via != ""
}

// Equal reports field-wise equality explicitly (Resource is comparable,
// so == also works; this method exists for readability at call sites and
// to keep the comparison rule in one documented place).
func (r Resource) Equal(other Resource) bool {
	return r == other
}
