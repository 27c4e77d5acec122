package ingest

import "github.com/rohankatakam/interlace/internal/entity"

// IdentifierMapper is the external identifier-mapping collaborator:
// map_name(name, from_type, to_type, taxon, expand_complexes) -> set
// of identifiers. Implementations must return an empty slice (not an
// error) on failure; Translator treats an empty result as a mapping miss.
type IdentifierMapper interface {
	MapName(name, fromType, toType string, taxon int, expandComplexes bool) []string
}

// DefaultNameTypes maps an entity type to the identifier namespace
// identifiers should be translated into (default_name_type[entity_type]).
type DefaultNameTypes map[entity.Type]string

// Translator wraps the external mapper and resolves the target namespace
// for a given entity type before delegating.
type Translator struct {
	Mapper       IdentifierMapper
	DefaultTypes DefaultNameTypes
}

// NewTranslator builds a Translator with the given mapper and default
// target-type table.
func NewTranslator(mapper IdentifierMapper, defaults DefaultNameTypes) *Translator {
	return &Translator{Mapper: mapper, DefaultTypes: defaults}
}

// Translate resolves one raw endpoint identifier into zero or more
// canonical identifiers under the default namespace for entityType.
func (t *Translator) Translate(rawID, idType string, entityType entity.Type, taxon int, expandComplexes bool) []string {
	toType := t.DefaultTypes[entityType]
	if t.Mapper == nil {
		return nil
	}
	return t.Mapper.MapName(rawID, idType, toType, taxon, expandComplexes)
}

// Expand computes the cartesian product of translating idA and idB
// independently: each side returns a set, and Expand emits one pair per
// element of the cartesian product. If either side maps to nothing, no
// pairs are returned and unmappedA/unmappedB report which side(s) missed,
// so the caller can record the corresponding raw id as unmapped.
func (t *Translator) Expand(
	idA, idTypeA string, entityTypeA entity.Type, taxonA int,
	idB, idTypeB string, entityTypeB entity.Type, taxonB int,
	expandComplexes bool,
) (pairs [][2]string, unmappedA, unmappedB bool) {
	mappedA := t.Translate(idA, idTypeA, entityTypeA, taxonA, expandComplexes)
	mappedB := t.Translate(idB, idTypeB, entityTypeB, taxonB, expandComplexes)

	if len(mappedA) == 0 {
		unmappedA = true
	}
	if len(mappedB) == 0 {
		unmappedB = true
	}
	if unmappedA || unmappedB {
		return nil, unmappedA, unmappedB
	}

	pairs = make([][2]string, 0, len(mappedA)*len(mappedB))
	for _, a := range mappedA {
		for _, b := range mappedB {
			pairs = append(pairs, [2]string{a, b})
		}
	}
	return pairs, false, false
}
