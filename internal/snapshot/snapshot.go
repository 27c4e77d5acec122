// Package snapshot implements an opaque binary blob format: a single-file
// bbolt database holding the interactions/nodes/labels triple, gob-encoded
// per entry and stamped with a generation id for mismatch detection.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/rohankatakam/interlace/internal/entity"
	internalerrors "github.com/rohankatakam/interlace/internal/errors"
	"github.com/rohankatakam/interlace/internal/evidence"
	"github.com/rohankatakam/interlace/internal/interaction"
	"github.com/rohankatakam/interlace/internal/network"
)

const (
	bucketMeta         = "meta"
	bucketInteractions = "interactions"
	bucketNodes        = "nodes"
	bucketLabels       = "labels"

	metaGenerationKey = "generation"
)

func init() {
	// Entity.Attributes is a free-form map[string]any; gob needs every
	// concrete type that can appear as a value registered up front. This
	// covers what extractAttrs (internal/ingest) actually produces --
	// callers supplying a custom Transform with another concrete type must
	// register it themselves before calling Save.
	gob.Register("")
	gob.Register([]string{})
}

// gobInteraction is Interaction's wire form. Nodes need no mirror:
// entity.Entity's fields are all exported, so gob.Encode(entity.Entity)
// works as-is. A named mirror is kept only for the interaction side,
// where the live type holds unexported maps.
type gobInteraction struct {
	A, B       entity.Key
	Evidences  []evidence.Evidence
	Direction  map[interaction.Direction][]evidence.Evidence
	Positive   map[interaction.Direction][]evidence.Evidence
	Negative   map[interaction.Direction][]evidence.Evidence
}

func toGobInteraction(ia *interaction.Interaction) gobInteraction {
	return gobInteraction{
		A: ia.A.Key,
		B: ia.B.Key,
		Evidences: ia.GetEvidences(interaction.AnyDirection(), interaction.NoSignConstraint(), evidence.Filter{}).Slice(),
		Direction: map[interaction.Direction][]evidence.Evidence{
			interaction.AB:         ia.GetEvidences(interaction.SpecificDirection(interaction.AB), interaction.NoSignConstraint(), evidence.Filter{}).Slice(),
			interaction.BA:         ia.GetEvidences(interaction.SpecificDirection(interaction.BA), interaction.NoSignConstraint(), evidence.Filter{}).Slice(),
			interaction.Undirected: ia.GetEvidences(interaction.SpecificDirection(interaction.Undirected), interaction.NoSignConstraint(), evidence.Filter{}).Slice(),
		},
		Positive: map[interaction.Direction][]evidence.Evidence{
			interaction.AB: ia.GetEvidences(interaction.SpecificDirection(interaction.AB), interaction.OnlyPositive(), evidence.Filter{}).Slice(),
			interaction.BA: ia.GetEvidences(interaction.SpecificDirection(interaction.BA), interaction.OnlyPositive(), evidence.Filter{}).Slice(),
		},
		Negative: map[interaction.Direction][]evidence.Evidence{
			interaction.AB: ia.GetEvidences(interaction.SpecificDirection(interaction.AB), interaction.OnlyNegative(), evidence.Filter{}).Slice(),
			interaction.BA: ia.GetEvidences(interaction.SpecificDirection(interaction.BA), interaction.OnlyNegative(), evidence.Filter{}).Slice(),
		},
	}
}

func fromGobInteraction(g gobInteraction, nodes map[entity.Key]*entity.Entity) (*interaction.Interaction, error) {
	a, ok := nodes[g.A]
	if !ok {
		return nil, fmt.Errorf("snapshot: interaction references unknown node %+v", g.A)
	}
	b, ok := nodes[g.B]
	if !ok {
		return nil, fmt.Errorf("snapshot: interaction references unknown node %+v", g.B)
	}
	ia := interaction.New(a, b)

	add := func(evs []evidence.Evidence, dir interaction.Direction, effect interaction.Effect) error {
		for _, ev := range evs {
			if err := ia.AddEvidence(ev, dir, effect); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(g.Direction[interaction.Undirected], interaction.Undirected, interaction.NoEffect); err != nil {
		return nil, err
	}
	for _, dir := range [2]interaction.Direction{interaction.AB, interaction.BA} {
		nonSign := subtract(g.Direction[dir], g.Positive[dir], g.Negative[dir])
		if err := add(nonSign, dir, interaction.NoEffect); err != nil {
			return nil, err
		}
		if err := add(g.Positive[dir], dir, interaction.Positive); err != nil {
			return nil, err
		}
		if err := add(g.Negative[dir], dir, interaction.Negative); err != nil {
			return nil, err
		}
	}
	return ia, nil
}

// subtract returns the elements of all whose Resource is absent from both
// signed slices, so AddEvidence isn't called twice under NoEffect for
// evidence that already carries a sign.
func subtract(all []evidence.Evidence, signed ...[]evidence.Evidence) []evidence.Evidence {
	exclude := make(map[evidence.Resource]struct{})
	for _, group := range signed {
		for _, ev := range group {
			exclude[ev.Resource] = struct{}{}
		}
	}
	var out []evidence.Evidence
	for _, ev := range all {
		if _, skip := exclude[ev.Resource]; !skip {
			out = append(out, ev)
		}
	}
	return out
}

func gobEncode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Save writes net's full state to path as a single bbolt file under an
// exclusive lock for the duration of the write, provided here by
// bbolt.Open itself.
func Save(path string, net *network.Network) (uuid.UUID, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return uuid.Nil, internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: open for write")
	}
	defer db.Close()

	generation := uuid.New()

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketMeta, bucketInteractions, bucketNodes, bucketLabels} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		meta := tx.Bucket([]byte(bucketMeta))
		if err := meta.Put([]byte(metaGenerationKey), []byte(generation.String())); err != nil {
			return err
		}

		nodesBucket := tx.Bucket([]byte(bucketNodes))
		for _, e := range net.Nodes() {
			data, err := gobEncode(*e)
			if err != nil {
				return err
			}
			if err := nodesBucket.Put(nodeMapKey(e.Key), data); err != nil {
				return err
			}
			if e.Label != "" {
				labelsBucket := tx.Bucket([]byte(bucketLabels))
				if err := labelsBucket.Put([]byte(e.Label), nodeMapKey(e.Key)); err != nil {
					return err
				}
			}
		}

		interactionsBucket := tx.Bucket([]byte(bucketInteractions))
		for _, ia := range net.Interactions() {
			data, err := gobEncode(toGobInteraction(ia))
			if err != nil {
				return err
			}
			key := ia.Key()
			if err := interactionsBucket.Put(interactionMapKey(key.A, key.B), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: write")
	}
	return generation, nil
}

// Load reads a bbolt file written by Save into a fresh Network, validating
// the bucket shape and raising a typed error on mismatch.
func Load(path string) (*network.Network, uuid.UUID, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, uuid.Nil, internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: open for read")
	}
	defer db.Close()

	net := network.New()
	var generation uuid.UUID

	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(bucketMeta))
		nodesBucket := tx.Bucket([]byte(bucketNodes))
		interactionsBucket := tx.Bucket([]byte(bucketInteractions))
		if meta == nil || nodesBucket == nil || interactionsBucket == nil {
			return internalerrors.New(internalerrors.ErrorTypeSnapshot, internalerrors.SeverityCritical, "snapshot: missing required bucket")
		}

		raw := meta.Get([]byte(metaGenerationKey))
		if raw == nil {
			return internalerrors.New(internalerrors.ErrorTypeSnapshot, internalerrors.SeverityCritical, "snapshot: missing generation id")
		}
		parsed, err := uuid.Parse(string(raw))
		if err != nil {
			return internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityCritical, "snapshot: invalid generation id")
		}
		generation = parsed

		nodes := make(map[entity.Key]*entity.Entity)
		cursor := nodesBucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var e entity.Entity
			if err := gobDecode(v, &e); err != nil {
				return internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: decode node")
			}
			stored := e
			nodes[e.Key] = &stored
		}
		for _, e := range nodes {
			net.RegisterNodeForLoad(e)
		}

		icursor := interactionsBucket.Cursor()
		for k, v := icursor.First(); k != nil; k, v = icursor.Next() {
			var g gobInteraction
			if err := gobDecode(v, &g); err != nil {
				return internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: decode interaction")
			}
			ia, err := fromGobInteraction(g, nodes)
			if err != nil {
				return internalerrors.Wrap(err, internalerrors.ErrorTypeSnapshot, internalerrors.SeverityHigh, "snapshot: rebuild interaction")
			}
			net.RegisterInteractionForLoad(ia)
		}
		return nil
	})
	if err != nil {
		return nil, uuid.Nil, err
	}
	return net, generation, nil
}

func nodeMapKey(k entity.Key) []byte {
	return []byte(fmt.Sprintf("%s\x1f%s\x1f%s\x1f%d", k.Identifier, k.IDType, k.EntityType, k.Taxon))
}

func interactionMapKey(a, b entity.Key) []byte {
	return append(nodeMapKey(a), append([]byte("\x1e"), nodeMapKey(b)...)...)
}
