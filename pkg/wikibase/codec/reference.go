package codec

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/references"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	referenceHashAttr       string = "hash"
	referenceSnaksAttr      string = "snaks"
	referenceSnaksOrderAttr string = "snaks-order"
)

// HashPolicy decides what happens to the hash of a reference when it is decoded
type HashPolicy int

const (
	// TrustHash keeps the hash found in the input and only computes one when it is absent
	TrustHash HashPolicy = iota
	// VerifyHash computes the hash and rejects input that carries a different one
	VerifyHash
	// RecomputeHash always replaces the input hash with a computed one
	RecomputeHash
)

func ParseHashPolicy(s string) (HashPolicy, error) {
	switch s {
	case "", "trust":
		return TrustHash, nil
	case "verify":
		return VerifyHash, nil
	case "recompute":
		return RecomputeHash, nil
	default:
		return TrustHash, fmt.Errorf("unknown hash policy %q", s)
	}
}

// ReferenceHasher computes the content hash of the snaks of a reference
type ReferenceHasher interface {
	Hash(list snaks.List) (string, error)
}

type blake2bHasher struct {
	snaks *SnaksCodec
}

// NewReferenceHasher returns a hasher that digests the compact JSON form of the
// snaks with a 160 bit BLAKE2b, hex encoded
func NewReferenceHasher(snaksCodec *SnaksCodec) ReferenceHasher {
	return &blake2bHasher{snaks: snaksCodec}
}

func (h *blake2bHasher) Hash(list snaks.List) (string, error) {
	v, err := h.snaks.Serialize(list)
	if err != nil {
		return "", err
	}

	b, err := wire.Marshal(v)
	if err != nil {
		return "", err
	}

	digest, err := blake2b.New(20, nil)
	if err != nil {
		return "", err
	}
	digest.Write(b)

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// ReferenceCodec converts references to and from `{"hash", "snaks", "snaks-order"}` records
type ReferenceCodec struct {
	snaks  *SnaksCodec
	hasher ReferenceHasher
	policy HashPolicy
}

func NewReferenceCodec(snaksCodec *SnaksCodec, hasher ReferenceHasher, policy HashPolicy) *ReferenceCodec {
	return &ReferenceCodec{
		snaks:  snaksCodec,
		hasher: hasher,
		policy: policy,
	}
}

func (rc *ReferenceCodec) Serialize(ref references.Reference) (any, error) {
	s, err := rc.snaks.Serialize(ref.Snaks())
	if err != nil {
		return nil, wberrors.AtPosition(err, referenceSnaksAttr)
	}

	return wire.NewObject(
		wire.Entry{Key: referenceHashAttr, Value: ref.Hash()},
		wire.Entry{Key: referenceSnaksAttr, Value: s},
		wire.Entry{Key: referenceSnaksOrderAttr, Value: toArray(SnaksOrder(ref.Snaks()))},
	), nil
}

func (rc *ReferenceCodec) Deserialize(serialization any) (references.Reference, error) {
	obj, err := requireObject(serialization, "reference")
	if err != nil {
		return references.Reference{}, err
	}

	rawSnaks, err := requireAttribute(obj, referenceSnaksAttr)
	if err != nil {
		return references.Reference{}, err
	}

	order, hasOrder, err := optionalStringList(obj, referenceSnaksOrderAttr)
	if err != nil {
		return references.Reference{}, err
	}

	list, err := rc.snaks.DeserializeOrdered(rawSnaks, referenceSnaksOrderAttr, order)
	if err != nil {
		return references.Reference{}, wberrors.AtPosition(err, referenceSnaksAttr)
	}

	if _, isArray := wire.AsArray(rawSnaks); isArray && hasOrder && !equalStrings(order, SnaksOrder(list)) {
		return references.Reference{}, wberrors.NewInvalidAttributeError(
			referenceSnaksOrderAttr, order, "the order does not match the properties of the snaks",
		)
	}

	hash, err := rc.resolveHash(obj, list)
	if err != nil {
		return references.Reference{}, err
	}

	return references.New(hash, list...), nil
}

func (rc *ReferenceCodec) resolveHash(obj *wire.Object, list snaks.List) (string, error) {
	hash := ""

	raw, hasHash := obj.Get(referenceHashAttr)
	if hasHash {
		s, err := asString(referenceHashAttr, raw)
		if err != nil {
			return "", err
		}
		hash = s
	}

	if rc.hasher == nil {
		return hash, nil
	}

	if rc.policy == TrustHash && hasHash {
		return hash, nil
	}

	computed, err := rc.hasher.Hash(list)
	if err != nil {
		return "", fmt.Errorf("failed to compute reference hash: %w", err)
	}

	if rc.policy == VerifyHash && hasHash && computed != hash {
		return "", wberrors.NewInvalidAttributeError(
			referenceHashAttr, hash, fmt.Sprintf("the hash does not match the snaks (expected %s)", computed),
		)
	}

	return computed, nil
}
