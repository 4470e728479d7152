package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/references"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/terms"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

// Kind names the top level shape of a serialized document
type Kind string

const (
	KindSnak      Kind = "snak"
	KindSnaks     Kind = "snaks"
	KindReference Kind = "reference"
	KindClaim     Kind = "claim"
	KindClaims    Kind = "claims"
	KindTerm      Kind = "term"
	KindTermList  Kind = "termlist"
)

var Kinds []Kind = []Kind{KindSnak, KindSnaks, KindReference, KindClaim, KindClaims, KindTerm, KindTermList}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

type factoryOptions struct {
	idParser   EntityIDParser
	dataValues DataValueCodec
	hasher     ReferenceHasher
	noHasher   bool
	policy     HashPolicy
}

type FactoryOption func(*factoryOptions)

func WithEntityIDParser(parser EntityIDParser) FactoryOption {
	return func(o *factoryOptions) {
		o.idParser = parser
	}
}

func WithDataValueCodec(dataValues DataValueCodec) FactoryOption {
	return func(o *factoryOptions) {
		o.dataValues = dataValues
	}
}

func WithHashPolicy(policy HashPolicy) FactoryOption {
	return func(o *factoryOptions) {
		o.policy = policy
	}
}

// WithReferenceHasher replaces the default hasher. A nil hasher disables hash
// computation so that decoded references keep whatever hash they carried.
func WithReferenceHasher(hasher ReferenceHasher) FactoryOption {
	return func(o *factoryOptions) {
		o.hasher = hasher
		o.noHasher = hasher == nil
	}
}

// Factory wires the codecs together. A Factory is immutable once created and
// safe for concurrent use.
type Factory struct {
	snak       *SnakCodec
	snaks      *SnaksCodec
	references *ReferenceCodec
	claim      *ClaimCodec
	claims     *ClaimsCodec
	term       *TermCodec
	termList   *TermListCodec
}

func NewFactory(options ...FactoryOption) *Factory {
	opts := &factoryOptions{
		idParser: ids.Parser{},
		policy:   TrustHash,
	}

	for _, option := range options {
		option(opts)
	}

	if opts.dataValues == nil {
		opts.dataValues = NewDataValueCodec(opts.idParser)
	}

	f := &Factory{}

	f.snak = NewSnakCodec(opts.idParser, opts.dataValues)
	f.snaks = NewSnaksCodec(f.snak)

	hasher := opts.hasher
	if hasher == nil && !opts.noHasher {
		hasher = NewReferenceHasher(f.snaks)
	}

	f.references = NewReferenceCodec(f.snaks, hasher, opts.policy)
	f.claim = NewClaimCodec(f.snak, f.snaks, f.references)
	f.claims = NewClaimsCodec(f.claim)
	f.term = NewTermCodec()
	f.termList = NewTermListCodec(f.term)

	return f
}

func (f *Factory) SnakCodec() *SnakCodec           { return f.snak }
func (f *Factory) SnaksCodec() *SnaksCodec         { return f.snaks }
func (f *Factory) ReferenceCodec() *ReferenceCodec { return f.references }
func (f *Factory) ClaimCodec() *ClaimCodec         { return f.claim }
func (f *Factory) ClaimsCodec() *ClaimsCodec       { return f.claims }
func (f *Factory) TermCodec() *TermCodec           { return f.term }
func (f *Factory) TermListCodec() *TermListCodec   { return f.termList }

// Deserialize decodes a wire value of the given kind. The result is one of
// snaks.Snak, snaks.List, references.Reference, claims.Claim, claims.List,
// terms.Term or terms.TermList.
func (f *Factory) Deserialize(kind Kind, serialization any) (any, error) {
	switch kind {
	case KindSnak:
		return f.snak.Deserialize(serialization)
	case KindSnaks:
		return f.snaks.Deserialize(serialization)
	case KindReference:
		return f.references.Deserialize(serialization)
	case KindClaim:
		return f.claim.Deserialize(serialization)
	case KindClaims:
		return f.claims.Deserialize(serialization)
	case KindTerm:
		return f.term.Deserialize(serialization)
	case KindTermList:
		return f.termList.Deserialize(serialization)
	}

	return nil, fmt.Errorf("unknown kind %q", kind)
}

// Serialize encodes any object produced by Deserialize. The format only
// applies to keyed mappings such as claims and term lists.
func (f *Factory) Serialize(object any, format wire.MapFormat) (any, error) {
	switch typed := object.(type) {
	case snaks.Snak:
		return f.snak.Serialize(typed)
	case snaks.List:
		return f.snaks.Serialize(typed)
	case references.Reference:
		return f.references.Serialize(typed)
	case claims.Claim:
		return f.claim.Serialize(typed)
	case claims.List:
		return f.claims.Serialize(typed, format)
	case terms.Term:
		return f.term.Serialize(typed)
	case terms.TermList:
		return f.termList.Serialize(typed, format)
	}

	return nil, wberrors.NewUnsupportedObjectError(object, "no serializer found for the provided object")
}
