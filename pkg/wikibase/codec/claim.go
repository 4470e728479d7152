package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/references"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	claimIDAttr              string = "id"
	claimMainSnakAttr        string = "mainsnak"
	claimTypeAttr            string = "type"
	claimQualifiersAttr      string = "qualifiers"
	claimQualifiersOrderAttr string = "qualifiers-order"
	claimRankAttr            string = "rank"
	claimReferencesAttr      string = "references"
)

// ClaimCodec converts a single claim or statement to and from its record
type ClaimCodec struct {
	snak       *SnakCodec
	snaks      *SnaksCodec
	references *ReferenceCodec
}

func NewClaimCodec(snak *SnakCodec, snaksCodec *SnaksCodec, referenceCodec *ReferenceCodec) *ClaimCodec {
	return &ClaimCodec{
		snak:       snak,
		snaks:      snaksCodec,
		references: referenceCodec,
	}
}

func (cc *ClaimCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return false
	}
	typ, _ := obj.Get(claimTypeAttr)
	return obj.Has(claimMainSnakAttr) && (typ == string(claims.TypeClaim) || typ == string(claims.TypeStatement))
}

func (cc *ClaimCodec) Deserialize(serialization any) (claims.Claim, error) {
	obj, err := requireObject(serialization, "claim")
	if err != nil {
		return claims.Claim{}, err
	}

	typ, ok := obj.Get(claimTypeAttr)
	if !ok {
		return claims.Claim{}, wberrors.NewMissingTypeError(claimTypeAttr)
	}

	claimType := claims.Type(fmt.Sprintf("%v", typ))
	if _, isString := typ.(string); !isString || (claimType != claims.TypeClaim && claimType != claims.TypeStatement) {
		return claims.Claim{}, wberrors.NewUnsupportedTypeError(typ)
	}

	rawMainSnak, err := requireAttribute(obj, claimMainSnakAttr)
	if err != nil {
		return claims.Claim{}, err
	}

	mainSnak, err := cc.snak.Deserialize(rawMainSnak)
	if err != nil {
		return claims.Claim{}, wberrors.AtPosition(err, claimMainSnakAttr)
	}

	decorators := []claims.ClaimDecoratorFunc{}

	if raw, ok := obj.Get(claimIDAttr); ok {
		guid, err := asString(claimIDAttr, raw)
		if err != nil {
			return claims.Claim{}, err
		}
		if guid == "" {
			return claims.Claim{}, wberrors.NewInvalidAttributeError(claimIDAttr, raw, "the id must not be empty")
		}
		decorators = append(decorators, claims.GUID(guid))
	}

	if raw, ok := obj.Get(claimQualifiersAttr); ok {
		qualifiers, err := cc.deserializeQualifiers(obj, raw)
		if err != nil {
			return claims.Claim{}, err
		}
		decorators = append(decorators, claims.Qualifiers(qualifiers...))
	}

	if claimType == claims.TypeClaim {
		for _, attr := range []string{claimRankAttr, claimReferencesAttr} {
			if raw, ok := obj.Get(attr); ok {
				return claims.Claim{}, wberrors.NewInvalidAttributeError(attr, raw, "only statements may have a "+attr)
			}
		}
		decorators = append(decorators, claims.AsClaim())
		return claims.New(mainSnak, decorators...), nil
	}

	if raw, ok := obj.Get(claimRankAttr); ok {
		rank := claims.Rank(fmt.Sprintf("%v", raw))
		if _, isString := raw.(string); !isString || !rank.IsValid() {
			return claims.Claim{}, wberrors.NewInvalidAttributeError(claimRankAttr, raw, fmt.Sprintf("'%v' is not a valid rank", raw))
		}
		decorators = append(decorators, claims.WithRank(rank))
	}

	if raw, ok := obj.Get(claimReferencesAttr); ok {
		refs, err := cc.deserializeReferences(raw)
		if err != nil {
			return claims.Claim{}, err
		}
		decorators = append(decorators, claims.References(refs...))
	}

	return claims.New(mainSnak, decorators...), nil
}

func (cc *ClaimCodec) deserializeQualifiers(obj *wire.Object, raw any) (snaks.List, error) {
	order, hasOrder, err := optionalStringList(obj, claimQualifiersOrderAttr)
	if err != nil {
		return nil, err
	}

	qualifiers, err := cc.snaks.DeserializeOrdered(raw, claimQualifiersOrderAttr, order)
	if err != nil {
		return nil, wberrors.AtPosition(err, claimQualifiersAttr)
	}

	if _, isArray := wire.AsArray(raw); isArray && hasOrder && !equalStrings(order, SnaksOrder(qualifiers)) {
		return nil, wberrors.NewInvalidAttributeError(
			claimQualifiersOrderAttr, order, "the order does not match the properties of the qualifiers",
		)
	}

	return qualifiers, nil
}

func (cc *ClaimCodec) deserializeReferences(raw any) ([]references.Reference, error) {
	arr, ok := wire.AsArray(raw)
	if !ok {
		return nil, wberrors.AtPosition(
			wberrors.NewMalformedInputError("the references serialization should be a list"), claimReferencesAttr,
		)
	}

	refs := make([]references.Reference, 0, len(arr))
	for idx, item := range arr {
		ref, err := cc.references.Deserialize(item)
		if err != nil {
			return nil, wberrors.AtPosition(wberrors.AtPosition(err, idx), claimReferencesAttr)
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

func (cc *ClaimCodec) IsSerializerFor(object claims.Claim) bool {
	return object.MainSnak() != nil && (object.Type() == claims.TypeClaim || object.Type() == claims.TypeStatement)
}

func (cc *ClaimCodec) Serialize(object claims.Claim) (any, error) {
	if !cc.IsSerializerFor(object) {
		return nil, wberrors.NewUnsupportedObjectError(object, "ClaimCodec can only serialize claims with a main snak")
	}

	mainSnak, err := cc.snak.Serialize(object.MainSnak())
	if err != nil {
		return nil, wberrors.AtPosition(err, claimMainSnakAttr)
	}

	obj := wire.NewObject(
		wire.Entry{Key: claimMainSnakAttr, Value: mainSnak},
		wire.Entry{Key: claimTypeAttr, Value: string(object.Type())},
	)

	if object.GUID() != "" {
		obj.Set(claimIDAttr, object.GUID())
	}

	if len(object.Qualifiers()) > 0 {
		qualifiers, err := cc.snaks.Serialize(object.Qualifiers())
		if err != nil {
			return nil, wberrors.AtPosition(err, claimQualifiersAttr)
		}
		obj.Set(claimQualifiersAttr, qualifiers)
		obj.Set(claimQualifiersOrderAttr, toArray(SnaksOrder(object.Qualifiers())))
	}

	if object.Type() == claims.TypeClaim {
		return obj, nil
	}

	rank := object.Rank()
	if rank == "" {
		rank = claims.RankNormal
	}
	obj.Set(claimRankAttr, string(rank))

	if len(object.References()) > 0 {
		refs := make(wire.Array, 0, len(object.References()))
		for idx, ref := range object.References() {
			r, err := cc.references.Serialize(ref)
			if err != nil {
				return nil, wberrors.AtPosition(wberrors.AtPosition(err, idx), claimReferencesAttr)
			}
			refs = append(refs, r)
		}
		obj.Set(claimReferencesAttr, refs)
	}

	return obj, nil
}
