package codec

import (
	"strconv"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

// ClaimGroup holds the claims of a single main snak property in list order
type ClaimGroup struct {
	PropertyID string
	Claims     claims.List
}

// GroupByProperty groups claims by the property of their main snak. Groups
// appear in order of first occurrence and keep the order of their claims.
func GroupByProperty(list claims.List) []ClaimGroup {
	groups := []ClaimGroup{}
	index := map[string]int{}

	for _, c := range list {
		if c.MainSnak() == nil {
			continue
		}

		key := c.MainSnak().PropertyID().Serialization()

		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, ClaimGroup{PropertyID: key, Claims: claims.List{}})
		}

		groups[idx].Claims = append(groups[idx].Claims, c)
	}

	return groups
}

// ClaimsCodec converts a list of claims to and from a mapping of property id to claim records
type ClaimsCodec struct {
	claim *ClaimCodec
}

func NewClaimsCodec(claim *ClaimCodec) *ClaimsCodec {
	return &ClaimsCodec{claim: claim}
}

// Serialize groups the claims by main snak property. The format decides how
// the resulting mapping is presented and does not affect its content.
func (cc *ClaimsCodec) Serialize(list claims.List, format wire.MapFormat) (any, error) {
	for idx, c := range list {
		if !cc.claim.IsSerializerFor(c) {
			return nil, wberrors.AtPosition(
				wberrors.NewUnsupportedObjectError(c, "ClaimsCodec can only serialize claims with a main snak"), idx,
			)
		}
	}

	result := wire.NewMap(format)

	for _, group := range GroupByProperty(list) {
		arr := make(wire.Array, 0, len(group.Claims))

		for idx, c := range group.Claims {
			v, err := cc.claim.Serialize(c)
			if err != nil {
				return nil, wberrors.AtPosition(wberrors.AtPosition(err, idx), group.PropertyID)
			}
			arr = append(arr, v)
		}

		result.Set(group.PropertyID, arr)
	}

	return result, nil
}

// Deserialize flattens the per property containers into a single list in
// encounter order. The grouping itself is not kept.
func (cc *ClaimsCodec) Deserialize(serialization any) (claims.List, error) {
	if !wire.IsContainer(serialization) {
		return nil, wberrors.NewMalformedInputError("the claims serialization should be a container")
	}

	keys, groups := containerEntries(serialization)

	for idx, group := range groups {
		if !wire.IsContainer(group) {
			return nil, wberrors.AtPosition(
				wberrors.NewMalformedInputError("the claims per property should be a container"), keys[idx],
			)
		}
	}

	list := claims.List{}

	for idx, group := range groups {
		items, _ := wire.Values(group)
		for itemIdx, item := range items {
			c, err := cc.claim.Deserialize(item)
			if err != nil {
				return nil, wberrors.AtPosition(wberrors.AtPosition(err, itemIdx), keys[idx])
			}
			list = append(list, c)
		}
	}

	return list, nil
}

// containerEntries returns the position labels and the values of a container
func containerEntries(container any) ([]string, []any) {
	if obj, ok := container.(*wire.Object); ok {
		values := make([]any, 0, obj.Len())
		for _, e := range obj.Entries() {
			values = append(values, e.Value)
		}
		return obj.Keys(), values
	}

	arr, _ := wire.AsArray(container)
	keys := make([]string, 0, len(arr))
	for idx := range arr {
		keys = append(keys, strconv.Itoa(idx))
	}
	return keys, arr
}
