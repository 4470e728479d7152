package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

// SnaksCodec converts an ordered list of snaks to and from an array of snak records
type SnaksCodec struct {
	snak *SnakCodec
}

func NewSnaksCodec(snak *SnakCodec) *SnaksCodec {
	return &SnaksCodec{snak: snak}
}

// SnaksOrder returns the distinct property ids of list in order of first occurrence
func SnaksOrder(list snaks.List) []string {
	order := []string{}
	seen := map[string]bool{}

	for _, s := range list {
		if s == nil {
			continue
		}
		id := s.PropertyID().Serialization()
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}

	return order
}

func (sc *SnaksCodec) Serialize(list snaks.List) (any, error) {
	arr := make(wire.Array, 0, len(list))

	for idx, s := range list {
		v, err := sc.snak.Serialize(s)
		if err != nil {
			return nil, wberrors.AtPosition(err, idx)
		}
		arr = append(arr, v)
	}

	return arr, nil
}

// Deserialize accepts the canonical array form as well as the legacy form
// where snaks are grouped by property in an object
func (sc *SnaksCodec) Deserialize(serialization any) (snaks.List, error) {
	return sc.DeserializeOrdered(serialization, "", nil)
}

// DeserializeOrdered is like Deserialize, but when the snaks are grouped by
// property the groups are emitted in the order read from orderAttr. Groups
// missing from order follow in the order they were encountered.
func (sc *SnaksCodec) DeserializeOrdered(serialization any, orderAttr string, order []string) (snaks.List, error) {
	if arr, ok := wire.AsArray(serialization); ok {
		return sc.deserializeArray(arr)
	}

	if obj, ok := wire.AsObject(serialization); ok {
		return sc.deserializeGrouped(obj, orderAttr, order)
	}

	return nil, wberrors.NewMalformedInputError("the snaks serialization should be a list")
}

func (sc *SnaksCodec) deserializeArray(arr wire.Array) (snaks.List, error) {
	list := make(snaks.List, 0, len(arr))

	for idx, item := range arr {
		s, err := sc.snak.Deserialize(item)
		if err != nil {
			return nil, wberrors.AtPosition(err, idx)
		}
		list = append(list, s)
	}

	return list, nil
}

func (sc *SnaksCodec) deserializeGrouped(obj *wire.Object, orderAttr string, order []string) (snaks.List, error) {
	keys := []string{}
	seen := map[string]bool{}

	for _, key := range order {
		if !obj.Has(key) {
			return nil, wberrors.NewInvalidAttributeError(orderAttr, order, fmt.Sprintf("property %s is listed in the order but has no snaks", key))
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, key := range obj.Keys() {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	list := snaks.List{}

	for _, key := range keys {
		group, _ := obj.Get(key)

		arr, ok := wire.AsArray(group)
		if !ok {
			return nil, wberrors.AtPosition(
				wberrors.NewMalformedInputError("the snaks per property should be a list"), key,
			)
		}

		for idx, item := range arr {
			s, err := sc.snak.Deserialize(item)
			if err != nil {
				return nil, wberrors.AtPosition(wberrors.AtPosition(err, idx), key)
			}

			if s.PropertyID().Serialization() != key {
				return nil, wberrors.AtPosition(wberrors.AtPosition(
					wberrors.NewInvalidAttributeError(
						snakPropertyAttr, s.PropertyID().Serialization(),
						fmt.Sprintf("snak property does not match the group key %s", key),
					), idx), key)
			}

			list = append(list, s)
		}
	}

	return list, nil
}
