package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

func requireObject(serialization any, what string) (*wire.Object, error) {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return nil, wberrors.NewMalformedInputError(fmt.Sprintf("the %s serialization should be an object", what))
	}
	return obj, nil
}

func requireAttribute(obj *wire.Object, attribute string) (any, error) {
	v, ok := obj.Get(attribute)
	if !ok {
		return nil, wberrors.NewMissingAttributeError(attribute)
	}
	return v, nil
}

func requireString(obj *wire.Object, attribute string) (string, error) {
	v, err := requireAttribute(obj, attribute)
	if err != nil {
		return "", err
	}
	return asString(attribute, v)
}

func asString(attribute string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", wberrors.NewInvalidAttributeError(attribute, v, fmt.Sprintf("expected a string, got %T", v))
	}
	return s, nil
}

// optionalStringList returns nil, false when the attribute is absent
func optionalStringList(obj *wire.Object, attribute string) ([]string, bool, error) {
	v, ok := obj.Get(attribute)
	if !ok {
		return nil, false, nil
	}

	arr, ok := wire.AsArray(v)
	if !ok {
		return nil, true, wberrors.NewInvalidAttributeError(attribute, v, "expected a list of strings")
	}

	result := make([]string, 0, len(arr))
	for idx, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, true, wberrors.AtPosition(
				wberrors.NewInvalidAttributeError(attribute, item, fmt.Sprintf("expected a string, got %T", item)),
				fmt.Sprintf("%s/%d", attribute, idx),
			)
		}
		result = append(result, s)
	}

	return result, true, nil
}

func toArray(values []string) wire.Array {
	arr := make(wire.Array, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return arr
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
