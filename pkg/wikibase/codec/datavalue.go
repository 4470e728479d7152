package codec

import (
	"encoding/json"
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/datavalues"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	dataValueTypeAttr  string = "type"
	dataValueValueAttr string = "value"
)

// DataValueCodec converts data values to and from their `{"value": ..., "type": ...}` record
type DataValueCodec interface {
	Serialize(value datavalues.DataValue) (any, error)
	Deserialize(serialization any) (datavalues.DataValue, error)
}

// EntityIDParser resolves id strings to typed identifiers
type EntityIDParser interface {
	Parse(serialization string) (ids.EntityID, error)
}

type dataValueDispatcher struct {
	dispatcher Dispatcher[datavalues.DataValue]
}

// NewDataValueCodec creates a codec for the built in data value types. Values
// of any other type are kept as datavalues.UnknownValue.
func NewDataValueCodec(idParser EntityIDParser) DataValueCodec {
	return &dataValueDispatcher{
		dispatcher: NewDispatcher(
			dataValueTypeAttr,
			newValueCodec(datavalues.StringType, deserializeString, serializeString),
			newValueCodec(datavalues.MonolingualTextType, deserializeMonolingualText, serializeMonolingualText),
			newValueCodec(datavalues.EntityIDType, entityIDDeserializer(idParser), serializeEntityID),
			unknownValueCodec{},
		),
	}
}

func (d *dataValueDispatcher) Deserialize(serialization any) (datavalues.DataValue, error) {
	obj, err := requireObject(serialization, "data value")
	if err != nil {
		return nil, err
	}

	typ, ok := obj.Get(dataValueTypeAttr)
	if !ok {
		return nil, wberrors.NewMissingTypeError(dataValueTypeAttr)
	}

	if _, ok := typ.(string); !ok {
		return nil, wberrors.NewUnsupportedTypeError(typ)
	}

	if !obj.Has(dataValueValueAttr) {
		return nil, wberrors.NewMissingAttributeError(dataValueValueAttr)
	}

	return d.dispatcher.Deserialize(obj)
}

func (d *dataValueDispatcher) Serialize(value datavalues.DataValue) (any, error) {
	if value == nil {
		return nil, wberrors.NewUnsupportedObjectError(value, "can not serialize a nil data value")
	}
	return d.dispatcher.Serialize(value)
}

// valueCodec handles a single registered data value type
type valueCodec struct {
	typ         string
	deserialize func(v any) (datavalues.DataValue, error)
	serialize   func(dv datavalues.DataValue) (any, bool)
}

func newValueCodec(typ string, deserialize func(any) (datavalues.DataValue, error), serialize func(datavalues.DataValue) (any, bool)) Codec[datavalues.DataValue] {
	return valueCodec{typ: typ, deserialize: deserialize, serialize: serialize}
}

func (vc valueCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return false
	}
	typ, _ := obj.Get(dataValueTypeAttr)
	return typ == vc.typ
}

func (vc valueCodec) Deserialize(serialization any) (datavalues.DataValue, error) {
	obj, err := requireObject(serialization, "data value")
	if err != nil {
		return nil, err
	}

	v, err := requireAttribute(obj, dataValueValueAttr)
	if err != nil {
		return nil, err
	}

	dv, err := vc.deserialize(v)
	if err != nil {
		return nil, wberrors.AtPosition(err, dataValueValueAttr)
	}
	return dv, nil
}

func (vc valueCodec) IsSerializerFor(dv datavalues.DataValue) bool {
	if dv == nil || dv.Type() != vc.typ {
		return false
	}
	_, ok := vc.serialize(dv)
	return ok
}

func (vc valueCodec) Serialize(dv datavalues.DataValue) (any, error) {
	if dv == nil {
		return nil, wberrors.NewUnsupportedObjectError(dv, fmt.Sprintf("can only serialize %s data values", vc.typ))
	}

	v, ok := vc.serialize(dv)
	if !ok {
		return nil, wberrors.NewUnsupportedObjectError(dv, fmt.Sprintf("can only serialize %s data values", vc.typ))
	}

	return wire.NewObject(
		wire.Entry{Key: dataValueValueAttr, Value: v},
		wire.Entry{Key: dataValueTypeAttr, Value: vc.typ},
	), nil
}

func deserializeString(v any) (datavalues.DataValue, error) {
	s, err := asString(dataValueValueAttr, v)
	if err != nil {
		return nil, err
	}
	return datavalues.NewStringValue(s), nil
}

func serializeString(dv datavalues.DataValue) (any, bool) {
	sv, ok := dv.(datavalues.StringValue)
	return sv.Val, ok
}

func deserializeMonolingualText(v any) (datavalues.DataValue, error) {
	obj, err := requireObject(v, "monolingual text")
	if err != nil {
		return nil, err
	}

	text, err := requireString(obj, "text")
	if err != nil {
		return nil, err
	}

	language, err := requireString(obj, "language")
	if err != nil {
		return nil, err
	}

	return datavalues.NewMonolingualTextValue(language, text), nil
}

func serializeMonolingualText(dv datavalues.DataValue) (any, bool) {
	mtv, ok := dv.(datavalues.MonolingualTextValue)
	if !ok {
		return nil, false
	}
	return wire.NewObject(
		wire.Entry{Key: "text", Value: mtv.Text},
		wire.Entry{Key: "language", Value: mtv.Language},
	), true
}

func entityIDDeserializer(idParser EntityIDParser) func(any) (datavalues.DataValue, error) {
	return func(v any) (datavalues.DataValue, error) {
		obj, err := requireObject(v, "entity id value")
		if err != nil {
			return nil, err
		}

		if raw, ok := obj.Get("id"); ok {
			s, err := asString("id", raw)
			if err != nil {
				return nil, err
			}

			id, err := idParser.Parse(s)
			if err != nil {
				return nil, wberrors.NewInvalidAttributeError("id", raw, err.Error())
			}
			return datavalues.NewEntityIDValue(id), nil
		}

		entityType, err := requireString(obj, "entity-type")
		if err != nil {
			return nil, err
		}

		rawNumber, err := requireAttribute(obj, "numeric-id")
		if err != nil {
			return nil, err
		}

		number, ok := rawNumber.(json.Number)
		if !ok {
			return nil, wberrors.NewInvalidAttributeError("numeric-id", rawNumber, "expected a number")
		}

		n, err := number.Int64()
		if err != nil {
			return nil, wberrors.NewInvalidAttributeError("numeric-id", rawNumber, err.Error())
		}

		id, err := ids.FromNumeric(entityType, n)
		if err != nil {
			return nil, wberrors.NewInvalidAttributeError("entity-type", entityType, err.Error())
		}

		return datavalues.NewEntityIDValue(id), nil
	}
}

func serializeEntityID(dv datavalues.DataValue) (any, bool) {
	eiv, ok := dv.(datavalues.EntityIDValue)
	if !ok || eiv.ID == nil {
		return nil, false
	}
	return wire.NewObject(
		wire.Entry{Key: "entity-type", Value: eiv.ID.EntityType()},
		wire.Entry{Key: "numeric-id", Value: json.Number(fmt.Sprintf("%d", eiv.ID.NumericID()))},
		wire.Entry{Key: "id", Value: eiv.ID.Serialization()},
	), true
}

// unknownValueCodec accepts any typed data value and must be registered last
type unknownValueCodec struct{}

func (unknownValueCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return false
	}
	typ, _ := obj.Get(dataValueTypeAttr)
	_, isString := typ.(string)
	return isString && obj.Has(dataValueValueAttr)
}

func (unknownValueCodec) Deserialize(serialization any) (datavalues.DataValue, error) {
	obj, err := requireObject(serialization, "data value")
	if err != nil {
		return nil, err
	}

	typ, err := requireString(obj, dataValueTypeAttr)
	if err != nil {
		return nil, err
	}

	v, err := requireAttribute(obj, dataValueValueAttr)
	if err != nil {
		return nil, err
	}

	return datavalues.NewUnknownValue(typ, v), nil
}

func (unknownValueCodec) IsSerializerFor(dv datavalues.DataValue) bool {
	_, ok := dv.(datavalues.UnknownValue)
	return ok
}

func (unknownValueCodec) Serialize(dv datavalues.DataValue) (any, error) {
	uv, ok := dv.(datavalues.UnknownValue)
	if !ok {
		return nil, wberrors.NewUnsupportedObjectError(dv, "can only serialize unknown data values")
	}

	return wire.NewObject(
		wire.Entry{Key: dataValueValueAttr, Value: uv.Raw},
		wire.Entry{Key: dataValueTypeAttr, Value: uv.DataType},
	), nil
}
