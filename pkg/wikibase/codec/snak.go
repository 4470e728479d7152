package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	snakTypeAttr      string = "snaktype"
	snakPropertyAttr  string = "property"
	snakDataValueAttr string = "datavalue"
)

type snakConstructor func(sc *SnakCodec, propertyID ids.PropertyID, obj *wire.Object) (snaks.Snak, error)

// SnakCodec converts snaks to and from `{"snaktype", "property", "datavalue"?}` records
type SnakCodec struct {
	idParser     EntityIDParser
	dataValues   DataValueCodec
	constructors map[snaks.Type]snakConstructor
}

func NewSnakCodec(idParser EntityIDParser, dataValues DataValueCodec) *SnakCodec {
	return &SnakCodec{
		idParser:   idParser,
		dataValues: dataValues,
		constructors: map[snaks.Type]snakConstructor{
			snaks.NoValue: func(_ *SnakCodec, pid ids.PropertyID, _ *wire.Object) (snaks.Snak, error) {
				return snaks.NewNoValueSnak(pid), nil
			},
			snaks.SomeValue: func(_ *SnakCodec, pid ids.PropertyID, _ *wire.Object) (snaks.Snak, error) {
				return snaks.NewSomeValueSnak(pid), nil
			},
			snaks.Value: newValueSnak,
		},
	}
}

func newValueSnak(sc *SnakCodec, pid ids.PropertyID, obj *wire.Object) (snaks.Snak, error) {
	raw, err := requireAttribute(obj, snakDataValueAttr)
	if err != nil {
		return nil, err
	}

	dv, err := sc.dataValues.Deserialize(raw)
	if err != nil {
		return nil, wberrors.AtPosition(err, snakDataValueAttr)
	}

	return snaks.NewValueSnak(pid, dv), nil
}

func (sc *SnakCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return false
	}

	typ, ok := obj.Get(snakTypeAttr)
	if !ok {
		return false
	}

	s, ok := typ.(string)
	if !ok {
		return false
	}

	_, ok = sc.constructors[snaks.Type(s)]
	return ok
}

func (sc *SnakCodec) Deserialize(serialization any) (snaks.Snak, error) {
	obj, err := requireObject(serialization, "snak")
	if err != nil {
		return nil, err
	}

	typ, ok := obj.Get(snakTypeAttr)
	if !ok {
		return nil, wberrors.NewMissingTypeError(snakTypeAttr)
	}

	typeName, _ := typ.(string)
	constructor, ok := sc.constructors[snaks.Type(typeName)]
	if !ok {
		return nil, wberrors.NewUnsupportedTypeError(typ)
	}

	rawProperty, err := requireAttribute(obj, snakPropertyAttr)
	if err != nil {
		return nil, err
	}

	propertyID, err := sc.deserializePropertyID(rawProperty)
	if err != nil {
		return nil, err
	}

	return constructor(sc, propertyID, obj)
}

func (sc *SnakCodec) deserializePropertyID(raw any) (ids.PropertyID, error) {
	s, ok := raw.(string)
	if !ok {
		return ids.PropertyID{}, wberrors.NewInvalidAttributeError(
			snakPropertyAttr, raw, fmt.Sprintf("'%v' is not a valid property ID", raw),
		)
	}

	id, err := sc.idParser.Parse(s)
	if err != nil {
		return ids.PropertyID{}, wberrors.NewInvalidAttributeError(
			snakPropertyAttr, raw, fmt.Sprintf("'%s' is not a valid property ID: %s", s, err.Error()),
		)
	}

	propertyID, ok := id.(ids.PropertyID)
	if !ok {
		return ids.PropertyID{}, wberrors.NewInvalidAttributeError(
			snakPropertyAttr, raw, fmt.Sprintf("'%s' is not a valid property ID", s),
		)
	}

	return propertyID, nil
}

func (sc *SnakCodec) IsSerializerFor(object snaks.Snak) bool {
	switch object.(type) {
	case snaks.NoValueSnak, snaks.SomeValueSnak, snaks.ValueSnak:
		return true
	}
	return false
}

func (sc *SnakCodec) Serialize(object snaks.Snak) (any, error) {
	if !sc.IsSerializerFor(object) {
		return nil, wberrors.NewUnsupportedObjectError(object, "SnakCodec can only serialize snaks")
	}

	if object.PropertyID().IsZero() {
		return nil, wberrors.NewUnsupportedObjectError(object, "can not serialize a snak without a property")
	}

	obj := wire.NewObject(
		wire.Entry{Key: snakTypeAttr, Value: string(object.Type())},
		wire.Entry{Key: snakPropertyAttr, Value: object.PropertyID().Serialization()},
	)

	if vs, ok := object.(snaks.ValueSnak); ok {
		dv, err := sc.dataValues.Serialize(vs.DataValue())
		if err != nil {
			return nil, wberrors.AtPosition(err, snakDataValueAttr)
		}
		obj.Set(snakDataValueAttr, dv)
	}

	return obj, nil
}
