package datavalues

import (
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	StringType          string = "string"
	MonolingualTextType string = "monolingualtext"
	EntityIDType        string = "wikibase-entityid"
)

// DataValue is the payload of a value snak
type DataValue interface {
	Type() string
	Value() any
	Equal(other DataValue) bool
}

// StringValue holds a plain string
type StringValue struct {
	Val string
}

func NewStringValue(value string) StringValue {
	return StringValue{Val: value}
}

func (sv StringValue) Type() string { return StringType }
func (sv StringValue) Value() any   { return sv.Val }

func (sv StringValue) Equal(other DataValue) bool {
	o, ok := other.(StringValue)
	return ok && o == sv
}

// MonolingualTextValue is a text in a single, known language
type MonolingualTextValue struct {
	Language string
	Text     string
}

func NewMonolingualTextValue(language, text string) MonolingualTextValue {
	return MonolingualTextValue{Language: language, Text: text}
}

func (mtv MonolingualTextValue) Type() string { return MonolingualTextType }
func (mtv MonolingualTextValue) Value() any   { return mtv }

func (mtv MonolingualTextValue) Equal(other DataValue) bool {
	o, ok := other.(MonolingualTextValue)
	return ok && o == mtv
}

// EntityIDValue points at another entity
type EntityIDValue struct {
	ID ids.EntityID
}

func NewEntityIDValue(id ids.EntityID) EntityIDValue {
	return EntityIDValue{ID: id}
}

func (eiv EntityIDValue) Type() string { return EntityIDType }
func (eiv EntityIDValue) Value() any   { return eiv.ID }

func (eiv EntityIDValue) Equal(other DataValue) bool {
	o, ok := other.(EntityIDValue)
	if !ok || o.ID == nil || eiv.ID == nil {
		return ok && o.ID == nil && eiv.ID == nil
	}
	return o.ID.EntityType() == eiv.ID.EntityType() && o.ID.Serialization() == eiv.ID.Serialization()
}

// UnknownValue keeps a data value of a type without a registered codec. The
// raw wire value is passed through verbatim.
type UnknownValue struct {
	DataType string
	Raw      any
}

func NewUnknownValue(dataType string, raw any) UnknownValue {
	return UnknownValue{DataType: dataType, Raw: raw}
}

func (uv UnknownValue) Type() string { return uv.DataType }
func (uv UnknownValue) Value() any   { return uv.Raw }

func (uv UnknownValue) Equal(other DataValue) bool {
	o, ok := other.(UnknownValue)
	return ok && o.DataType == uv.DataType && wire.Equal(o.Raw, uv.Raw)
}

// Equal compares two, possibly nil, data values
func Equal(a, b DataValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
