package snaks

import (
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/datavalues"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
)

// Type is the discriminator of the snak variants
type Type string

const (
	NoValue   Type = "novalue"
	SomeValue Type = "somevalue"
	Value     Type = "value"
)

// Types lists every snak variant
var Types = []Type{NoValue, SomeValue, Value}

// Snak is one of NoValueSnak, SomeValueSnak or ValueSnak
type Snak interface {
	Type() Type
	PropertyID() ids.PropertyID
	Equal(other Snak) bool

	snak()
}

type snakImpl struct {
	propertyID ids.PropertyID
}

func (s snakImpl) PropertyID() ids.PropertyID {
	return s.propertyID
}

func (snakImpl) snak() {}

// NoValueSnak states that the property has no value
type NoValueSnak struct {
	snakImpl
}

func NewNoValueSnak(propertyID ids.PropertyID) NoValueSnak {
	return NoValueSnak{snakImpl{propertyID: propertyID}}
}

func (NoValueSnak) Type() Type { return NoValue }

func (s NoValueSnak) Equal(other Snak) bool {
	o, ok := other.(NoValueSnak)
	return ok && o.propertyID == s.propertyID
}

// SomeValueSnak states that the property has a value that is not known
type SomeValueSnak struct {
	snakImpl
}

func NewSomeValueSnak(propertyID ids.PropertyID) SomeValueSnak {
	return SomeValueSnak{snakImpl{propertyID: propertyID}}
}

func (SomeValueSnak) Type() Type { return SomeValue }

func (s SomeValueSnak) Equal(other Snak) bool {
	o, ok := other.(SomeValueSnak)
	return ok && o.propertyID == s.propertyID
}

// ValueSnak states that the property has a specific value
type ValueSnak struct {
	snakImpl
	dataValue datavalues.DataValue
}

func NewValueSnak(propertyID ids.PropertyID, value datavalues.DataValue) ValueSnak {
	return ValueSnak{
		snakImpl:  snakImpl{propertyID: propertyID},
		dataValue: value,
	}
}

func (ValueSnak) Type() Type { return Value }

func (s ValueSnak) DataValue() datavalues.DataValue {
	return s.dataValue
}

func (s ValueSnak) Equal(other Snak) bool {
	o, ok := other.(ValueSnak)
	return ok && o.propertyID == s.propertyID && datavalues.Equal(o.dataValue, s.dataValue)
}

// List is an ordered collection of snaks. Several snaks may share a property.
type List []Snak

func NewList(s ...Snak) List {
	l := make(List, 0, len(s))
	return append(l, s...)
}

func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}

	for i := range l {
		if l[i] == nil || other[i] == nil {
			if l[i] != other[i] {
				return false
			}
			continue
		}
		if !l[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// ByProperty returns the snaks of a single property in list order
func (l List) ByProperty(propertyID ids.PropertyID) List {
	result := List{}
	for _, s := range l {
		if s != nil && s.PropertyID() == propertyID {
			result = append(result, s)
		}
	}
	return result
}
