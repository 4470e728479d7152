package codec

import (
	"fmt"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

// Deserializer decodes wire values into T. IsDeserializerFor must be a cheap
// probe that never fails, Deserialize may still reject the value.
type Deserializer[T any] interface {
	IsDeserializerFor(serialization any) bool
	Deserialize(serialization any) (T, error)
}

// Serializer encodes T into wire values
type Serializer[T any] interface {
	IsSerializerFor(object T) bool
	Serialize(object T) (any, error)
}

// Codec handles both directions for a single shape
type Codec[T any] interface {
	Deserializer[T]
	Serializer[T]
}

// Dispatcher routes a value to the first registered codec that claims it. The
// registry is copied on construction and never changes afterwards.
type Dispatcher[T any] struct {
	discriminator string
	codecs        []Codec[T]
}

// NewDispatcher creates a dispatcher over codecs. The discriminator attribute
// is only used to report why no codec matched.
func NewDispatcher[T any](discriminator string, codecs ...Codec[T]) Dispatcher[T] {
	return Dispatcher[T]{
		discriminator: discriminator,
		codecs:        append([]Codec[T]{}, codecs...),
	}
}

func (d Dispatcher[T]) IsDeserializerFor(serialization any) bool {
	for _, c := range d.codecs {
		if c.IsDeserializerFor(serialization) {
			return true
		}
	}
	return false
}

func (d Dispatcher[T]) Deserialize(serialization any) (T, error) {
	for _, c := range d.codecs {
		if c.IsDeserializerFor(serialization) {
			return c.Deserialize(serialization)
		}
	}

	var zero T
	return zero, d.noDeserializerError(serialization)
}

func (d Dispatcher[T]) noDeserializerError(serialization any) error {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return wberrors.NewMalformedInputError(fmt.Sprintf("expected an object, got %T", serialization))
	}

	if d.discriminator == "" {
		return wberrors.NewMalformedInputError("no deserializer found for the provided object")
	}

	typ, ok := obj.Get(d.discriminator)
	if !ok {
		return wberrors.NewMissingTypeError(d.discriminator)
	}

	return wberrors.NewUnsupportedTypeError(typ)
}

func (d Dispatcher[T]) IsSerializerFor(object T) bool {
	for _, c := range d.codecs {
		if c.IsSerializerFor(object) {
			return true
		}
	}
	return false
}

func (d Dispatcher[T]) Serialize(object T) (any, error) {
	for _, c := range d.codecs {
		if c.IsSerializerFor(object) {
			return c.Serialize(object)
		}
	}

	return nil, wberrors.NewUnsupportedObjectError(object, "no serializer found for the provided object")
}
