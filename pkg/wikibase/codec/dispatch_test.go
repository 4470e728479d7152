package codec

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

type kindCodec struct {
	kind string
}

func (kc kindCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	if !ok {
		return false
	}
	k, _ := obj.Get("kind")
	return k == kc.kind
}

func (kc kindCodec) Deserialize(serialization any) (string, error) {
	return kc.kind, nil
}

func (kc kindCodec) IsSerializerFor(object string) bool {
	return object == kc.kind
}

func (kc kindCodec) Serialize(object string) (any, error) {
	return wire.NewObject(wire.Entry{Key: "kind", Value: object}), nil
}

func TestDispatcherRoutesToFirstMatchingCodec(t *testing.T) {
	is := is.New(t)

	d := NewDispatcher[string]("kind", kindCodec{"foo"}, kindCodec{"bar"})

	is.True(d.IsDeserializerFor(decode(t, `{"kind":"bar"}`)))

	v, err := d.Deserialize(decode(t, `{"kind":"bar"}`))
	is.NoErr(err)
	is.Equal(v, "bar")

	s, err := d.Serialize("foo")
	is.NoErr(err)
	is.Equal(encode(t, s), `{"kind":"foo"}`)
}

func TestDispatcherReportsWhyNothingMatched(t *testing.T) {
	is := is.New(t)

	d := NewDispatcher[string]("kind", kindCodec{"foo"})

	_, err := d.Deserialize(decode(t, `{"kind":"baz"}`))
	is.True(errors.Is(err, wberrors.ErrUnsupportedType))

	_, err = d.Deserialize(decode(t, `{"other":"foo"}`))
	is.True(errors.Is(err, wberrors.ErrMissingType))

	_, err = d.Deserialize(decode(t, `"foo"`))
	is.True(errors.Is(err, wberrors.ErrMalformedInput))

	is.True(!d.IsSerializerFor("baz"))
	_, err = d.Serialize("baz")
	is.True(errors.Is(err, wberrors.ErrUnsupportedObject))
}

func TestDispatcherRegistryIsFixedOnCreation(t *testing.T) {
	is := is.New(t)

	codecs := []Codec[string]{kindCodec{"foo"}}
	d := NewDispatcher("kind", codecs...)

	codecs[0] = kindCodec{"bar"}

	is.True(d.IsSerializerFor("foo"))
	is.True(!d.IsSerializerFor("bar"))
}
