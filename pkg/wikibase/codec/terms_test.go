package codec

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/terms"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

func TestTermListRoundTrip(t *testing.T) {
	is := is.New(t)
	tlc := NewFactory().TermListCodec()

	list, err := tlc.Deserialize(decode(t, termListJSON))
	is.NoErr(err)
	is.Equal(list.Languages(), []string{"en", "de", "zh-hans"})

	out, err := tlc.Serialize(list, wire.MapsAsArrays)
	is.NoErr(err)
	is.Equal(encode(t, out), termListJSON)
}

func TestSerializeTermListKeepsInsertionOrder(t *testing.T) {
	is := is.New(t)

	list := terms.NewTermList(terms.New("en", "Lama"), terms.New("de", "Delama"))

	out, err := NewFactory().TermListCodec().Serialize(list, wire.MapsAsObjects)
	is.NoErr(err)
	is.Equal(encode(t, out), `{"en":{"language":"en","value":"Lama"},"de":{"language":"de","value":"Delama"}}`)
}

func TestEmptyTermList(t *testing.T) {
	is := is.New(t)
	tlc := NewFactory().TermListCodec()

	out, err := tlc.Serialize(terms.NewTermList(), wire.MapsAsObjects)
	is.NoErr(err)
	is.Equal(encode(t, out), `{}`)

	out, err = tlc.Serialize(terms.NewTermList(), wire.MapsAsArrays)
	is.NoErr(err)
	is.Equal(encode(t, out), `[]`)

	for _, fixture := range []string{`{}`, `[]`} {
		list, err := tlc.Deserialize(decode(t, fixture))
		is.NoErr(err)
		is.Equal(list.Len(), 0)
	}
}

func TestDeserializeTermListErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		fixture  string
		target   error
		position string
	}{
		"key mismatch":     {`{"en":{"language":"de","value":"Lama"}}`, wberrors.ErrInvalidAttribute, "/en"},
		"missing value":    {`{"en":{"language":"en"}}`, wberrors.ErrMissingAttribute, "/en"},
		"missing language": {`{"en":{"value":"Lama"}}`, wberrors.ErrMissingAttribute, "/en"},
		"numeric value":    {`{"en":{"language":"en","value":1}}`, wberrors.ErrInvalidAttribute, "/en"},
		"with source":      {`{"de":{"language":"de","value":"Lama","source":"en"}}`, wberrors.ErrMalformedInput, "/de"},
		"numeric key":      {`{"8":{"language":"8","value":"Lama"}}`, wberrors.ErrInvalidAttribute, ""},
		"scalar entry":     {`{"en":"Lama"}`, wberrors.ErrMalformedInput, "/en"},
		"list of terms":    {`[{"language":"en","value":"Lama"}]`, wberrors.ErrMalformedInput, ""},
		"scalar":           {`"en"`, wberrors.ErrMalformedInput, ""},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := NewFactory().TermListCodec().Deserialize(decode(t, tc.fixture))
			is.True(errors.Is(err, tc.target))
			is.Equal(wberrors.PositionOf(err), tc.position)
		})
	}
}

func TestTermCodec(t *testing.T) {
	is := is.New(t)
	tc := NewFactory().TermCodec()

	is.True(tc.IsDeserializerFor(decode(t, `{"language":"en","value":"Lama"}`)))
	is.True(!tc.IsDeserializerFor(decode(t, `{"language":"en","value":"Lama","source":"de"}`)))

	term, err := tc.Deserialize(decode(t, `{"language":"en","value":"Lama"}`))
	is.NoErr(err)
	is.Equal(term, terms.New("en", "Lama"))

	_, err = tc.Deserialize(decode(t, `{"language":"not a language","value":"Lama"}`))
	is.True(errors.Is(err, wberrors.ErrInvalidAttribute))

	_, err = tc.Serialize(terms.Term{})
	is.True(errors.Is(err, wberrors.ErrUnsupportedObject))
}

const termListJSON string = `{"en":{"language":"en","value":"Lama"},"de":{"language":"de","value":"Lama"},"zh-hans":{"language":"zh-hans","value":"羊驼"}}`
