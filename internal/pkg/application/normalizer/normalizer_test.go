package normalizer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/diwise/wikibase-codec/pkg/wikibase/codec"
	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

func TestNewWithDefaultConfig(t *testing.T) {
	is := is.New(t)

	_, err := New(context.Background(), DefaultConfig())
	is.NoErr(err)
}

func TestNewWithInvalidConfigFails(t *testing.T) {
	is := is.New(t)

	cfg := DefaultConfig()
	cfg.Output.MapFormat = "list"

	_, err := New(context.Background(), cfg)
	is.True(err != nil) // should have returned an error
}

func TestNormalizeReordersLegacyQualifiers(t *testing.T) {
	is, n := setupNormalizerTest(t, DefaultConfig())

	out, err := n.Normalize(context.Background(), codec.KindClaims, []byte(legacyClaimsJSON))
	is.NoErr(err)
	is.Equal(string(out), canonicalClaimsJSON)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	is, n := setupNormalizerTest(t, DefaultConfig())

	out, err := n.Normalize(context.Background(), codec.KindClaims, []byte(canonicalClaimsJSON))
	is.NoErr(err)
	is.Equal(string(out), canonicalClaimsJSON)
}

func TestNormalizeEmptyTermListHonoursMapFormat(t *testing.T) {
	cfg := DefaultConfig()
	is, n := setupNormalizerTest(t, cfg)

	out, err := n.Normalize(context.Background(), codec.KindTermList, []byte(`[]`))
	is.NoErr(err)
	is.Equal(string(out), `{}`)

	cfg.Output.MapFormat = "array"
	_, n = setupNormalizerTest(t, cfg)

	out, err = n.Normalize(context.Background(), codec.KindTermList, []byte(`{}`))
	is.NoErr(err)
	is.Equal(string(out), `[]`)
}

func TestNormalizeWithIndent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Indent = "  "
	is, n := setupNormalizerTest(t, cfg)

	out, err := n.Normalize(context.Background(), codec.KindSnak, []byte(`{"snaktype":"novalue","property":"P1"}`))
	is.NoErr(err)
	is.Equal(string(out), "{\n  \"snaktype\": \"novalue\",\n  \"property\": \"P1\"\n}")
}

func TestNormalizeAssignsMissingGUIDs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Claims.AssignMissingGUIDs = true
	cfg.Claims.Subject = "Q42"
	is, n := setupNormalizerTest(t, cfg)

	out, err := n.Normalize(context.Background(), codec.KindClaims, []byte(legacyClaimsJSON))
	is.NoErr(err)

	v, err := wire.Unmarshal(out)
	is.NoErr(err)

	object, err := codec.NewFactory().Deserialize(codec.KindClaims, v)
	is.NoErr(err)

	list := object.(claims.List)
	is.Equal(len(list), 2)
	is.Equal(list[0].GUID(), "Q42$1")
	is.True(strings.HasPrefix(list[1].GUID(), "Q42$"))
	is.True(list[1].GUID() != "Q42$")
}

func TestNormalizeToMsgpack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Encoding = EncodingMsgpack
	is, n := setupNormalizerTest(t, cfg)

	out, err := n.Normalize(context.Background(), codec.KindSnak, []byte(`{"snaktype":"somevalue","property":"P7"}`))
	is.NoErr(err)

	dec := msgpack.NewDecoder(bytes.NewReader(out))
	l, err := dec.DecodeMapLen()
	is.NoErr(err)
	is.Equal(l, 2)

	key, err := dec.DecodeString()
	is.NoErr(err)
	is.Equal(key, "snaktype")
}

func TestValidate(t *testing.T) {
	is, n := setupNormalizerTest(t, DefaultConfig())
	ctx := context.Background()

	is.NoErr(n.Validate(ctx, codec.KindTermList, []byte(`{"en":{"language":"en","value":"Lama"}}`)))

	err := n.Validate(ctx, codec.KindTermList, []byte(`{"en":{"language":"de","value":"Lama"}}`))
	is.True(errors.Is(err, wberrors.ErrInvalidAttribute))
	is.Equal(wberrors.PositionOf(err), "/en")

	err = n.Validate(ctx, codec.KindSnak, []byte(`{"snaktype":"value","property":"P1"`))
	is.True(errors.Is(err, wberrors.ErrMalformedInput))
}

func TestVerifyHashPolicyIsApplied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.References.HashPolicy = "verify"
	is, n := setupNormalizerTest(t, cfg)

	err := n.Validate(context.Background(), codec.KindReference, []byte(`{"hash":"nope","snaks":[{"snaktype":"novalue","property":"P1"}]}`))
	is.True(errors.Is(err, wberrors.ErrInvalidAttribute))
}

func setupNormalizerTest(t *testing.T, cfg Config) (*is.I, Normalizer) {
	is := is.New(t)

	n, err := New(context.Background(), cfg)
	is.NoErr(err)

	return is, n
}

const legacyClaimsJSON string = `{
	"P31": [
		{
			"id": "Q42$1",
			"mainsnak": {"snaktype":"novalue","property":"P31"},
			"type": "statement",
			"qualifiers": {
				"P1": [{"snaktype":"novalue","property":"P1"}],
				"P2": [{"snaktype":"somevalue","property":"P2"}]
			},
			"qualifiers-order": ["P2","P1"]
		},
		{
			"mainsnak": {"snaktype":"somevalue","property":"P31"},
			"type": "claim"
		}
	]
}`

const canonicalClaimsJSON string = `{"P31":[{"mainsnak":{"snaktype":"novalue","property":"P31"},"type":"statement","id":"Q42$1","qualifiers":[{"snaktype":"somevalue","property":"P2"},{"snaktype":"novalue","property":"P1"}],"qualifiers-order":["P2","P1"],"rank":"normal"},{"mainsnak":{"snaktype":"somevalue","property":"P31"},"type":"claim"}]}`
