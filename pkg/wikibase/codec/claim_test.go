package codec

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/claims"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
)

func TestStatementRoundTrip(t *testing.T) {
	is := is.New(t)
	cc := NewFactory().ClaimCodec()

	c, err := cc.Deserialize(decode(t, statementJSON))
	is.NoErr(err)

	is.Equal(c.GUID(), "Q42$F078E5B3-F9A8-480E-B7AC-D97778CBBEF9")
	is.Equal(c.Type(), claims.TypeStatement)
	is.Equal(c.Rank(), claims.RankPreferred)
	is.Equal(SnaksOrder(c.Qualifiers()), []string{"P2", "P1"})
	is.Equal(len(c.References()), 1)

	out, err := cc.Serialize(c)
	is.NoErr(err)
	is.Equal(encode(t, out), statementJSON)
}

func TestClaimRoundTrip(t *testing.T) {
	is := is.New(t)
	cc := NewFactory().ClaimCodec()

	fixture := `{"mainsnak":{"snaktype":"novalue","property":"P17"},"type":"claim"}`

	c, err := cc.Deserialize(decode(t, fixture))
	is.NoErr(err)
	is.Equal(c.Type(), claims.TypeClaim)

	out, err := cc.Serialize(c)
	is.NoErr(err)
	is.Equal(encode(t, out), fixture)
}

func TestSerializeStatementDefaultsToNormalRank(t *testing.T) {
	is := is.New(t)

	c := claims.New(snaks.NewSomeValueSnak(ids.MustProperty("P1")))

	out, err := NewFactory().ClaimCodec().Serialize(c)
	is.NoErr(err)
	is.Equal(encode(t, out), `{"mainsnak":{"snaktype":"somevalue","property":"P1"},"type":"statement","rank":"normal"}`)
}

func TestDeserializeClaimWithGroupedQualifiers(t *testing.T) {
	is := is.New(t)

	c, err := NewFactory().ClaimCodec().Deserialize(decode(t, `{
		"mainsnak": {"snaktype":"novalue","property":"P1"},
		"type": "statement",
		"qualifiers": {
			"P3": [{"snaktype":"novalue","property":"P3"}],
			"P4": [{"snaktype":"somevalue","property":"P4"}]
		},
		"qualifiers-order": ["P4","P3"]
	}`))
	is.NoErr(err)
	is.Equal(SnaksOrder(c.Qualifiers()), []string{"P4", "P3"})
}

func TestDeserializeClaimErrors(t *testing.T) {
	mainSnak := `{"snaktype":"novalue","property":"P1"}`

	for name, tc := range map[string]struct {
		fixture  string
		target   error
		position string
	}{
		"not an object":       {`"statement"`, wberrors.ErrMalformedInput, ""},
		"missing type":        {`{"mainsnak":` + mainSnak + `}`, wberrors.ErrMissingType, ""},
		"unsupported type":    {`{"mainsnak":` + mainSnak + `,"type":"fact"}`, wberrors.ErrUnsupportedType, ""},
		"missing mainsnak":    {`{"type":"statement"}`, wberrors.ErrMissingAttribute, ""},
		"broken mainsnak":     {`{"mainsnak":{"snaktype":"novalue"},"type":"statement"}`, wberrors.ErrMissingAttribute, "/mainsnak"},
		"numeric id":          {`{"id":1,"mainsnak":` + mainSnak + `,"type":"statement"}`, wberrors.ErrInvalidAttribute, ""},
		"empty id":            {`{"id":"","mainsnak":` + mainSnak + `,"type":"statement"}`, wberrors.ErrInvalidAttribute, ""},
		"bogus rank":          {`{"mainsnak":` + mainSnak + `,"type":"statement","rank":"best"}`, wberrors.ErrInvalidAttribute, ""},
		"rank on claim":       {`{"mainsnak":` + mainSnak + `,"type":"claim","rank":"normal"}`, wberrors.ErrInvalidAttribute, ""},
		"references on claim": {`{"mainsnak":` + mainSnak + `,"type":"claim","references":[]}`, wberrors.ErrInvalidAttribute, ""},
		"references not list": {`{"mainsnak":` + mainSnak + `,"type":"statement","references":"none"}`, wberrors.ErrMalformedInput, "/references"},
		"wrong qualifiers order": {
			`{"mainsnak":` + mainSnak + `,"type":"statement","qualifiers":[` + mainSnak + `],"qualifiers-order":["P2"]}`,
			wberrors.ErrInvalidAttribute, "",
		},
		"broken qualifier": {
			`{"mainsnak":` + mainSnak + `,"type":"statement","qualifiers":[` + mainSnak + `,{"snaktype":"nothing","property":"P1"}]}`,
			wberrors.ErrUnsupportedType, "/qualifiers/1",
		},
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := NewFactory().ClaimCodec().Deserialize(decode(t, tc.fixture))
			is.True(errors.Is(err, tc.target))
			is.Equal(wberrors.PositionOf(err), tc.position)
		})
	}
}

func TestSerializeClaimWithoutMainSnak(t *testing.T) {
	is := is.New(t)

	_, err := NewFactory().ClaimCodec().Serialize(claims.Claim{})
	is.True(errors.Is(err, wberrors.ErrUnsupportedObject))
}

const statementJSON string = `{"mainsnak":{"snaktype":"value","property":"P31","datavalue":{"value":"foo","type":"string"}},"type":"statement","id":"Q42$F078E5B3-F9A8-480E-B7AC-D97778CBBEF9","qualifiers":[{"snaktype":"somevalue","property":"P2"},{"snaktype":"novalue","property":"P1"},{"snaktype":"novalue","property":"P2"}],"qualifiers-order":["P2","P1"],"rank":"preferred","references":[{"hash":"abc","snaks":[{"snaktype":"novalue","property":"P3"}],"snaks-order":["P3"]}]}`
