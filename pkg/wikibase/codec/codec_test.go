package codec

import (
	"testing"

	"github.com/matryer/is"

	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	is := is.New(t)

	v, err := wire.Unmarshal([]byte(s))
	is.NoErr(err)

	return v
}

func encode(t *testing.T, v any) string {
	t.Helper()
	is := is.New(t)

	b, err := wire.Marshal(v)
	is.NoErr(err)

	return string(b)
}
