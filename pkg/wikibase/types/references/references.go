package references

import (
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
)

// Reference is a citation made up of an ordered list of snaks. The hash is
// computed elsewhere and stored as is.
type Reference struct {
	hash  string
	snaks snaks.List
}

func New(hash string, s ...snaks.Snak) Reference {
	return Reference{
		hash:  hash,
		snaks: snaks.NewList(s...),
	}
}

func (r Reference) Hash() string {
	return r.hash
}

func (r Reference) Snaks() snaks.List {
	return r.snaks
}

// WithHash returns a copy of the reference carrying hash
func (r Reference) WithHash(hash string) Reference {
	return Reference{hash: hash, snaks: r.snaks}
}

func (r Reference) Equal(other Reference) bool {
	return r.hash == other.hash && r.snaks.Equal(other.snaks)
}

// List is an ordered list of references
type List []Reference

func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
