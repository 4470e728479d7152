package claims

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/diwise/wikibase-codec/pkg/wikibase/types/ids"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/references"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/snaks"
)

// Type tells plain claims apart from statements, which also carry rank and references
type Type string

const (
	TypeClaim     Type = "claim"
	TypeStatement Type = "statement"
)

type Rank string

const (
	RankDeprecated Rank = "deprecated"
	RankNormal     Rank = "normal"
	RankPreferred  Rank = "preferred"
)

func (r Rank) IsValid() bool {
	return r == RankDeprecated || r == RankNormal || r == RankPreferred
}

type Claim struct {
	guid       string
	typ        Type
	mainSnak   snaks.Snak
	qualifiers snaks.List
	rank       Rank
	references references.List
}

type ClaimDecoratorFunc func(c *Claim)

// New creates a statement with normal rank unless decorated otherwise
func New(mainSnak snaks.Snak, decorators ...ClaimDecoratorFunc) Claim {
	c := &Claim{
		typ:        TypeStatement,
		mainSnak:   mainSnak,
		qualifiers: snaks.List{},
		rank:       RankNormal,
		references: references.List{},
	}

	for _, decorator := range decorators {
		decorator(c)
	}

	return *c
}

func GUID(guid string) ClaimDecoratorFunc {
	return func(c *Claim) { c.guid = guid }
}

func Qualifiers(s ...snaks.Snak) ClaimDecoratorFunc {
	return func(c *Claim) { c.qualifiers = snaks.NewList(s...) }
}

func WithRank(rank Rank) ClaimDecoratorFunc {
	return func(c *Claim) { c.rank = rank }
}

func References(refs ...references.Reference) ClaimDecoratorFunc {
	return func(c *Claim) { c.references = append(references.List{}, refs...) }
}

// AsClaim turns the result into a plain claim without rank and references
func AsClaim() ClaimDecoratorFunc {
	return func(c *Claim) {
		c.typ = TypeClaim
		c.rank = ""
		c.references = references.List{}
	}
}

func (c Claim) GUID() string                { return c.guid }
func (c Claim) Type() Type                  { return c.typ }
func (c Claim) MainSnak() snaks.Snak        { return c.mainSnak }
func (c Claim) Qualifiers() snaks.List      { return c.qualifiers }
func (c Claim) Rank() Rank                  { return c.rank }
func (c Claim) References() references.List { return c.references }

// WithGUID returns a copy of the claim carrying guid
func (c Claim) WithGUID(guid string) Claim {
	cpy := c
	cpy.guid = guid
	return cpy
}

func (c Claim) Equal(other Claim) bool {
	if c.guid != other.guid || c.typ != other.typ || c.rank != other.rank {
		return false
	}

	if c.mainSnak == nil || other.mainSnak == nil {
		if c.mainSnak != nil || other.mainSnak != nil {
			return false
		}
	} else if !c.mainSnak.Equal(other.mainSnak) {
		return false
	}

	return c.qualifiers.Equal(other.qualifiers) && c.references.Equal(other.references)
}

// NewGUID creates a new claim GUID in the form Q42$XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX
func NewGUID(subject ids.EntityID) string {
	return fmt.Sprintf("%s$%s", subject.Serialization(), strings.ToUpper(uuid.NewString()))
}

// SubjectOfGUID returns the entity id prefix of a GUID, if it has one
func SubjectOfGUID(guid string) (ids.EntityID, error) {
	prefix, suffix, found := strings.Cut(guid, "$")
	if !found {
		return nil, fmt.Errorf("guid %q has no entity id prefix", guid)
	}

	if _, err := uuid.Parse(suffix); err != nil {
		return nil, fmt.Errorf("guid %q has an invalid uuid part: %w", guid, err)
	}

	return ids.Parse(prefix)
}

// List is an ordered collection of claims without any uniqueness constraint
type List []Claim

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

// AssignMissingGUIDs returns a copy of the list where every claim without a GUID got a new one
func (l List) AssignMissingGUIDs(subject ids.EntityID) List {
	result := make(List, 0, len(l))
	for _, c := range l {
		if c.guid == "" {
			c = c.WithGUID(NewGUID(subject))
		}
		result = append(result, c)
	}
	return result
}
