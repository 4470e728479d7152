package codec

import (
	"fmt"
	"regexp"

	wberrors "github.com/diwise/wikibase-codec/pkg/wikibase/errors"
	"github.com/diwise/wikibase-codec/pkg/wikibase/types/terms"
	"github.com/diwise/wikibase-codec/pkg/wikibase/wire"
)

const (
	termLanguageAttr string = "language"
	termValueAttr    string = "value"
	termSourceAttr   string = "source"
)

var languageCodePattern = regexp.MustCompile(`^[a-zA-Z]{2,8}(-[a-zA-Z0-9]{1,8})*$`)

// TermCodec converts a term to and from a `{"language", "value"}` record
type TermCodec struct{}

func NewTermCodec() *TermCodec {
	return &TermCodec{}
}

func (tc *TermCodec) IsDeserializerFor(serialization any) bool {
	obj, ok := wire.AsObject(serialization)
	return ok && obj.Has(termLanguageAttr) && obj.Has(termValueAttr) && !obj.Has(termSourceAttr)
}

func (tc *TermCodec) Deserialize(serialization any) (terms.Term, error) {
	obj, err := requireObject(serialization, "term")
	if err != nil {
		return terms.Term{}, err
	}

	// terms resolved through a language fallback carry a source and are not plain terms
	if obj.Has(termSourceAttr) {
		return terms.Term{}, wberrors.NewMalformedInputError("term serializations must not contain a source")
	}

	language, err := requireString(obj, termLanguageAttr)
	if err != nil {
		return terms.Term{}, err
	}

	if !languageCodePattern.MatchString(language) {
		return terms.Term{}, wberrors.NewInvalidAttributeError(
			termLanguageAttr, language, fmt.Sprintf("'%s' is not a valid language code", language),
		)
	}

	text, err := requireString(obj, termValueAttr)
	if err != nil {
		return terms.Term{}, err
	}

	return terms.New(language, text), nil
}

func (tc *TermCodec) IsSerializerFor(object terms.Term) bool {
	return object.Language() != ""
}

func (tc *TermCodec) Serialize(object terms.Term) (any, error) {
	if !tc.IsSerializerFor(object) {
		return nil, wberrors.NewUnsupportedObjectError(object, "TermCodec can only serialize terms with a language")
	}

	return wire.NewObject(
		wire.Entry{Key: termLanguageAttr, Value: object.Language()},
		wire.Entry{Key: termValueAttr, Value: object.Text()},
	), nil
}

// TermListCodec converts a term list to and from an object keyed by language code
type TermListCodec struct {
	term *TermCodec
}

func NewTermListCodec(term *TermCodec) *TermListCodec {
	return &TermListCodec{term: term}
}

func (tlc *TermListCodec) Deserialize(serialization any) (terms.TermList, error) {
	obj, err := requireObject(serialization, "term list")
	if err != nil {
		return terms.TermList{}, err
	}

	result := []terms.Term{}

	for _, e := range obj.Entries() {
		if !languageCodePattern.MatchString(e.Key) {
			return terms.TermList{}, wberrors.NewInvalidAttributeError(
				e.Key, e.Value, fmt.Sprintf("'%s' is not a valid language code", e.Key),
			)
		}

		if _, ok := wire.AsObject(e.Value); !ok {
			return terms.TermList{}, wberrors.AtPosition(
				wberrors.NewMalformedInputError("each term list entry should be an object"), e.Key,
			)
		}

		t, err := tlc.term.Deserialize(e.Value)
		if err != nil {
			return terms.TermList{}, wberrors.AtPosition(err, e.Key)
		}

		if t.Language() != e.Key {
			return terms.TermList{}, wberrors.AtPosition(wberrors.NewInvalidAttributeError(
				termLanguageAttr, t.Language(),
				fmt.Sprintf("the term language '%s' does not match the key '%s'", t.Language(), e.Key),
			), e.Key)
		}

		result = append(result, t)
	}

	return terms.NewTermList(result...), nil
}

func (tlc *TermListCodec) Serialize(list terms.TermList, format wire.MapFormat) (any, error) {
	result := wire.NewMap(format)

	for _, t := range list.Terms() {
		v, err := tlc.term.Serialize(t)
		if err != nil {
			return nil, wberrors.AtPosition(err, t.Language())
		}
		result.Set(t.Language(), v)
	}

	return result, nil
}
