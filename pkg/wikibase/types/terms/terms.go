package terms

// Term is a text in a single language
type Term struct {
	language string
	text     string
}

func New(language, text string) Term {
	return Term{language: language, text: text}
}

func (t Term) Language() string { return t.language }
func (t Term) Text() string     { return t.text }

// TermList maps language codes to terms. It holds at most one term per
// language and every term is stored under its own language code.
type TermList struct {
	languages []string
	terms     map[string]Term
}

// NewTermList creates a list in the order the terms are given. A later term
// replaces an earlier one of the same language without moving it.
func NewTermList(terms ...Term) TermList {
	tl := TermList{
		languages: []string{},
		terms:     map[string]Term{},
	}

	for _, t := range terms {
		if _, exists := tl.terms[t.language]; !exists {
			tl.languages = append(tl.languages, t.language)
		}
		tl.terms[t.language] = t
	}

	return tl
}

func (tl TermList) Len() int {
	return len(tl.languages)
}

func (tl TermList) Get(language string) (Term, bool) {
	t, ok := tl.terms[language]
	return t, ok
}

func (tl TermList) Has(language string) bool {
	_, ok := tl.terms[language]
	return ok
}

// Languages returns the language codes in insertion order
func (tl TermList) Languages() []string {
	return append([]string{}, tl.languages...)
}

// Terms returns the terms in insertion order
func (tl TermList) Terms() []Term {
	result := make([]Term, 0, len(tl.languages))
	for _, lang := range tl.languages {
		result = append(result, tl.terms[lang])
	}
	return result
}

// WithTerm returns a copy of the list with t added or replaced
func (tl TermList) WithTerm(t Term) TermList {
	return NewTermList(append(tl.Terms(), t)...)
}

// Equal compares both content and order
func (tl TermList) Equal(other TermList) bool {
	if tl.Len() != other.Len() {
		return false
	}

	for i, lang := range tl.languages {
		if other.languages[i] != lang || other.terms[lang] != tl.terms[lang] {
			return false
		}
	}

	return true
}
