package catalog

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "pt-BR"

// Sorter orders products by name using locale collation rules.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
	tag      language.Tag
}

// NewSorter builds a Sorter for the given BCP 47 locale. An unparsable locale
// falls back to DefaultLocale.
func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Sorter{collator: collate.New(tag), tag: tag}
}

// Tag returns the locale in use.
func (s *Sorter) Tag() language.Tag {
	return s.tag
}

// Sorted returns a name-ordered copy of products; the input is left untouched.
func (s *Sorter) Sorted(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return s.collator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
