package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestSorterOrdersByName(t *testing.T) {
	s := NewSorter(DefaultLocale)
	in := []Product{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}

	got := s.Sorted(in)

	assert.Equal(t, []string{"A", "B"}, names(got))
	assert.Equal(t, "B", in[0].Name, "input must not be reordered")
}

func TestSorterIsLocaleAware(t *testing.T) {
	s := NewSorter("pt-BR")
	got := s.Sorted([]Product{{Name: "banana"}, {Name: "Óculos"}, {Name: "abacaxi"}, {Name: "Zebra"}})
	assert.Equal(t, []string{"abacaxi", "banana", "Óculos", "Zebra"}, names(got))
}

func TestNewSorterFallsBackOnBadLocale(t *testing.T) {
	s := NewSorter("not a locale!!")
	assert.Equal(t, DefaultLocale, s.Tag().String())
}
