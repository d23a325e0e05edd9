package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingLetter(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "", want: "a"},
		{name: "Teclado Gamer", want: "b"},
		{name: "abc", want: "d"},
		{name: "Ágata", want: "b"},
		{name: "The quick brown fox jumps over the lazy dog", want: NoMissingLetter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MissingLetter(tt.name), tt.name)
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 450,00", FormatBRL(450))
}
