package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
		want  float64
	}{
		{name: "blank", input: "", empty: true},
		{name: "whitespace", input: "   ", empty: true},
		{name: "decimal", input: "12.50", want: 12.5},
		{name: "integer", input: "450", want: 450},
		{name: "leading number", input: "12abc", want: 12},
		{name: "not numeric", input: "abc", want: 0},
		{name: "sign only", input: "-", want: 0},
		{name: "fraction only", input: ".5", want: 0.5},
		{name: "exponent", input: "1e2", want: 100},
		{name: "dangling exponent", input: "3e", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			assert.Equal(t, tt.empty, got.IsEmpty())
			if !tt.empty {
				v, ok := got.Value()
				assert.True(t, ok)
				assert.Equal(t, tt.want, v)
			}
		})
	}
}

func TestPriceEqualDistinguishesEmptyFromZero(t *testing.T) {
	assert.False(t, EmptyPrice().Equal(NumericPrice(0)))
	assert.True(t, EmptyPrice().Equal(EmptyPrice()))
	assert.True(t, NumericPrice(450).Equal(ParsePrice("450.00")))
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "", EmptyPrice().String())
	assert.Equal(t, "450", NumericPrice(450).String())
	assert.Equal(t, "12.5", NumericPrice(12.5).String())
}
