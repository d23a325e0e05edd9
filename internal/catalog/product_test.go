package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftIdentity(t *testing.T) {
	pending := PendingDraft()
	assert.True(t, pending.IsPending())
	_, ok := pending.ID()
	assert.False(t, ok)
	assert.Equal(t, PendingKey, pending.Key())
	assert.True(t, pending.Fields.Price.IsEmpty())

	saved := SavedDraft(Product{ID: 7, Name: "Teclado", Price: 450, SKU: "TCL001"})
	id, ok := saved.ID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, RowKey("7"), saved.Key())
}

func TestDraftInput(t *testing.T) {
	d := PendingDraft()
	d.Fields = Fields{Name: "X", Price: ParsePrice("12.50"), SKU: "S1"}
	in, err := d.Input()
	require.NoError(t, err)
	assert.Equal(t, Input{Name: "X", Price: 12.5, SKU: "S1"}, in)

	d.Fields.Price = EmptyPrice()
	_, err = d.Input()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestFieldsValidate(t *testing.T) {
	complete := Fields{Name: "Mouse", Price: NumericPrice(0), SKU: "M1"}
	assert.NoError(t, complete.Validate())

	tests := map[string]Fields{
		"blank name":  {Name: "  ", Price: NumericPrice(1), SKU: "M1"},
		"empty price": {Name: "Mouse", Price: EmptyPrice(), SKU: "M1"},
		"blank sku":   {Name: "Mouse", Price: NumericPrice(1), SKU: ""},
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, f.Validate(), ErrIncomplete)
		})
	}
}

func TestParseRowKey(t *testing.T) {
	k, err := ParseRowKey("new")
	require.NoError(t, err)
	assert.True(t, k.IsPending())

	k, err = ParseRowKey("42")
	require.NoError(t, err)
	id, ok := k.ProductID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := ParseRowKey(raw)
		assert.ErrorIs(t, err, ErrInvalidRowKey, raw)
	}
}
