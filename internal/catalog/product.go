package catalog

// Product is a persisted catalog entry as returned by the product service.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	SKU           string  `json:"sku"`
	MissingLetter string  `json:"missing_letter"`
}

// Input is the request body accepted by create and update.
type Input struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	SKU   string  `json:"sku" validate:"required"`
}

// Fields holds the editable values of a row.
type Fields struct {
	Name  string
	Price Price
	SKU   string
}

// Equal compares name, price and sku.
func (f Fields) Equal(other Fields) bool {
	return f.Name == other.Name && f.SKU == other.SKU && f.Price.Equal(other.Price)
}

// FieldsOf copies the editable values of p.
func FieldsOf(p Product) Fields {
	return Fields{Name: p.Name, Price: NumericPrice(p.Price), SKU: p.SKU}
}

// Draft is either a saved product (positive id) or the pending, never persisted row.
type Draft struct {
	id     int64
	Fields Fields
}

// SavedDraft binds a draft to an existing product.
func SavedDraft(p Product) Draft {
	return Draft{id: p.ID, Fields: FieldsOf(p)}
}

// PendingDraft returns the blank placeholder row.
func PendingDraft() Draft {
	return Draft{Fields: Fields{Price: EmptyPrice()}}
}

// IsPending reports whether the draft has never been persisted.
func (d Draft) IsPending() bool {
	return d.id <= 0
}

// ID returns the product id of a saved draft.
func (d Draft) ID() (int64, bool) {
	if d.IsPending() {
		return 0, false
	}
	return d.id, true
}

// Key identifies the row in URLs and maps.
func (d Draft) Key() RowKey {
	if d.IsPending() {
		return PendingKey
	}
	return SavedKey(d.id)
}

// Input converts a complete draft to a request body. An empty price yields
// ErrIncomplete.
func (d Draft) Input() (Input, error) {
	price, ok := d.Fields.Price.Value()
	if !ok {
		return Input{}, ErrIncomplete
	}
	return Input{Name: d.Fields.Name, Price: price, SKU: d.Fields.SKU}, nil
}
