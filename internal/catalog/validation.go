package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type requiredFields struct {
	Name  string   `validate:"required"`
	Price *float64 `validate:"required"`
	SKU   string   `validate:"required"`
}

// Validate checks that name, price and sku are filled in. Whitespace-only text
// and an empty price count as blank; a zero price does not.
func (f Fields) Validate() error {
	rf := requiredFields{
		Name: strings.TrimSpace(f.Name),
		SKU:  strings.TrimSpace(f.SKU),
	}
	if v, ok := f.Price.Value(); ok {
		rf.Price = &v
	}
	if err := validate.Struct(rf); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, strings.ToLower(fe.Field()))
		}
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// Normalize trims the text fields of an incoming request.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	return in
}

// Validate checks a request body on the service side.
func (in Input) Validate() error {
	return validate.Struct(in)
}
