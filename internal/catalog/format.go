package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatBRL renders a price the way the catalog shows it, e.g. "R$ 450,00".
func FormatBRL(v float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return "R$ " + p.Sprintf("%.2f", v)
}
