package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

var priceListTemplate = template.Must(template.New("pricelist").Funcs(template.FuncMap{
	"brl": catalog.FormatBRL,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; font-size: 11pt; }
table { width: 100%; border-collapse: collapse; }
th, td { border-bottom: 1px solid #ccc; padding: 4px 6px; text-align: left; }
td.num { text-align: right; }
footer { margin-top: 12px; color: #666; font-size: 9pt; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Products}}
<table>
<thead><tr><th>Nome</th><th>SKU</th><th>Preço</th><th>Letra ausente</th></tr></thead>
<tbody>
{{range .Products}}<tr><td>{{.Name}}</td><td>{{.SKU}}</td><td class="num">{{brl .Price}}</td><td>{{.MissingLetter}}</td></tr>
{{end}}</tbody>
</table>
{{else}}
<p>Nenhum produto cadastrado.</p>
{{end}}
<footer>Gerado em {{.GeneratedAt.Format "02/01/2006 15:04"}} · {{len .Products}} produto(s)</footer>
</body>
</html>
`))

// PriceList is the printable product table.
type PriceList struct {
	Title       string
	GeneratedAt time.Time
	Products    []catalog.Product
}

// HTML renders the price list document. Products are printed in the given order.
func (p PriceList) HTML() (string, error) {
	if p.Title == "" {
		p.Title = "Lista de preços"
	}
	var buf bytes.Buffer
	if err := priceListTemplate.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
