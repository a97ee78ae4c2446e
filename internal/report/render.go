package report

import (
	"encoding/csv"
	"html/template"
	"io"
	"strconv"

	"github.com/rogerio-castellano/ges-stock/internal/currency"
)

const dateLayout = "2006-01-02 15:04"

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": currency.FormatCents,
	"date":  func(r Report) string { return r.GeneratedAt.Format(dateLayout) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Stock Report</title>
<style>
body { font-family: sans-serif; margin: 20px; color: #333; }
h1 { color: #38a69d; }
table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.total-row td { font-weight: bold; background-color: #e6f7ff; }
.category-header { background-color: #e0f2f1; padding: 8px; margin-top: 15px; font-weight: bold; color: #38a69d; }
</style>
</head>
<body>
<h1>Stock Report</h1>
<p>Generated at {{date .}}</p>
<table>
<tr><th>Total units</th><th>Total stock value</th></tr>
<tr class="total-row"><td>{{.TotalUnits}}</td><td>{{money .TotalValueCents}}</td></tr>
</table>
{{- range .Sections}}
<div class="category-header">{{if .IsUncategorized}}Products without category{{else}}Category: {{.CategoryName}}{{end}}</div>
<table>
<tr><th>Name</th><th>Quantity</th><th>Unit price</th><th>Subtotal</th></tr>
{{- range .Lines}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{money .PriceCents}}</td><td>{{money .SubtotalCents}}</td></tr>
{{- end}}
<tr class="total-row"><td>Subtotal</td><td>{{.Units}}</td><td></td><td>{{money .ValueCents}}</td></tr>
</table>
{{- else}}
<p>No products registered.</p>
{{- end}}
</body>
</html>
`))

// WriteHTML renders a printable page. Product and category names are escaped.
func WriteHTML(w io.Writer, rep Report) error {
	return htmlTemplate.Execute(w, rep)
}

// WriteCSV writes one row per product followed by a totals row.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "name", "quantity", "unit_price", "subtotal"}); err != nil {
		return err
	}
	for _, s := range rep.Sections {
		for _, l := range s.Lines {
			row := []string{
				s.CategoryName,
				l.Name,
				strconv.Itoa(l.Quantity),
				currency.FormatCents(l.PriceCents),
				currency.FormatCents(l.SubtotalCents),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	total := []string{"TOTAL", "", strconv.Itoa(rep.TotalUnits), "", currency.FormatCents(rep.TotalValueCents)}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
