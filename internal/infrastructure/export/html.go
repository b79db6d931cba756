package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// HTMLRenderer writes an HTML workbook that spreadsheet applications open
// as .xls. One <table> per product.
type HTMLRenderer struct{}

func (HTMLRenderer) ContentType() string { return "application/vnd.ms-excel" }

func (HTMLRenderer) Extension() string { return "xls" }

var workbookTemplate = template.Must(template.New("workbook").Funcs(template.FuncMap{
	"stamp": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}).Parse(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns="http://www.w3.org/TR/REC-html40">
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
<title>{{.Title}}</title>
<style>
table { border-collapse: collapse; margin-bottom: 16px; }
th, td { border: 1px solid #999; padding: 2px 6px; }
td.num { mso-number-format: "0.###"; text-align: right; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Period: {{.Period}}<br>Generated: {{stamp .GeneratedAt}}</p>
{{range .Tables}}<table>
<caption>{{.Title}}</caption>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range $i, $v := .}}{{if $i}}<td class="num">{{$v}}</td>{{else}}<td>{{$v}}</td>{{end}}{{end}}</tr>
{{end}}</tbody>
<tfoot><tr>{{range $i, $v := .Footer}}{{if $i}}<td class="num">{{$v}}</td>{{else}}<td>{{$v}}</td>{{end}}{{end}}</tr></tfoot>
</table>
{{end}}</body>
</html>
`))

// Render implements Renderer.
func (HTMLRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := workbookTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
