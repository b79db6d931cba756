// Package export renders movement and as-of reports as downloadable files.
// Every product gets its own table: one row per warehouse, one column per
// movement type, and a totals footer.
package export

import (
	"fmt"
	"strings"
	"time"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
	"stockflow/internal/domain/reports"
)

// Table is one product section of an export.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Footer []string
}

// Document is a full export.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Period      string
	Tables      []Table
}

// Renderer writes a Document in one file format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// Format is an export file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatXLS Format = "xls"
	FormatPDF Format = "pdf"
)

// RendererFor returns the renderer of format f.
func RendererFor(f string) (Renderer, error) {
	switch Format(strings.ToLower(strings.TrimSpace(f))) {
	case FormatCSV, "":
		return CSVRenderer{}, nil
	case FormatXLS, "excel", "html":
		return HTMLRenderer{}, nil
	case FormatPDF:
		return PDFRenderer{}, nil
	default:
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unsupported export format: %s", f)).
			WithDetail("format", f)
	}
}

// Filename builds the attachment name, e.g. "movement-report-2024-01-01_2024-01-31.csv".
func Filename(base string, sel reports.Selection, r Renderer) string {
	from := sel.FromDate
	if from == "" {
		from = "start"
	}
	to := sel.ToDate
	if to == "" {
		to = "now"
	}
	return fmt.Sprintf("%s-%s_%s.%s", base, from, to, r.Extension())
}

func periodLabel(sel reports.Selection) string {
	r := sel.Range()
	switch {
	case r.Start == nil && r.End == nil:
		return "All time"
	case r.Start == nil:
		return "Up to " + sel.ToDate
	case r.End == nil:
		return "From " + sel.FromDate
	default:
		return sel.FromDate + " to " + sel.ToDate
	}
}

// MovementDocument lays out a movement report: one table per selected
// product, zero-filled for warehouses without movements.
func MovementDocument(sel reports.Selection, rep *reports.Report, labels *reports.Labels, now time.Time) Document {
	doc := Document{Title: "Movement report", GeneratedAt: now, Period: periodLabel(sel)}

	header := []string{"Warehouse"}
	for _, c := range rep.Categories {
		header = append(header, movement.Label(c))
	}

	for _, p := range id.Unique(sel.ProductIDs) {
		t := Table{Title: labels.Product(p), Header: header}
		totals := make([]types.Quantity, len(rep.Categories))

		for _, w := range id.Unique(sel.WarehouseIDs) {
			line := []string{labels.Warehouse(w)}
			for i, c := range rep.Categories {
				q := rep.Cells.Get(p, w, c)
				totals[i] = totals[i].Add(q)
				line = append(line, types.Format(q))
			}
			t.Rows = append(t.Rows, line)
		}

		t.Footer = append([]string{"Total"}, formatAll(totals)...)
		doc.Tables = append(doc.Tables, t)
	}
	return doc
}

// AsOfDocument lays out an as-of report with opening, adjustment and closing
// columns around the movement columns.
func AsOfDocument(sel reports.Selection, rep *reports.AsOfReport, labels *reports.Labels, now time.Time) Document {
	doc := Document{Title: "Stock as of", GeneratedAt: now, Period: periodLabel(sel)}

	header := []string{"Warehouse", "Opening"}
	for _, c := range rep.Categories {
		header = append(header, movement.Label(c))
	}
	header = append(header, "Adjustments", "Closing")

	byProduct := make(map[id.ID][]reports.AsOfRow)
	var order []id.ID
	for _, row := range rep.Rows {
		if _, ok := byProduct[row.ProductID]; !ok {
			order = append(order, row.ProductID)
		}
		byProduct[row.ProductID] = append(byProduct[row.ProductID], row)
	}

	for _, p := range order {
		t := Table{Title: labels.Product(p), Header: header}
		// opening, categories..., adjustments, closing
		totals := make([]types.Quantity, len(rep.Categories)+3)

		for _, row := range byProduct[p] {
			values := []types.Quantity{row.Opening}
			for _, c := range rep.Categories {
				values = append(values, row.Moves[c])
			}
			values = append(values, row.Adjustments, row.Closing())

			for i, q := range values {
				totals[i] = totals[i].Add(q)
			}
			t.Rows = append(t.Rows, append([]string{labels.Warehouse(row.WarehouseID)}, formatAll(values)...))
		}

		t.Footer = append([]string{"Total"}, formatAll(totals)...)
		doc.Tables = append(doc.Tables, t)
	}
	return doc
}

func formatAll(qs []types.Quantity) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = types.Format(q)
	}
	return out
}
