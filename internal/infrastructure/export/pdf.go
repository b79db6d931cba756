package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// first column (warehouse) is this many grid units wide, the others one.
const labelSpan = 3

// PDFRenderer writes an A4 landscape PDF.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Extension() string { return "pdf" }

// Render implements Renderer.
func (PDFRenderer) Render(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithMaxGridSize(gridSize(doc)).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)
	grid := gridSize(doc)

	m.AddRows(row.New(10).Add(col.New(grid).Add(
		text.New(doc.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
	)))
	m.AddRows(row.New(6).Add(col.New(grid).Add(
		text.New(fmt.Sprintf("Period: %s   |   Generated: %s", doc.Period, doc.GeneratedAt.UTC().Format(time.RFC3339)),
			props.Text{Size: 8, Color: colorGray}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, t := range doc.Tables {
		m.AddRows(row.New(8).Add(col.New(grid).Add(
			text.New(t.Title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
		)))
		m.AddRows(tableRow(t.Header, grid, fontstyle.Bold))
		for _, r := range t.Rows {
			m.AddRows(tableRow(r, grid, fontstyle.Normal))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(tableRow(t.Footer, grid, fontstyle.Bold))
		m.AddRows(line.NewRow(4))
	}

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return pdf.GetBytes(), nil
}

// gridSize is the widest table: the label span plus one unit per value column.
func gridSize(doc Document) int {
	widest := 1
	for _, t := range doc.Tables {
		widest = max(widest, len(t.Header))
	}
	return labelSpan + widest - 1
}

func tableRow(cells []string, grid int, style fontstyle.Type) core.Row {
	cols := make([]core.Col, 0, len(cells))
	used := 0
	for i, v := range cells {
		size, a := 1, align.Right
		if i == 0 {
			size, a = labelSpan, align.Left
		}
		used += size
		cols = append(cols, col.New(size).Add(text.New(v, props.Text{Style: style, Align: a, Top: 1, Right: 1})))
	}
	if used < grid {
		cols = append(cols, col.New(grid-used))
	}
	return row.New(6).Add(cols...)
}
