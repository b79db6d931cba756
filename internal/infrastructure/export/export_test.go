package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
	"stockflow/internal/domain/reports"
)

var generated = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

func testLabels() *reports.Labels {
	return &reports.Labels{
		Products:   map[id.ID]string{1: "Flour, wheat", 2: `Sugar "fine"`},
		Warehouses: map[id.ID]string{10: "Main", 20: "Store <east>"},
	}
}

func testSelection() reports.Selection {
	return reports.Selection{
		ProductIDs:   []id.ID{1, 2},
		WarehouseIDs: []id.ID{10, 20},
		Movements:    []string{"purchase", "sales"},
		FromDate:     "2024-01-01",
		ToDate:       "2024-01-31",
	}
}

func testReport() *reports.Report {
	cells := reports.NewCellMap()
	cells.Add(reports.CellKey{ProductID: 1, WarehouseID: 10, Category: movement.Purchase}, types.MustQuantity("15"))
	cells.Add(reports.CellKey{ProductID: 1, WarehouseID: 20, Category: movement.Purchase}, types.MustQuantity("2.5"))
	cells.Add(reports.CellKey{ProductID: 1, WarehouseID: 10, Category: movement.Sales}, types.MustQuantity("2"))
	return &reports.Report{
		Categories: []movement.Category{movement.Purchase, movement.Sales},
		Cells:      cells,
	}
}

func TestMovementDocument(t *testing.T) {
	doc := MovementDocument(testSelection(), testReport(), testLabels(), generated)

	require.Len(t, doc.Tables, 2)
	assert.Equal(t, "2024-01-01 to 2024-01-31", doc.Period)

	flour := doc.Tables[0]
	assert.Equal(t, "Flour, wheat", flour.Title)
	assert.Equal(t, []string{"Warehouse", "Purchases", "Sales"}, flour.Header)
	assert.Equal(t, [][]string{
		{"Main", "15", "2"},
		{"Store <east>", "2.5", "0"},
	}, flour.Rows)
	assert.Equal(t, []string{"Total", "17.5", "2"}, flour.Footer)

	sugar := doc.Tables[1]
	assert.Equal(t, []string{"Total", "0", "0"}, sugar.Footer)
}

func TestAsOfDocument(t *testing.T) {
	rep := &reports.AsOfReport{
		Categories: []movement.Category{movement.Purchase, movement.Sales},
		Rows: []reports.AsOfRow{
			{ProductID: 1, WarehouseID: 10, Opening: types.MustQuantity("16"), Adjustments: types.MustQuantity("-0.5"),
				Moves: map[movement.Category]types.Quantity{movement.Purchase: types.MustQuantity("15"), movement.Sales: types.MustQuantity("2")}},
			{ProductID: 1, WarehouseID: 20, Moves: map[movement.Category]types.Quantity{}},
		},
	}

	doc := AsOfDocument(testSelection(), rep, testLabels(), generated)

	require.Len(t, doc.Tables, 1)
	tbl := doc.Tables[0]
	assert.Equal(t, []string{"Warehouse", "Opening", "Purchases", "Sales", "Adjustments", "Closing"}, tbl.Header)
	assert.Equal(t, []string{"Main", "16", "15", "2", "-0.5", "28.5"}, tbl.Rows[0])
	assert.Equal(t, []string{"Store <east>", "0", "0", "0", "0", "0"}, tbl.Rows[1])
	assert.Equal(t, []string{"Total", "16", "15", "2", "-0.5", "28.5"}, tbl.Footer)
}

func TestCSVRenderer_Quoting(t *testing.T) {
	doc := MovementDocument(testSelection(), testReport(), testLabels(), generated)

	out, err := CSVRenderer{}.Render(doc)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, `"Flour, wheat"`)
	assert.Contains(t, text, `"Sugar ""fine"""`)
	assert.Contains(t, text, "Total,17.5,2\n")

	// the output parses back into the same cells
	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Movement report"}, records[0])
	assert.Contains(t, records, []string{"Sugar \"fine\""})
}

func TestHTMLRenderer(t *testing.T) {
	doc := MovementDocument(testSelection(), testReport(), testLabels(), generated)

	out, err := HTMLRenderer{}.Render(doc)
	require.NoError(t, err)

	html := string(out)
	assert.Equal(t, 2, strings.Count(html, "<table>"))
	assert.Contains(t, html, "Store &lt;east&gt;")
	assert.Contains(t, html, `<td class="num">17.5</td>`)
	assert.Contains(t, html, "urn:schemas-microsoft-com:office:excel")
	assert.Equal(t, "application/vnd.ms-excel", HTMLRenderer{}.ContentType())
}

func TestPDFRenderer(t *testing.T) {
	doc := MovementDocument(testSelection(), testReport(), testLabels(), generated)

	out, err := PDFRenderer{}.Render(doc)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 5, gridSize(doc))
}

func TestRendererFor(t *testing.T) {
	tests := []struct {
		format string
		want   Renderer
	}{
		{"csv", CSVRenderer{}},
		{"", CSVRenderer{}},
		{"XLS", HTMLRenderer{}},
		{"excel", HTMLRenderer{}},
		{"pdf", PDFRenderer{}},
	}
	for _, tt := range tests {
		got, err := RendererFor(tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.format)
	}

	_, err := RendererFor("docx")
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}

func TestFilename(t *testing.T) {
	sel := testSelection()
	assert.Equal(t, "movement-report-2024-01-01_2024-01-31.csv", Filename("movement-report", sel, CSVRenderer{}))

	sel.FromDate, sel.ToDate = "", ""
	assert.Equal(t, "stock-as-of-start_now.pdf", Filename("stock-as-of", sel, PDFRenderer{}))
}
