package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// CSVRenderer writes tables one after another, separated by a blank line.
// Fields containing commas, quotes or newlines are quoted with doubled quotes.
type CSVRenderer struct{}

func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVRenderer) Extension() string { return "csv" }

// Render implements Renderer.
func (CSVRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{doc.Title},
		{"Period", doc.Period},
		{"Generated", doc.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	for _, t := range doc.Tables {
		records = append(records, []string{})
		records = append(records, []string{t.Title})
		records = append(records, t.Header)
		records = append(records, t.Rows...)
		records = append(records, t.Footer)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
