package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockBase struct {
	ID     int64 `db:"id"`
	Active bool  `db:"active"`
}

type mockProduct struct {
	mockBase
	Name    string  `db:"name" json:"name"`
	Barcode *string `db:"barcode"`
	Search  string  `db:"-"`
	Note    string
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[mockProduct]()
	assert.Equal(t, []string{"id", "active", "name", "barcode"}, cols)

	// cached path returns the same result
	assert.Equal(t, cols, ExtractDBColumns[*mockProduct]())
}

func TestStructToMap(t *testing.T) {
	code := "4000"
	p := mockProduct{mockBase: mockBase{ID: 7, Active: true}, Name: "Flour", Barcode: &code, Search: "flour"}

	m := StructToMap(p)

	assert.Equal(t, int64(7), m["id"])
	assert.Equal(t, true, m["active"])
	assert.Equal(t, "Flour", m["name"])
	assert.Equal(t, &code, m["barcode"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 4)

	assert.Nil(t, StructToMap(42))
}

func TestRowValues(t *testing.T) {
	p := &mockProduct{mockBase: mockBase{ID: 3}, Name: "Salt"}

	row := RowValues(p, []string{"name", "id", "missing"})

	assert.Equal(t, []any{"Salt", int64(3), nil}, row)
}
