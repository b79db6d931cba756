// Package nomenclature provides the product catalog used by report pickers
// and export labels.
package nomenclature

import (
	"stockflow/internal/core/id"
)

// Product is an item whose stock is tracked.
type Product struct {
	ID         id.ID   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Barcode    *string `db:"barcode" json:"barcode,omitempty"`
	CategoryID *id.ID  `db:"category_id" json:"categoryId,omitempty"`
	Active     bool    `db:"active" json:"active"`
}

// Code returns the barcode or an empty string.
func (p Product) Code() string {
	if p.Barcode == nil {
		return ""
	}
	return *p.Barcode
}

// Category groups products for display.
type Category struct {
	ID   id.ID  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Item is a picker entry.
type Item struct {
	ID       id.ID  `json:"id"`
	Label    string `json:"label"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
}

// Query filters picker items. Both filters are prefix matches after
// normalization; empty filters match everything.
type Query struct {
	Name string
	Code string
}

// SearchResult is the outcome of a picker search.
type SearchResult struct {
	Items []Item
	// Truncated is set when the catalog exceeded the fetch cap.
	Truncated bool
}
