package dto

import (
	"stockflow/internal/core/id"
	"stockflow/internal/domain/catalogs/nomenclature"
	"stockflow/internal/domain/catalogs/warehouse"
)

// --- Products ---

// ProductSearchRequest holds picker filters. Both are prefix matches.
type ProductSearchRequest struct {
	Name string `form:"name"`
	Code string `form:"code"`
}

// ProductItemResponse is a product picker entry.
type ProductItemResponse struct {
	ID       id.ID  `json:"id"`
	Label    string `json:"label"`
	Code     string `json:"code,omitempty"`
	Category string `json:"category,omitempty"`
}

// FromProductItems converts picker items.
func FromProductItems(items []nomenclature.Item) []ProductItemResponse {
	out := make([]ProductItemResponse, len(items))
	for i, it := range items {
		out[i] = ProductItemResponse{ID: it.ID, Label: it.Label, Code: it.Code, Category: it.Category}
	}
	return out
}

// --- Warehouses ---

// WarehouseResponse is a warehouse picker entry.
type WarehouseResponse struct {
	ID          id.ID  `json:"id"`
	DisplayName string `json:"displayName"`
}

// FromWarehouses converts warehouses.
func FromWarehouses(items []warehouse.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, len(items))
	for i, w := range items {
		out[i] = WarehouseResponse{ID: w.ID, DisplayName: w.DisplayName}
	}
	return out
}
