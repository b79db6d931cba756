// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
)

// --- Error Response ---

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Quantities ---

// Moves maps movement names to quantities.
type Moves map[string]float64

// FromMoves converts domain quantities, filling every category with zero
// when missing.
func FromMoves(categories []movement.Category, moves map[movement.Category]types.Quantity) Moves {
	out := make(Moves, len(categories))
	for _, c := range categories {
		out[string(c)] = types.Float64(moves[c])
	}
	return out
}

// --- List Response ---

// ListResponse wraps picker lists.
type ListResponse[T any] struct {
	Items     []T  `json:"items"`
	Total     int  `json:"total"`
	Truncated bool `json:"truncated"`
}

// NewListResponse creates list response, never with null items.
func NewListResponse[T any](items []T, truncated bool) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items), Truncated: truncated}
}
