// Package warehouse provides the warehouse catalog: the locations stock
// moves between.
package warehouse

import (
	"context"

	"stockflow/internal/core/id"
)

// Warehouse is a storage location.
type Warehouse struct {
	ID          id.ID  `db:"id" json:"id"`
	DisplayName string `db:"display_name" json:"displayName"`
	Active      bool   `db:"active" json:"active"`
}

// Repository reads the warehouse catalog.
type Repository interface {
	// ListActive returns active warehouses ordered by display name.
	ListActive(ctx context.Context) (items []Warehouse, truncated bool, err error)
}
