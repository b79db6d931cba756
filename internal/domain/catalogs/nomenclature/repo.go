package nomenclature

import (
	"context"
)

// Repository reads the product catalog.
type Repository interface {
	// ListActive returns every active product ordered by name. truncated is
	// set when the fetch hit its record cap.
	ListActive(ctx context.Context) (items []Product, truncated bool, err error)

	// ListCategories returns all product categories.
	ListCategories(ctx context.Context) ([]Category, error)
}
