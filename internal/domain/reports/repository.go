package reports

import (
	"context"
	"time"

	"stockflow/internal/core/id"
)

// MovementSource reads stored stock movements.
type MovementSource interface {
	// FetchMovements returns movements whose movement_type is one of
	// q.StoredTypes, product is in q.ProductIDs, q.Column warehouse is in
	// q.WarehouseIDs and created_at falls in q.Range.
	FetchMovements(ctx context.Context, q MovementQuery) ([]MovementEvent, error)
}

// AdjustmentSource reads manual stock corrections.
type AdjustmentSource interface {
	// FetchStockAdjustments returns cumulative adjustments made before asOf.
	FetchStockAdjustments(ctx context.Context, productIDs, warehouseIDs []id.ID, asOf time.Time) ([]StockAdjustment, error)
}

// CatalogNames resolves display names for exports.
type CatalogNames interface {
	ProductNames(ctx context.Context, ids []id.ID) (map[id.ID]ProductName, error)
	WarehouseNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error)
	FetchCategoryNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error)
}

// ProductName is the display data of a product.
type ProductName struct {
	Name       string
	Barcode    string
	CategoryID *id.ID
}
