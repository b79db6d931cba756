package catalog_repo

import (
	"context"

	"stockflow/internal/core/id"
	"stockflow/internal/domain/reports"
)

var _ reports.CatalogNames = (*NamesRepo)(nil)

// NamesRepo resolves display names for report exports.
type NamesRepo struct {
	products   *NomenclatureRepo
	warehouses *WarehouseRepo
}

// NewNamesRepo creates a name resolver over the product and warehouse catalogs.
func NewNamesRepo(products *NomenclatureRepo, warehouses *WarehouseRepo) *NamesRepo {
	return &NamesRepo{products: products, warehouses: warehouses}
}

// ProductNames implements reports.CatalogNames.
func (r *NamesRepo) ProductNames(ctx context.Context, ids []id.ID) (map[id.ID]reports.ProductName, error) {
	items, err := r.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[id.ID]reports.ProductName, len(items))
	for _, p := range items {
		out[p.ID] = reports.ProductName{Name: p.Name, Barcode: p.Code(), CategoryID: p.CategoryID}
	}
	return out, nil
}

// WarehouseNames implements reports.CatalogNames.
func (r *NamesRepo) WarehouseNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	return r.warehouses.Names(ctx, ids)
}

// FetchCategoryNames implements reports.CatalogNames.
func (r *NamesRepo) FetchCategoryNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	return r.products.FetchCategoryNames(ctx, ids)
}
