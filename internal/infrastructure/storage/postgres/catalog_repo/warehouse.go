package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockflow/internal/core/id"
	"stockflow/internal/domain/catalogs/warehouse"
	"stockflow/internal/infrastructure/storage/postgres"
)

const warehousesTable = "warehouses"

var _ warehouse.Repository = (*WarehouseRepo)(nil)

// WarehouseRepo reads the warehouse catalog.
type WarehouseRepo struct {
	*BaseCatalogRepo[warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager, pageOpts postgres.PageOptions) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[warehouse.Warehouse](txm, warehousesTable, pageOpts, "display_name", "id"),
	}
}

// ListActive implements warehouse.Repository.
func (r *WarehouseRepo) ListActive(ctx context.Context) ([]warehouse.Warehouse, bool, error) {
	res, err := r.ListAll(ctx, squirrel.Eq{"active": true})
	if err != nil {
		return nil, false, err
	}
	return res.Items, res.Truncated, nil
}

// Names maps warehouse ids to display names.
func (r *WarehouseRepo) Names(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	items, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[id.ID]string, len(items))
	for _, w := range items {
		names[w.ID] = w.DisplayName
	}
	return names, nil
}
