package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockflow/internal/core/id"
	"stockflow/internal/domain/catalogs/nomenclature"
	"stockflow/internal/infrastructure/storage/postgres"
)

const (
	productsTable   = "products"
	categoriesTable = "product_categories"
)

var _ nomenclature.Repository = (*NomenclatureRepo)(nil)

// NomenclatureRepo reads products and product categories.
type NomenclatureRepo struct {
	products   *BaseCatalogRepo[nomenclature.Product]
	categories *BaseCatalogRepo[nomenclature.Category]
}

// NewNomenclatureRepo creates a new product catalog repository.
func NewNomenclatureRepo(txm *postgres.TxManager, pageOpts postgres.PageOptions) *NomenclatureRepo {
	return &NomenclatureRepo{
		products:   NewBaseCatalogRepo[nomenclature.Product](txm, productsTable, pageOpts, "name", "id"),
		categories: NewBaseCatalogRepo[nomenclature.Category](txm, categoriesTable, pageOpts, "name", "id"),
	}
}

// ListActive implements nomenclature.Repository.
func (r *NomenclatureRepo) ListActive(ctx context.Context) ([]nomenclature.Product, bool, error) {
	res, err := r.products.ListAll(ctx, squirrel.Eq{"active": true})
	if err != nil {
		return nil, false, err
	}
	return res.Items, res.Truncated, nil
}

// ListCategories implements nomenclature.Repository.
func (r *NomenclatureRepo) ListCategories(ctx context.Context) ([]nomenclature.Category, error) {
	res, err := r.categories.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// GetByIDs returns products by id regardless of their active flag.
func (r *NomenclatureRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]nomenclature.Product, error) {
	return r.products.GetByIDs(ctx, ids)
}

// FetchCategoryNames maps category ids to names.
func (r *NomenclatureRepo) FetchCategoryNames(ctx context.Context, ids []id.ID) (map[id.ID]string, error) {
	items, err := r.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[id.ID]string, len(items))
	for _, c := range items {
		names[c.ID] = c.Name
	}
	return names, nil
}

// InsertCategories loads product categories. Must run inside a transaction.
func (r *NomenclatureRepo) InsertCategories(ctx context.Context, items []nomenclature.Category) (int64, error) {
	return r.categories.Insert(ctx, items)
}

// InsertProducts loads products. Must run inside a transaction.
func (r *NomenclatureRepo) InsertProducts(ctx context.Context, items []nomenclature.Product) (int64, error) {
	return r.products.Insert(ctx, items)
}
