package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockflow/internal/domain/catalogs/nomenclature"
	"stockflow/internal/domain/catalogs/warehouse"
	"stockflow/internal/infrastructure/http/v1/dto"
)

// ProductSearcher searches the product picker catalog.
type ProductSearcher interface {
	Search(ctx context.Context, q nomenclature.Query) (*nomenclature.SearchResult, error)
}

// WarehouseLister lists the warehouse picker catalog.
type WarehouseLister interface {
	List(ctx context.Context) ([]warehouse.Warehouse, error)
}

// CatalogHandler serves picker data for the report form.
type CatalogHandler struct {
	*BaseHandler
	products   ProductSearcher
	warehouses WarehouseLister
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, products ProductSearcher, warehouses WarehouseLister) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: base,
		products:    products,
		warehouses:  warehouses,
	}
}

// Products handles GET /catalog/products?name=&code=
func (h *CatalogHandler) Products(c *gin.Context) {
	var req dto.ProductSearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.products.Search(c.Request.Context(), nomenclature.Query{Name: req.Name, Code: req.Code})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromProductItems(result.Items), result.Truncated))
}

// Warehouses handles GET /catalog/warehouses
func (h *CatalogHandler) Warehouses(c *gin.Context) {
	items, err := h.warehouses.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.FromWarehouses(items), false))
}
