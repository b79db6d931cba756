package reports

import (
	"context"
	"errors"
	"fmt"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
	"stockflow/pkg/logger"
)

// Service is the entry point used by the HTTP layer.
type Service struct {
	agg   *Aggregator
	calc  *BalanceCalculator
	names CatalogNames
}

// NewService creates a new reports service. names may be nil; labels then
// fall back to identifiers.
func NewService(agg *Aggregator, calc *BalanceCalculator, names CatalogNames) *Service {
	return &Service{agg: agg, calc: calc, names: names}
}

// Report aggregates the selection into one row per product/warehouse pair
// that has movements.
func (s *Service) Report(ctx context.Context, sel Selection) (*Report, error) {
	cells, err := s.agg.Aggregate(ctx, sel)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	report := &Report{Cells: cells}
	for _, c := range sel.Categories() {
		report.Categories = append(report.Categories, c.Category)
	}

	index := make(map[pairKey]int)
	for _, c := range cells.Cells() {
		k := pairKey{c.ProductID, c.WarehouseID}
		i, ok := index[k]
		if !ok {
			i = len(report.Rows)
			index[k] = i
			report.Rows = append(report.Rows, Row{
				ProductID:   c.ProductID,
				WarehouseID: c.WarehouseID,
				Moves:       make(map[movement.Category]types.Quantity, len(report.Categories)),
			})
		}
		report.Rows[i].Moves[c.Category] = c.Quantity
	}

	logger.Info(ctx, "movement report built",
		"products", len(sel.ProductIDs),
		"warehouses", len(sel.WarehouseIDs),
		"categories", len(report.Categories),
		"rows", len(report.Rows),
	)
	return report, nil
}

// AsOf computes running balances for every selected product and warehouse.
func (s *Service) AsOf(ctx context.Context, sel Selection) (*AsOfReport, error) {
	report, err := s.calc.ComputeAsOf(ctx, sel)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	logger.Info(ctx, "as-of report built",
		"rows", len(report.Rows),
		"adjustments_unavailable", report.AdjustmentsUnavailable,
	)
	return report, nil
}

// Labels holds display names for an export.
type Labels struct {
	Products   map[id.ID]string
	Warehouses map[id.ID]string
}

// Product returns the label of a product, or its id when unknown.
func (l *Labels) Product(pid id.ID) string {
	if name, ok := l.Products[pid]; ok {
		return name
	}
	return pid.String()
}

// Warehouse returns the label of a warehouse, or its id when unknown.
func (l *Labels) Warehouse(wid id.ID) string {
	if name, ok := l.Warehouses[wid]; ok {
		return name
	}
	return wid.String()
}

// Labels resolves product and warehouse names. Product labels carry the
// barcode and category when known ("Flour (4000) - Bakery"). Lookup failures
// degrade to identifiers.
func (s *Service) Labels(ctx context.Context, productIDs, warehouseIDs []id.ID) *Labels {
	labels := &Labels{
		Products:   make(map[id.ID]string),
		Warehouses: make(map[id.ID]string),
	}
	if s.names == nil {
		return labels
	}

	products, err := s.names.ProductNames(ctx, productIDs)
	if err != nil {
		logger.Warn(ctx, "product names unavailable", "error", err)
	}

	var categoryIDs []id.ID
	for _, p := range products {
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}
	categories := map[id.ID]string{}
	if len(categoryIDs) > 0 {
		categories, err = s.names.FetchCategoryNames(ctx, id.Unique(categoryIDs))
		if err != nil {
			logger.Warn(ctx, "category names unavailable", "error", err)
		}
	}

	for pid, p := range products {
		labels.Products[pid] = ProductLabel(p, categories)
	}

	warehouses, err := s.names.WarehouseNames(ctx, warehouseIDs)
	if err != nil {
		logger.Warn(ctx, "warehouse names unavailable", "error", err)
	}
	for wid, name := range warehouses {
		labels.Warehouses[wid] = name
	}

	return labels
}

// ProductLabel formats a product for display.
func ProductLabel(p ProductName, categories map[id.ID]string) string {
	label := p.Name
	if p.Barcode != "" {
		label = fmt.Sprintf("%s (%s)", label, p.Barcode)
	}
	if p.CategoryID != nil {
		if cat, ok := categories[*p.CategoryID]; ok && cat != "" {
			label = fmt.Sprintf("%s - %s", label, cat)
		}
	}
	return label
}

// mapError turns a failed movement query into a data-access error carrying
// the store's message. Validation errors pass through unchanged.
func (s *Service) mapError(ctx context.Context, err error) error {
	var qf *QueryFailure
	if errors.As(err, &qf) {
		logger.Error(ctx, "movement query failed", "movement", qf.Category, "error", qf.Err)
		return apperror.NewDataAccess(qf.Err).
			WithDetail("movement", string(qf.Category)).
			WithCause(qf)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return fmt.Errorf("build report: %w", err)
}
