// Package reports aggregates stock movements into per product/warehouse/
// movement-type quantities and computes as-of running balances.
package reports

import (
	"fmt"
	"sort"
	"time"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
)

// Validation messages returned to the caller verbatim.
const (
	MsgNoProducts  = "Select at least one product"
	MsgNoWarehouse = "Select at least one warehouse"
	MsgNoMovements = "Select at least one movement type"
)

// Selection is a report request.
type Selection struct {
	ProductIDs   []id.ID
	WarehouseIDs []id.ID
	// Movements are caller-supplied category names or aliases.
	Movements []string
	// FromDate and ToDate are inclusive calendar dates (YYYY-MM-DD), optional.
	FromDate string
	ToDate   string
}

// Validate checks products, warehouses and movements, in that order.
func (s Selection) Validate() error {
	if len(s.ProductIDs) == 0 {
		return apperror.NewValidation(MsgNoProducts)
	}
	if len(s.WarehouseIDs) == 0 {
		return apperror.NewValidation(MsgNoWarehouse)
	}
	if len(s.Movements) == 0 {
		return apperror.NewValidation(MsgNoMovements)
	}
	return nil
}

// Range returns the normalized date range of the selection.
func (s Selection) Range() Range {
	return NormalizeRange(s.FromDate, s.ToDate)
}

// Categories classifies the requested movements and removes duplicates by
// canonical category, keeping first-seen order.
func (s Selection) Categories() []movement.Classification {
	seen := make(map[movement.Category]struct{}, len(s.Movements))
	out := make([]movement.Classification, 0, len(s.Movements))
	for _, name := range s.Movements {
		c := movement.Classify(name)
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		out = append(out, c)
	}
	return out
}

// MovementEvent is one stored movement, with WarehouseID taken from the
// grouping column the query was made for.
type MovementEvent struct {
	ProductID   id.ID          `db:"product_id"`
	WarehouseID id.ID          `db:"warehouse_id"`
	Type        string         `db:"movement_type"`
	Quantity    types.Quantity `db:"quantity"`
	OccurredAt  time.Time      `db:"created_at"`
}

// MovementQuery is one read against the movement store.
type MovementQuery struct {
	Category     movement.Category
	StoredTypes  []string
	ProductIDs   []id.ID
	Column       movement.Column
	WarehouseIDs []id.ID
	Range        Range
}

// StockAdjustment is the cumulative manual correction for a product in a
// warehouse.
type StockAdjustment struct {
	ProductID   id.ID          `db:"product_id"`
	WarehouseID id.ID          `db:"warehouse_id"`
	Quantity    types.Quantity `db:"quantity"`
}

// QueryFailure reports a movement query that failed. Partial results of the
// same aggregation are discarded.
type QueryFailure struct {
	Category movement.Category
	Err      error
}

func (e *QueryFailure) Error() string {
	return fmt.Sprintf("query %s movements: %v", e.Category, e.Err)
}

func (e *QueryFailure) Unwrap() error {
	return e.Err
}

// CellKey addresses one aggregated quantity.
type CellKey struct {
	ProductID   id.ID
	WarehouseID id.ID
	Category    movement.Category
}

// Cell is an aggregated quantity.
type Cell struct {
	CellKey
	Quantity types.Quantity
}

// CellMap accumulates quantities per (product, warehouse, category).
// Not safe for concurrent use.
type CellMap struct {
	cells map[CellKey]types.Quantity
}

// NewCellMap creates an empty CellMap.
func NewCellMap() *CellMap {
	return &CellMap{cells: make(map[CellKey]types.Quantity)}
}

// Add adds q to the cell at k.
func (m *CellMap) Add(k CellKey, q types.Quantity) {
	m.cells[k] = m.cells[k].Add(q)
}

// Get returns the quantity at (product, warehouse, category), zero if absent.
func (m *CellMap) Get(productID, warehouseID id.ID, c movement.Category) types.Quantity {
	return m.cells[CellKey{ProductID: productID, WarehouseID: warehouseID, Category: c}]
}

// Has reports whether any movement was folded into the cell.
func (m *CellMap) Has(productID, warehouseID id.ID, c movement.Category) bool {
	_, ok := m.cells[CellKey{ProductID: productID, WarehouseID: warehouseID, Category: c}]
	return ok
}

// Len returns the number of non-empty cells.
func (m *CellMap) Len() int {
	return len(m.cells)
}

// Merge adds every cell of other into m.
func (m *CellMap) Merge(other *CellMap) {
	if other == nil {
		return
	}
	for k, q := range other.cells {
		m.Add(k, q)
	}
}

// Cells returns all cells ordered by product, warehouse, then category.
func (m *CellMap) Cells() []Cell {
	out := make([]Cell, 0, len(m.cells))
	for k, q := range m.cells {
		out = append(out, Cell{CellKey: k, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].CellKey, out[j].CellKey
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		return a.Category < b.Category
	})
	return out
}

// ByWarehouse collapses products: warehouse → category → quantity.
func (m *CellMap) ByWarehouse() map[id.ID]map[movement.Category]types.Quantity {
	out := make(map[id.ID]map[movement.Category]types.Quantity)
	for k, q := range m.cells {
		row, ok := out[k.WarehouseID]
		if !ok {
			row = make(map[movement.Category]types.Quantity)
			out[k.WarehouseID] = row
		}
		row[k.Category] = row[k.Category].Add(q)
	}
	return out
}

// Net returns the signed sum of all categories for a product in a warehouse.
func (m *CellMap) Net(productID, warehouseID id.ID) types.Quantity {
	total := types.Zero()
	for k, q := range m.cells {
		if k.ProductID != productID || k.WarehouseID != warehouseID {
			continue
		}
		if movement.Classify(string(k.Category)).Sign == movement.Inbound {
			total = total.Add(q)
		} else {
			total = total.Sub(q)
		}
	}
	return total
}

// Row is one product/warehouse line of a tabular report.
type Row struct {
	ProductID   id.ID
	WarehouseID id.ID
	Moves       map[movement.Category]types.Quantity
}

// Report is the result of a movement report.
type Report struct {
	Categories []movement.Category
	Rows       []Row
	Cells      *CellMap
}

// Totals sums every row per category.
func (r *Report) Totals() map[movement.Category]types.Quantity {
	totals := make(map[movement.Category]types.Quantity, len(r.Categories))
	for _, c := range r.Categories {
		totals[c] = types.Zero()
	}
	for _, row := range r.Rows {
		for c, q := range row.Moves {
			totals[c] = totals[c].Add(q)
		}
	}
	return totals
}

// AsOfRow is the running balance of a product in a warehouse.
type AsOfRow struct {
	ProductID   id.ID
	WarehouseID id.ID
	Opening     types.Quantity
	Adjustments types.Quantity
	Moves       map[movement.Category]types.Quantity
}

// Closing is opening + inbound + adjustments - outbound.
func (r AsOfRow) Closing() types.Quantity {
	total := r.Opening.Add(r.Adjustments)
	for c, q := range r.Moves {
		if movement.Classify(string(c)).Sign == movement.Inbound {
			total = total.Add(q)
		} else {
			total = total.Sub(q)
		}
	}
	return total
}

// AsOfReport is the result of an as-of report.
type AsOfReport struct {
	Categories []movement.Category
	Rows       []AsOfRow
	// AdjustmentsUnavailable is set when adjustments could not be loaded and
	// were treated as zero.
	AdjustmentsUnavailable bool
}
