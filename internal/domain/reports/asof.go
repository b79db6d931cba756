package reports

import (
	"context"
	"time"

	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
	"stockflow/pkg/logger"
)

// BalanceCalculator computes as-of running balances:
// opening stock before the range, in-range movements per category,
// cumulative adjustments and the resulting closing stock.
type BalanceCalculator struct {
	agg         *Aggregator
	adjustments AdjustmentSource
	now         func() time.Time
}

// NewBalanceCalculator creates a calculator. adjustments may be nil, in which
// case adjustments are reported as zero.
func NewBalanceCalculator(agg *Aggregator, adjustments AdjustmentSource) *BalanceCalculator {
	return &BalanceCalculator{agg: agg, adjustments: adjustments, now: time.Now}
}

type pairKey struct {
	productID   id.ID
	warehouseID id.ID
}

// ComputeAsOf returns one row per selected product and warehouse, including
// pairs without any movement.
func (b *BalanceCalculator) ComputeAsOf(ctx context.Context, sel Selection) (*AsOfReport, error) {
	cats, err := b.agg.resolve(sel)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "reports.as_of")
	defer span.End()

	r := sel.Range()

	opening := make(map[pairKey]types.Quantity)
	if before := r.Before(); before != nil {
		history, err := b.agg.collect(ctx, sel.ProductIDs, sel.WarehouseIDs, allCategories(), *before)
		if err != nil {
			return nil, err
		}
		for _, c := range history.Cells() {
			k := pairKey{c.ProductID, c.WarehouseID}
			if movement.Classify(string(c.Category)).Sign == movement.Inbound {
				opening[k] = opening[k].Add(c.Quantity)
			} else {
				opening[k] = opening[k].Sub(c.Quantity)
			}
		}
	}

	inRange, err := b.agg.collect(ctx, sel.ProductIDs, sel.WarehouseIDs, cats, r)
	if err != nil {
		return nil, err
	}

	asOf := b.now().UTC()
	if r.End != nil {
		asOf = *r.End
	}
	adjustments, ok := b.loadAdjustments(ctx, sel.ProductIDs, sel.WarehouseIDs, asOf)

	report := &AsOfReport{
		Categories:             categoryNames(cats),
		AdjustmentsUnavailable: !ok,
	}
	for _, p := range id.Unique(sel.ProductIDs) {
		for _, w := range id.Unique(sel.WarehouseIDs) {
			k := pairKey{p, w}
			row := AsOfRow{
				ProductID:   p,
				WarehouseID: w,
				Opening:     opening[k],
				Adjustments: adjustments[k],
				Moves:       make(map[movement.Category]types.Quantity, len(cats)),
			}
			for _, c := range cats {
				row.Moves[c.Category] = inRange.Get(p, w, c.Category)
			}
			report.Rows = append(report.Rows, row)
		}
	}

	return report, nil
}

// loadAdjustments sums adjustments per pair. A missing or failing source
// yields zeros and ok=false; the report is still produced.
func (b *BalanceCalculator) loadAdjustments(ctx context.Context, productIDs, warehouseIDs []id.ID, asOf time.Time) (map[pairKey]types.Quantity, bool) {
	out := make(map[pairKey]types.Quantity)
	if b.adjustments == nil {
		logger.Warn(ctx, "stock adjustments source not configured, using zero")
		return out, false
	}

	items, err := b.adjustments.FetchStockAdjustments(ctx, productIDs, warehouseIDs, asOf)
	if err != nil {
		logger.Warn(ctx, "stock adjustments unavailable, using zero", "error", err)
		return out, false
	}

	for _, a := range items {
		k := pairKey{a.ProductID, a.WarehouseID}
		out[k] = out[k].Add(a.Quantity)
	}
	return out, true
}

func allCategories() []movement.Classification {
	all := movement.All()
	out := make([]movement.Classification, len(all))
	for i, c := range all {
		out[i] = movement.Classify(string(c))
	}
	return out
}

func categoryNames(cats []movement.Classification) []movement.Category {
	out := make([]movement.Category, len(cats))
	for i, c := range cats {
		out[i] = c.Category
	}
	return out
}
