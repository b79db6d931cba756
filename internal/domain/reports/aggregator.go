package reports

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/domain/movement"
	"stockflow/pkg/logger"
)

var tracer = otel.Tracer("stockflow/reports")

// Aggregator sums movement quantities per (product, warehouse, category).
type Aggregator struct {
	source      MovementSource
	strict      bool
	maxParallel int
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithStrictMovements rejects unknown movement names instead of treating
// them as outbound source-warehouse categories.
func WithStrictMovements(strict bool) AggregatorOption {
	return func(a *Aggregator) { a.strict = strict }
}

// WithMaxParallel caps concurrent movement queries per aggregation.
// Zero or negative means one query per category at once.
func WithMaxParallel(n int) AggregatorOption {
	return func(a *Aggregator) { a.maxParallel = n }
}

// NewAggregator creates an aggregator reading from source.
func NewAggregator(source MovementSource, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{source: source}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate validates sel and folds every requested category into a CellMap.
// Nothing is queried when validation fails. The first failing category query
// aborts the whole aggregation with a *QueryFailure.
func (a *Aggregator) Aggregate(ctx context.Context, sel Selection) (*CellMap, error) {
	cats, err := a.resolve(sel)
	if err != nil {
		return nil, err
	}
	return a.collect(ctx, sel.ProductIDs, sel.WarehouseIDs, cats, sel.Range())
}

// resolve validates the selection and returns its deduplicated categories.
func (a *Aggregator) resolve(sel Selection) ([]movement.Classification, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	cats := sel.Categories()
	if a.strict {
		for _, c := range cats {
			if !c.Known {
				return nil, apperror.NewValidation("Unknown movement type: " + string(c.Category))
			}
		}
	}
	return cats, nil
}

// collect runs one query per category concurrently and merges the folded
// results once all of them have succeeded.
func (a *Aggregator) collect(ctx context.Context, productIDs, warehouseIDs []id.ID, cats []movement.Classification, r Range) (*CellMap, error) {
	ctx, span := tracer.Start(ctx, "reports.aggregate",
		trace.WithAttributes(
			attribute.Int("report.categories", len(cats)),
			attribute.Int("report.products", len(productIDs)),
			attribute.Int("report.warehouses", len(warehouseIDs)),
		))
	defer span.End()

	products := toSet(productIDs)
	warehouses := toSet(warehouseIDs)
	results := make([]*CellMap, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxParallel > 0 {
		g.SetLimit(a.maxParallel)
	}

	for i, c := range cats {
		g.Go(func() error {
			events, err := a.source.FetchMovements(gctx, MovementQuery{
				Category:     c.Category,
				StoredTypes:  movement.StoredTypes(c.Category),
				ProductIDs:   productIDs,
				Column:       c.Column,
				WarehouseIDs: warehouseIDs,
				Range:        r,
			})
			if err != nil {
				return &QueryFailure{Category: c.Category, Err: err}
			}

			logger.Debug(gctx, "movements fetched",
				"category", c.Category,
				"column", c.Column.String(),
				"rows", len(events),
			)

			results[i] = fold(c.Category, events, products, warehouses, r)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cells := NewCellMap()
	for _, m := range results {
		cells.Merge(m)
	}
	return cells, nil
}

// fold sums events of one category. Events outside the selection are ignored.
func fold(c movement.Category, events []MovementEvent, products, warehouses map[id.ID]struct{}, r Range) *CellMap {
	m := NewCellMap()
	abs := movement.UsesAbsoluteQuantity(c)
	for _, ev := range events {
		if _, ok := products[ev.ProductID]; !ok {
			continue
		}
		if _, ok := warehouses[ev.WarehouseID]; !ok {
			continue
		}
		if !r.Contains(ev.OccurredAt) {
			continue
		}
		q := ev.Quantity
		if abs {
			q = q.Abs()
		}
		m.Add(CellKey{ProductID: ev.ProductID, WarehouseID: ev.WarehouseID, Category: c}, q)
	}
	return m
}

func toSet(ids []id.ID) map[id.ID]struct{} {
	set := make(map[id.ID]struct{}, len(ids))
	for _, v := range ids {
		set[v] = struct{}{}
	}
	return set
}
