// Package report_repo provides PostgreSQL implementations of report
// collaborators other than the movement register.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/reports"
	"stockflow/internal/infrastructure/storage/postgres"
)

const stockAdjustmentsTable = "stock_adjustments"

var _ reports.AdjustmentSource = (*AdjustmentRepo)(nil)

// AdjustmentRecord is a stock_adjustments row as written by the seeder.
type AdjustmentRecord struct {
	ProductID   id.ID          `db:"product_id"`
	WarehouseID id.ID          `db:"warehouse_id"`
	Quantity    types.Quantity `db:"quantity"`
	AdjustedAt  time.Time      `db:"adjusted_at"`
}

// AdjustmentRepo reads manual stock corrections.
type AdjustmentRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewAdjustmentRepo creates a new adjustment repository.
func NewAdjustmentRepo(txm *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AdjustmentRepo) adjustmentsQuery(productIDs, warehouseIDs []id.ID, asOf time.Time) squirrel.SelectBuilder {
	return r.builder.
		Select("product_id", "warehouse_id", "COALESCE(SUM(quantity), 0) AS quantity").
		From(stockAdjustmentsTable).
		Where(squirrel.Eq{"product_id": productIDs}).
		Where(squirrel.Eq{"warehouse_id": warehouseIDs}).
		Where(squirrel.Lt{"adjusted_at": asOf}).
		GroupBy("product_id", "warehouse_id")
}

// FetchStockAdjustments implements reports.AdjustmentSource.
func (r *AdjustmentRepo) FetchStockAdjustments(ctx context.Context, productIDs, warehouseIDs []id.ID, asOf time.Time) ([]reports.StockAdjustment, error) {
	sql, args, err := r.adjustmentsQuery(productIDs, warehouseIDs, asOf).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.StockAdjustment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch stock adjustments: %w", err)
	}
	return items, nil
}

// Insert loads adjustments with COPY. Must run inside a transaction.
func (r *AdjustmentRepo) Insert(ctx context.Context, records []AdjustmentRecord) (int64, error) {
	n, err := postgres.CopyStructs(ctx, postgres.NewBatchInserter(r.txm), stockAdjustmentsTable, records)
	if err != nil {
		return n, fmt.Errorf("insert adjustments: %w", err)
	}
	return n, nil
}
