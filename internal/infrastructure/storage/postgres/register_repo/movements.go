// Package register_repo provides PostgreSQL access to the stock movement
// register.
package register_repo

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

const stockMovementsTable = "stock_movements"

var _ reports.MovementSource = (*MovementRepo)(nil)

// MovementRecord is a stock_movements row as written by the seeder.
type MovementRecord struct {
	ProductID       id.ID          `db:"product_id"`
	WarehouseID     *id.ID         `db:"warehouse_id"`
	WarehouseDestID *id.ID         `db:"warehouse_dest_id"`
	MovementType    string         `db:"movement_type"`
	Quantity        types.Quantity `db:"quantity"`
	CreatedAt       time.Time      `db:"created_at"`
}

// MovementRepo reads and loads stock movements.
type MovementRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// movementsQuery selects the movements of one category. The grouping column
// is returned as warehouse_id so every category scans into the same shape.
func (r *MovementRepo) movementsQuery(q reports.MovementQuery) squirrel.SelectBuilder {
	col := q.Column.DBName()

	sb := r.builder.
		Select("product_id", col+" AS warehouse_id", "movement_type", "quantity", "created_at").
		From(stockMovementsTable).
		Where(squirrel.Eq{"movement_type": q.StoredTypes}).
		Where(squirrel.Eq{"product_id": q.ProductIDs}).
		Where(squirrel.Eq{col: q.WarehouseIDs})

	if q.Range.Start != nil {
		sb = sb.Where(squirrel.GtOrEq{"created_at": *q.Range.Start})
	}
	if q.Range.End != nil {
		sb = sb.Where(squirrel.Lt{"created_at": *q.Range.End})
	}
	return sb
}

// FetchMovements implements reports.MovementSource.
func (r *MovementRepo) FetchMovements(ctx context.Context, q reports.MovementQuery) ([]reports.MovementEvent, error) {
	sql, args, err := r.movementsQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.MovementEvent
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// Insert loads movements with COPY. Must run inside a transaction.
func (r *MovementRepo) Insert(ctx context.Context, records []MovementRecord) (int64, error) {
	n, err := postgres.CopyStructs(ctx, postgres.NewBatchInserter(r.txm), stockMovementsTable, records)
	if err != nil {
		return n, fmt.Errorf("insert movements: %w", err)
	}
	return n, nil
}
