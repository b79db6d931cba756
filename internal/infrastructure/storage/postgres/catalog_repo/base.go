// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. Catalogs are read in bounded pages inside a read-only
// snapshot.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockflow/internal/core/id"
	"stockflow/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides the shared read operations of catalog tables.
// Embed it in specific catalog repositories.
type BaseCatalogRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	selectCols []string
	orderBy    []string
	pageOpts   postgres.PageOptions
}

// NewBaseCatalogRepo creates a base repository over tableName. Columns are
// taken from the db tags of T; orderBy must produce a total order.
func NewBaseCatalogRepo[T any](txm *postgres.TxManager, tableName string, pageOpts postgres.PageOptions, orderBy ...string) *BaseCatalogRepo[T] {
	if len(orderBy) == 0 {
		orderBy = []string{"id"}
	}
	return &BaseCatalogRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: postgres.ExtractDBColumns[T](),
		orderBy:    orderBy,
		pageOpts:   pageOpts,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// pageQuery selects one page of rows matching where (nil for all rows).
func (r *BaseCatalogRepo[T]) pageQuery(where squirrel.Sqlizer, limit, offset uint64) squirrel.SelectBuilder {
	q := r.baseSelect()
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy(r.orderBy...).Limit(limit).Offset(offset)
}

// ListAll fetches every row matching where, page by page, up to the
// configured record cap.
func (r *BaseCatalogRepo[T]) ListAll(ctx context.Context, where squirrel.Sqlizer) (postgres.PageResult[T], error) {
	res, err := postgres.FetchAllPages(ctx, r.txm, r.pageOpts, func(ctx context.Context, limit, offset uint64) ([]T, error) {
		sql, args, err := r.pageQuery(where, limit, offset).ToSql()
		if err != nil {
			return nil, fmt.Errorf("build query: %w", err)
		}

		var page []T
		if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &page, sql, args...); err != nil {
			return nil, err
		}
		return page, nil
	})
	if err != nil {
		return res, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return res, nil
}

// GetByIDs returns the rows with the given ids, in table order.
func (r *BaseCatalogRepo[T]) GetByIDs(ctx context.Context, ids []id.ID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": id.Unique(ids)}).
		OrderBy(r.orderBy...)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get %s by ids: %w", r.tableName, err)
	}
	return items, nil
}

// Insert loads rows with COPY. Must run inside a transaction.
func (r *BaseCatalogRepo[T]) Insert(ctx context.Context, items []T) (int64, error) {
	n, err := postgres.CopyStructs(ctx, postgres.NewBatchInserter(r.txm), r.tableName, items)
	if err != nil {
		return n, fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return n, nil
}
